package discovery

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/internal/gateway"
	"github.com/folyo/folyo/internal/infra"
	"github.com/folyo/folyo/pkg/models"
)

// fakeClient is a scripted gateway.Client.
type fakeClient struct {
	mu sync.Mutex

	latest, top       []models.BoostedToken
	latestErr, topErr error

	// pairs by chain; chainErr fails a chain's token query.
	pairs    map[string][]models.Pair
	chainErr map[string]error

	dexPages map[string][]models.Pair // cursor → page

	tokenCalls []tokenCall
	dexCalls   []dexCall
}

type tokenCall struct {
	chain string
	addrs []string
}

type dexCall struct {
	network string
	limit   int
	cursor  string
}

func (f *fakeClient) DexPairs(_ context.Context, network string, limit int, cursor string) ([]models.Pair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dexCalls = append(f.dexCalls, dexCall{network, limit, cursor})
	return f.dexPages[cursor], nil
}

func (f *fakeClient) TokenPairs(_ context.Context, chain string, addrs []string) ([]models.Pair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenCalls = append(f.tokenCalls, tokenCall{chain, addrs})
	if err := f.chainErr[chain]; err != nil {
		return nil, err
	}
	return f.pairs[chain], nil
}

func (f *fakeClient) Boosts(_ context.Context, kind gateway.BoostKind) ([]models.BoostedToken, error) {
	if kind == gateway.BoostsLatest {
		return f.latest, f.latestErr
	}
	return f.top, f.topErr
}

func (f *fakeClient) Search(context.Context, string) ([]models.Pair, error) { return nil, nil }

func (f *fakeClient) Pair(context.Context, string, string) (models.Pair, error) {
	return models.Pair{}, errors.New("not scripted")
}

func pair(chain, addr, base string, liquidity, volume float64) models.Pair {
	return models.Pair{
		Name:             base + "/USD",
		ContractAddress:  addr,
		NetworkSlug:      chain,
		BaseAssetAddress: base,
		Quote:            []models.Quote{{Liquidity: liquidity, Volume24h: volume}},
	}
}

func boost(chain, addr string, amount float64) models.BoostedToken {
	return models.BoostedToken{ChainID: chain, TokenAddress: addr, TotalAmount: amount, Description: "boost " + addr}
}

func TestMergeBoostsDedupKeepsLatest(t *testing.T) {
	latest := []models.BoostedToken{boost("solana", "TokenT", 100)}
	top := []models.BoostedToken{boost("Solana", "tokent", 900), boost("solana", "Other", 50)}

	seeds := MergeBoosts(latest, top)
	require.Len(t, seeds, 2)
	assert.Equal(t, "TokenT", seeds[0].Token.TokenAddress)
	assert.Equal(t, models.BadgeBoosted, seeds[0].Badge)
	assert.Equal(t, 100.0, seeds[0].Token.TotalAmount)
	assert.Equal(t, "Other", seeds[1].Token.TokenAddress)
	assert.Equal(t, models.BadgeTrending, seeds[1].Badge)
}

func TestMergeBoostsSameAddressDifferentChains(t *testing.T) {
	seeds := MergeBoosts([]models.BoostedToken{boost("base", "0xabc", 1)}, []models.BoostedToken{boost("ethereum", "0xABC", 1)})
	assert.Len(t, seeds, 2)
}

func TestBestPairPermutationInvariant(t *testing.T) {
	p1 := pair("ethereum", "0xp1", "0xt", 10, 0)
	p2 := pair("ethereum", "0xp2", "0xT", 30, 0)
	p3 := pair("ethereum", "0xp3", "0xt", 20, 0)

	perms := [][]models.Pair{
		{p1, p2, p3}, {p1, p3, p2}, {p2, p1, p3},
		{p2, p3, p1}, {p3, p1, p2}, {p3, p2, p1},
	}
	for _, perm := range perms {
		best, ok := BestPair(perm, "0xt")
		require.True(t, ok)
		assert.Equal(t, "0xp2", best.ContractAddress)
	}
}

func TestBestPairTieFirstWins(t *testing.T) {
	a := pair("ethereum", "0xa", "0xt", 10, 0)
	b := pair("ethereum", "0xb", "0xt", 10, 0)

	best, _ := BestPair([]models.Pair{a, b}, "0xt")
	assert.Equal(t, "0xa", best.ContractAddress)
	best, _ = BestPair([]models.Pair{b, a}, "0xt")
	assert.Equal(t, "0xb", best.ContractAddress)
}

func TestBestPairMatchesQuoteSide(t *testing.T) {
	p := pair("ethereum", "0xp", "0xother", 5, 0)
	p.QuoteAssetAddress = "0xWETH"

	best, ok := BestPair([]models.Pair{p}, "0xweth")
	require.True(t, ok)
	assert.Equal(t, "0xp", best.ContractAddress)

	_, ok = BestPair([]models.Pair{p}, "0xnone")
	assert.False(t, ok)
}

func TestSortByVolumeNonIncreasing(t *testing.T) {
	pairs := []models.Pair{
		pair("bsc", "a", "", 0, 5),
		pair("bsc", "b", "", 0, 50),
		pair("bsc", "c", "", 0, 0),
		pair("bsc", "d", "", 0, 50),
		pair("bsc", "e", "", 0, 7),
	}
	SortByVolume(pairs)
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t, pairs[i-1].Volume24h(), pairs[i].Volume24h())
	}
	assert.Equal(t, "b", pairs[0].ContractAddress, "stable for equal volumes")
	assert.Equal(t, "d", pairs[1].ContractAddress)
}

func TestFixedFirstPageAndCursor(t *testing.T) {
	first := pair("ethereum", "0x1", "0xa", 0, 0)
	first.ScrollID = "cursor-2"
	fc := &fakeClient{dexPages: map[string][]models.Pair{"": {first}}}

	f := NewFixed(fc)
	pairs, err := f.FetchPairs(context.Background(), "ethereum", 0)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, dexCall{"ethereum", DefaultPageSize, ""}, fc.dexCalls[0])

	_, err = f.FetchPage(context.Background(), chains.All, 10, pairs[0].ScrollID)
	require.NoError(t, err)
	assert.Equal(t, dexCall{"ethereum", 10, "cursor-2"}, fc.dexCalls[1])
}

func TestPopularSeedLimit(t *testing.T) {
	fc := &fakeClient{pairs: map[string][]models.Pair{
		"bsc": {pair("bsc", "a", "", 0, 1), pair("bsc", "b", "", 0, 9)},
	}}
	p := NewPopular(fc)

	pairs, err := p.FetchPairs(context.Background(), "BSC", 100)
	require.NoError(t, err)
	require.Len(t, fc.tokenCalls, 1)
	assert.Equal(t, "bsc", fc.tokenCalls[0].chain)
	assert.Len(t, fc.tokenCalls[0].addrs, chains.DefaultSeedTokens)
	assert.Equal(t, "b", pairs[0].ContractAddress)

	_, err = p.FetchPairs(context.Background(), "bsc", 5)
	require.NoError(t, err)
	assert.Len(t, fc.tokenCalls[1].addrs, 5)
}

func TestPopularUnknownChainIsEmpty(t *testing.T) {
	fc := &fakeClient{}
	pairs, err := NewPopular(fc).FetchPairs(context.Background(), "cronos", 10)
	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.NotNil(t, pairs)
	assert.Empty(t, fc.tokenCalls)
}

func TestPopularAllMapsToDefault(t *testing.T) {
	fc := &fakeClient{}
	_, err := NewPopular(fc).FetchPairs(context.Background(), chains.All, 3)
	require.NoError(t, err)
	assert.Equal(t, chains.Default, fc.tokenCalls[0].chain)
}

func TestBoostedAllChains(t *testing.T) {
	fc := &fakeClient{
		latest: []models.BoostedToken{boost("solana", "SoTok", 250)},
		top:    []models.BoostedToken{boost("base", "0xBaseTok", 75)},
		pairs: map[string][]models.Pair{
			"solana": {pair("solana", "SoPair", "sotok", 1000, 1)},
			"base":   {pair("base", "0xBasePair", "0xbasetok", 500, 1)},
		},
	}

	pairs, err := NewBoosted(fc, nil, nil).FetchPairs(context.Background(), chains.All, 10)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, "SoPair", pairs[0].ContractAddress)
	assert.Equal(t, models.BadgeBoosted, pairs[0].Badge)
	assert.Equal(t, 250.0, pairs[0].BoostAmount)
	assert.Equal(t, "boost SoTok", pairs[0].BoostDescription)

	assert.Equal(t, "0xBasePair", pairs[1].ContractAddress)
	assert.Equal(t, models.BadgeTrending, pairs[1].Badge)
	assert.Equal(t, 75.0, pairs[1].BoostAmount)

	assert.Len(t, fc.tokenCalls, 2, "one query per chain")
}

func TestBoostedChainWithoutBoostsIsEmpty(t *testing.T) {
	fc := &fakeClient{latest: []models.BoostedToken{boost("solana", "SoTok", 1)}}

	pairs, err := NewBoosted(fc, nil, nil).FetchPairs(context.Background(), "bsc", 30)
	require.NoError(t, err)
	assert.NotNil(t, pairs)
	assert.Empty(t, pairs)
	assert.Empty(t, fc.tokenCalls)

	env := models.NewEnvelope(pairs)
	assert.True(t, env.OK())
	assert.Nil(t, env.Status.ErrorMessage)
}

func TestBoostedSingleChainOneQuery(t *testing.T) {
	fc := &fakeClient{
		latest: []models.BoostedToken{boost("Solana", "A", 1), boost("base", "X", 1), boost("solana", "B", 1)},
		pairs: map[string][]models.Pair{
			"solana": {pair("solana", "pa", "a", 1, 0)},
		},
	}

	pairs, err := NewBoosted(fc, nil, nil).FetchPairs(context.Background(), "solana", 0)
	require.NoError(t, err)
	require.Len(t, fc.tokenCalls, 1)
	assert.Equal(t, []string{"A", "B"}, fc.tokenCalls[0].addrs)
	require.Len(t, pairs, 1, "token B has no pair and is dropped")
	assert.Equal(t, "pa", pairs[0].ContractAddress)
}

func TestBoostedSharedBestPairOnce(t *testing.T) {
	shared := pair("ethereum", "0xpairXY", "0xX", 1000, 0)
	shared.QuoteAssetAddress = "0xY"
	fc := &fakeClient{
		latest: []models.BoostedToken{boost("ethereum", "0xX", 5), boost("ethereum", "0xY", 3)},
		pairs:  map[string][]models.Pair{"ethereum": {shared}},
	}

	for _, chain := range []string{"ethereum", "all"} {
		pairs, err := NewBoosted(fc, nil, nil).FetchPairs(context.Background(), chain, 0)
		require.NoError(t, err, chain)
		require.Len(t, pairs, 1, chain)
		assert.Equal(t, "0xpairXY", pairs[0].ContractAddress)
		assert.Equal(t, float64(5), pairs[0].BoostAmount, "earlier seed keeps the pair")
	}
}

func TestBoostedTruncatesToLimit(t *testing.T) {
	var latest []models.BoostedToken
	var all []models.Pair
	for i := 0; i < 40; i++ {
		addr := "tok" + string(rune('a'+i%26)) + strings.Repeat("x", i/26)
		latest = append(latest, boost("solana", addr, 1))
		all = append(all, pair("solana", "p-"+addr, addr, 1, 0))
	}
	fc := &fakeClient{latest: latest, pairs: map[string][]models.Pair{"solana": all}}

	pairs, err := NewBoosted(fc, nil, nil).FetchPairs(context.Background(), "solana", 5)
	require.NoError(t, err)
	assert.Len(t, pairs, 5)
	assert.Len(t, fc.tokenCalls[0].addrs, 5)

	pairs, err = NewBoosted(fc, nil, nil).FetchPairs(context.Background(), "solana", 100)
	require.NoError(t, err)
	assert.Len(t, pairs, MaxBoostedTokens)
}

func TestBoostedPartialChainFailure(t *testing.T) {
	m := infra.NewMetrics("test")
	fc := &fakeClient{
		latest:   []models.BoostedToken{boost("solana", "SoTok", 1), boost("base", "0xB", 1)},
		pairs:    map[string][]models.Pair{"solana": {pair("solana", "SoPair", "SoTok", 1, 0)}},
		chainErr: map[string]error{"base": errors.New("HTTP 500")},
	}

	pairs, err := NewBoosted(fc, nil, m).FetchPairs(context.Background(), chains.All, 10)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "SoPair", pairs[0].ContractAddress)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DiscoveryPartialFailures.WithLabelValues(NameBoosted, "base")))
}

func TestBoostedAllChainsFail(t *testing.T) {
	boom := errors.New("HTTP 503")
	fc := &fakeClient{
		latest:   []models.BoostedToken{boost("solana", "A", 1), boost("base", "B", 1)},
		chainErr: map[string]error{"solana": boom, "base": boom},
	}

	_, err := NewBoosted(fc, nil, nil).FetchPairs(context.Background(), chains.All, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "solana")
}

func TestBoostedSingleChainFailureSurfaces(t *testing.T) {
	boom := errors.New("HTTP 429")
	fc := &fakeClient{
		latest:   []models.BoostedToken{boost("bsc", "A", 1)},
		chainErr: map[string]error{"bsc": boom},
	}
	_, err := NewBoosted(fc, nil, nil).FetchPairs(context.Background(), "bsc", 10)
	assert.ErrorIs(t, err, boom)
}

func TestBoostedOneFeedDown(t *testing.T) {
	fc := &fakeClient{
		latestErr: errors.New("HTTP 500"),
		top:       []models.BoostedToken{boost("base", "0xT", 1)},
		pairs:     map[string][]models.Pair{"base": {pair("base", "0xP", "0xt", 1, 0)}},
	}

	pairs, err := NewBoosted(fc, nil, nil).FetchPairs(context.Background(), chains.All, 0)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, models.BadgeTrending, pairs[0].Badge)
}

func TestBoostedBothFeedsDown(t *testing.T) {
	fc := &fakeClient{latestErr: errors.New("a"), topErr: errors.New("b")}
	_, err := NewBoosted(fc, nil, nil).FetchPairs(context.Background(), chains.All, 0)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	fc := &fakeClient{}

	s, err := New("", fc, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, NameBoosted, s.Name())

	s, err = New("Fixed", fc, nil, nil)
	require.NoError(t, err)
	_, ok := s.(Pager)
	assert.True(t, ok, "fixed strategy pages")

	s, err = New(NamePopular, fc, nil, nil)
	require.NoError(t, err)
	_, ok = s.(Pager)
	assert.False(t, ok)

	_, err = New("trending", fc, nil, nil)
	assert.Error(t, err)
}

func TestNewRecordsRuns(t *testing.T) {
	m := infra.NewMetrics("test")
	s, err := New(NamePopular, &fakeClient{}, nil, m)
	require.NoError(t, err)

	_, err = s.FetchPairs(context.Background(), "cronos", 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DiscoveryRuns.WithLabelValues(NamePopular, "ok")))
}

func TestTopByNetwork(t *testing.T) {
	fc := &fakeClient{
		pairs: map[string][]models.Pair{
			"ethereum": {pair("ethereum", "e1", "", 0, 3), pair("ethereum", "e2", "", 0, 2), pair("ethereum", "e3", "", 0, 1)},
		},
		chainErr: map[string]error{"bsc": errors.New("down")},
	}
	networks := []chains.Network{{Slug: "ethereum"}, {Slug: "bsc"}, {Slug: "cronos"}}

	top := TopByNetwork(context.Background(), NewPopular(fc), networks, 2, nil)
	require.Len(t, top, 3)
	assert.Equal(t, "ethereum", top[0].Network.Slug)
	assert.Len(t, top[0].Pairs, 2)
	assert.Equal(t, "bsc", top[1].Network.Slug)
	assert.NotNil(t, top[1].Pairs)
	assert.Empty(t, top[1].Pairs)
	assert.Empty(t, top[2].Pairs)
}
