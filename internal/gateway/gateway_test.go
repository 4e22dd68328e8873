package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/internal/providers"
	"github.com/folyo/folyo/pkg/models"
)

func dexScreener(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/tokens/v1/ethereum/0xaaa,0xbbb", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"chainId":"ethereum","pairAddress":"0xp1","baseToken":{"address":"0xaaa","symbol":"AAA"},"quoteToken":{"symbol":"WETH"},"volume":{"h24":10},"liquidity":{"usd":5}},
			{"chainId":"ethereum","pairAddress":"0xp2","baseToken":{"address":"0xbbb","symbol":"BBB"},"quoteToken":{"symbol":"WETH"},"volume":{"h24":20},"liquidity":{"usd":7}}
		]`))
	})
	mux.HandleFunc("/token-boosts/top/v1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"chainId":"solana","tokenAddress":"So1","totalAmount":500}]`))
	})
	mux.HandleFunc("/latest/dex/pairs/ethereum/0xmissing", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pairs":null}`))
	})
	mux.HandleFunc("/latest/dex/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pairs":[]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func localClient(t *testing.T) Client {
	t.Helper()
	reg, err := providers.NewRegistry(providers.Options{DexScreenerBaseURL: dexScreener(t).URL})
	require.NoError(t, err)
	return NewLocal(reg)
}

func TestLocalTokenPairs(t *testing.T) {
	c := localClient(t)

	pairs, err := c.TokenPairs(context.Background(), "ethereum", []string{"0xaaa", "0xbbb"})
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "0xp2", pairs[0].ContractAddress, "sorted by volume")
	assert.Equal(t, "AAA/WETH", pairs[1].Name)
}

func TestLocalEmptyInputsSkipUpstream(t *testing.T) {
	c := NewLocal(provider.NewRegistry())

	pairs, err := c.TokenPairs(context.Background(), "ethereum", nil)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	pairs, err = c.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestLocalBoosts(t *testing.T) {
	c := localClient(t)

	tokens, err := c.Boosts(context.Background(), BoostsTop)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "solana", tokens[0].ChainID)
	assert.Equal(t, 500.0, tokens[0].TotalAmount)

	_, err = c.Boosts(context.Background(), BoostKind("weekly"))
	assert.Error(t, err)
}

func TestLocalPairNotFound(t *testing.T) {
	c := localClient(t)

	_, err := c.Pair(context.Background(), "ethereum", "0xmissing")
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestEnvelopeStatusBecomesError(t *testing.T) {
	msg := "Invalid value for \"network_slug\""
	c := &client{t: stubTransport{env: models.ErrorEnvelope(400, msg)}}

	_, err := c.DexPairs(context.Background(), "nowhere", 10, "")
	var ge *provider.GatewayError
	require.True(t, errors.As(err, &ge))
	assert.Contains(t, ge.Message, msg)
}

func TestDexPairsParams(t *testing.T) {
	st := &recordingTransport{}
	c := &client{t: st}

	_, err := c.DexPairs(context.Background(), "base", 50, "abc")
	require.NoError(t, err)
	assert.Equal(t, provider.EndpointDexPairs, st.ep)
	assert.Equal(t, "base", st.params[provider.ParamNetworkSlug])
	assert.Equal(t, "50", st.params[provider.ParamLimit])
	assert.Equal(t, "abc", st.params[provider.ParamScrollID])
}

func TestRemoteDecodesRelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ProxyPath, r.URL.Path)
		switch r.URL.Query().Get("endpoint") {
		case "dex-screener-pair":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Pair not found"}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limited"}`))
		}
	}))
	defer srv.Close()

	c := NewRemote(srv.URL, srv.Client())

	_, err := c.Pair(context.Background(), "ethereum", "0x1")
	assert.ErrorIs(t, err, provider.ErrNotFound)

	_, err = c.Search(context.Background(), "pepe")
	var ge *provider.GatewayError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, http.StatusTooManyRequests, ge.StatusCode)
	assert.Equal(t, "rate limited", ge.Message)
}

func TestRemoteDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "dex-screener-search", q.Get("endpoint"))
		assert.Equal(t, "pepe", q.Get("q"))
		_, _ = w.Write([]byte(`{"data":[{"name":"PEPE/WETH","contract_address":"0x1","network_slug":"ethereum","quote":[{"price":1}]}],"status":{"error_code":0,"error_message":null}}`))
	}))
	defer srv.Close()

	pairs, err := NewRemote(srv.URL, nil).Search(context.Background(), "pepe")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "PEPE/WETH", pairs[0].Name)
	assert.Equal(t, 1.0, pairs[0].Metrics().Price)
}

type stubTransport struct {
	env    *models.PairEnvelope
	tokens []models.BoostedToken
	err    error
}

func (s stubTransport) pairs(context.Context, provider.Endpoint, provider.QueryParams) (*models.PairEnvelope, error) {
	return s.env, s.err
}

func (s stubTransport) boosts(context.Context, provider.Endpoint) ([]models.BoostedToken, error) {
	return s.tokens, s.err
}

type recordingTransport struct {
	ep     provider.Endpoint
	params provider.QueryParams
}

func (r *recordingTransport) pairs(_ context.Context, ep provider.Endpoint, params provider.QueryParams) (*models.PairEnvelope, error) {
	r.ep, r.params = ep, params
	return models.NewEnvelope(nil), nil
}

func (r *recordingTransport) boosts(context.Context, provider.Endpoint) ([]models.BoostedToken, error) {
	return nil, nil
}
