package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/pkg/models"
)

// pagedStrategy serves numbered pages; page n carries cursor "c<n+1>".
type pagedStrategy struct {
	mu      sync.Mutex
	cursors []string
	chains  []string
	fail    error
}

func (p *pagedStrategy) Name() string { return "fixed" }

func (p *pagedStrategy) FetchPairs(ctx context.Context, chain string, limit int) ([]models.Pair, error) {
	return p.FetchPage(ctx, chain, limit, "")
}

func (p *pagedStrategy) FetchPage(_ context.Context, chain string, _ int, cursor string) ([]models.Pair, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursors = append(p.cursors, cursor)
	p.chains = append(p.chains, chain)
	if p.fail != nil {
		return nil, p.fail
	}
	n := 1
	if cursor != "" {
		_, _ = fmt.Sscanf(cursor, "c%d", &n)
	}
	return []models.Pair{{
		ContractAddress: fmt.Sprintf("%s-page-%d", chain, n),
		NetworkSlug:     chain,
		ScrollID:        fmt.Sprintf("c%d", n+1),
	}}, nil
}

// staticStrategy returns pairs without cursors.
type staticStrategy struct{ pairs []models.Pair }

func (s staticStrategy) Name() string { return "boosted" }

func (s staticStrategy) FetchPairs(context.Context, string, int) ([]models.Pair, error) {
	return s.pairs, nil
}

func TestPageStateRoundTrip(t *testing.T) {
	for n := 0; n <= 5; n++ {
		s := NewPageState("ethereum")
		for i := 1; i <= n; i++ {
			s = s.Loaded([]models.Pair{{ScrollID: fmt.Sprintf("c%d", i)}})
			s = s.Advance()
		}
		for i := 0; i < n; i++ {
			s, _ = s.Back()
		}
		assert.Equal(t, "", s.Cursor, "n=%d", n)
		assert.Empty(t, s.History, "n=%d", n)
	}
}

func TestPageStateTransitionsDoNotAlias(t *testing.T) {
	s := NewPageState("bsc").Loaded([]models.Pair{{ScrollID: "a"}}).Advance()
	s = s.Loaded([]models.Pair{{ScrollID: "b"}})

	next := s.Advance()
	back, cursor := next.Back()

	assert.Equal(t, []string{""}, s.History)
	assert.Equal(t, []string{"", "a"}, next.History)
	assert.Equal(t, "a", cursor)
	assert.Equal(t, []string{""}, back.History)
}

func TestPageStateBackOnEmptyHistory(t *testing.T) {
	s := PageState{Chain: "base", Cursor: "x"}
	back, cursor := s.Back()
	assert.Equal(t, "", cursor)
	assert.Equal(t, NewPageState("base"), back)
}

func TestPageStateLoadedWithoutCursor(t *testing.T) {
	s := NewPageState("").Loaded([]models.Pair{{ContractAddress: "0x1"}})
	_, ok := s.NextCursor()
	assert.False(t, ok)
	assert.Equal(t, chains.All, s.Chain)

	s = s.Loaded(nil)
	_, ok = s.NextCursor()
	assert.False(t, ok)
}

func TestTableNextUsesServerCursor(t *testing.T) {
	ps := &pagedStrategy{}
	tbl := NewTable(ps, "ethereum", 50, nil)
	ctx := context.Background()

	require.NoError(t, tbl.Load(ctx))
	snap := tbl.Snapshot()
	assert.Equal(t, "c2", snap.State.Next)
	assert.True(t, snap.HasNext())

	require.NoError(t, tbl.NextPage(ctx))
	assert.Equal(t, []string{"", "c2"}, ps.cursors)

	snap = tbl.Snapshot()
	assert.Equal(t, 2, snap.State.Page())
	require.Len(t, snap.Pairs, 1)
	assert.Equal(t, "ethereum-page-2", snap.Pairs[0].ContractAddress)
}

func TestTablePagingRoundTrip(t *testing.T) {
	ps := &pagedStrategy{}
	tbl := NewTable(ps, "ethereum", 0, nil)
	ctx := context.Background()
	require.NoError(t, tbl.Load(ctx))

	const n = 4
	for i := 0; i < n; i++ {
		require.NoError(t, tbl.NextPage(ctx))
	}
	assert.Equal(t, n+1, tbl.Snapshot().State.Page())
	for i := 0; i < n; i++ {
		require.NoError(t, tbl.PrevPage(ctx))
	}

	snap := tbl.Snapshot()
	assert.Equal(t, "", snap.State.Cursor)
	assert.Empty(t, snap.State.History)
	assert.Equal(t, "ethereum-page-1", snap.Pairs[0].ContractAddress)
}

func TestTableNextWithoutCursorIsNoop(t *testing.T) {
	tbl := NewTable(staticStrategy{pairs: []models.Pair{{ContractAddress: "a"}}}, "all", 30, nil)
	ctx := context.Background()

	require.NoError(t, tbl.Load(ctx))
	require.NoError(t, tbl.NextPage(ctx))
	assert.Equal(t, 1, tbl.Snapshot().State.Page())
}

func TestTableSelectChainResets(t *testing.T) {
	ps := &pagedStrategy{}
	tbl := NewTable(ps, "ethereum", 0, nil)
	ctx := context.Background()
	require.NoError(t, tbl.Load(ctx))
	require.NoError(t, tbl.NextPage(ctx))

	require.NoError(t, tbl.SelectChain(ctx, "BSC"))
	snap := tbl.Snapshot()
	assert.Equal(t, "bsc", snap.State.Chain)
	assert.Equal(t, "", snap.State.Cursor)
	assert.Empty(t, snap.State.History)
	assert.Equal(t, "bsc-page-1", snap.Pairs[0].ContractAddress)
}

func TestTableSelectStrategy(t *testing.T) {
	tbl := NewTable(&pagedStrategy{}, "solana", 0, nil)
	ctx := context.Background()
	require.NoError(t, tbl.Load(ctx))
	require.NoError(t, tbl.NextPage(ctx))

	require.NoError(t, tbl.SelectStrategy(ctx, staticStrategy{pairs: []models.Pair{{ContractAddress: "x"}}}))
	snap := tbl.Snapshot()
	assert.Equal(t, "boosted", snap.Strategy)
	assert.Equal(t, 1, snap.State.Page())
	assert.Equal(t, "solana", snap.State.Chain)
	assert.Equal(t, "x", snap.Pairs[0].ContractAddress)
}

func TestTableErrorKeepsPage(t *testing.T) {
	ps := &pagedStrategy{}
	tbl := NewTable(ps, "ethereum", 0, nil)
	ctx := context.Background()
	require.NoError(t, tbl.Load(ctx))

	boom := errors.New("HTTP 500")
	ps.fail = boom
	assert.ErrorIs(t, tbl.NextPage(ctx), boom)

	snap := tbl.Snapshot()
	assert.ErrorIs(t, snap.Err, boom)
	assert.False(t, snap.Loading)
	assert.Equal(t, 1, snap.State.Page())
	assert.Equal(t, "ethereum-page-1", snap.Pairs[0].ContractAddress)
}

// gatedStrategy blocks fetches for one chain until released.
type gatedStrategy struct {
	slowChain string
	started   chan struct{}
	release   chan struct{}
}

func (g *gatedStrategy) Name() string { return "popular" }

func (g *gatedStrategy) FetchPairs(_ context.Context, chain string, _ int) ([]models.Pair, error) {
	if chain == g.slowChain {
		close(g.started)
		<-g.release
	}
	return []models.Pair{{ContractAddress: chain + "-pair", NetworkSlug: chain}}, nil
}

func TestTableDiscardsSupersededResult(t *testing.T) {
	g := &gatedStrategy{slowChain: "ethereum", started: make(chan struct{}), release: make(chan struct{})}
	tbl := NewTable(g, "ethereum", 0, nil)
	ctx := context.Background()

	slow := make(chan error, 1)
	go func() { slow <- tbl.Load(ctx) }()
	<-g.started

	require.NoError(t, tbl.SelectChain(ctx, "bsc"))
	close(g.release)

	assert.ErrorIs(t, <-slow, ErrSuperseded)
	snap := tbl.Snapshot()
	assert.Equal(t, "bsc", snap.State.Chain)
	require.Len(t, snap.Pairs, 1)
	assert.Equal(t, "bsc-pair", snap.Pairs[0].ContractAddress)
}

func TestTableResetSupersedesInFlightFetch(t *testing.T) {
	g := &gatedStrategy{slowChain: "ethereum", started: make(chan struct{}), release: make(chan struct{})}
	tbl := NewTable(g, "ethereum", 0, nil)
	ctx := context.Background()

	slow := make(chan error, 1)
	go func() { slow <- tbl.Load(ctx) }()
	<-g.started

	// The chain switch lands before its own fetch starts.
	tbl.reset(func() { tbl.state = tbl.state.WithChain("bsc") })
	close(g.release)

	assert.ErrorIs(t, <-slow, ErrSuperseded)
	snap := tbl.Snapshot()
	assert.Equal(t, "bsc", snap.State.Chain)
	assert.Empty(t, snap.Pairs)

	require.NoError(t, tbl.Load(ctx))
	snap = tbl.Snapshot()
	require.Len(t, snap.Pairs, 1)
	assert.Equal(t, "bsc-pair", snap.Pairs[0].ContractAddress)
}

func TestSnapshotIsACopy(t *testing.T) {
	tbl := NewTable(&pagedStrategy{}, "ethereum", 0, nil)
	require.NoError(t, tbl.Load(context.Background()))

	snap := tbl.Snapshot()
	snap.Pairs[0].ContractAddress = "mutated"
	assert.Equal(t, "ethereum-page-1", tbl.Snapshot().Pairs[0].ContractAddress)
}
