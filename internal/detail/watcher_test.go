package detail

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/pkg/models"
)

// countingSource returns a pair whose price is the call number. Calls listed
// in failOn return an error.
type countingSource struct {
	calls  atomic.Int32
	failOn map[int32]bool
}

func (s *countingSource) Pair(_ context.Context, chain, address string) (models.Pair, error) {
	n := s.calls.Add(1)
	if s.failOn[n] {
		return models.Pair{}, errors.New("HTTP 502")
	}
	return models.Pair{
		ContractAddress: address,
		NetworkSlug:     chain,
		Quote:           []models.Quote{{Price: float64(n)}},
	}, nil
}

func runWatcher(t *testing.T, w *Watcher) (cancel func(), done <-chan error) {
	t.Helper()
	ctx, cancelFn := context.WithCancel(context.Background())
	ch := make(chan error, 1)
	go func() { ch <- w.Run(ctx) }()
	t.Cleanup(cancelFn)
	return cancelFn, ch
}

// collect forwards refreshed pairs to a buffered channel without blocking Run.
func collect(w *Watcher) <-chan models.Pair {
	ch := make(chan models.Pair, 16)
	w.OnRefresh(func(p models.Pair) {
		select {
		case ch <- p:
		default:
		}
	})
	return ch
}

func waitRefresh(t *testing.T, ch <-chan models.Pair, timeout time.Duration) models.Pair {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(timeout):
		t.Fatal("timed out waiting for refresh")
		return models.Pair{}
	}
}

func TestLoad(t *testing.T) {
	src := &countingSource{}
	w := NewWatcher(src, "ethereum", "0xpair", time.Hour, nil)

	_, ok := w.Current()
	assert.False(t, ok)

	p, err := w.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xpair", p.ContractAddress)

	cur, ok := w.Current()
	assert.True(t, ok)
	assert.Equal(t, p, cur)
}

func TestLoadErrorSurfaces(t *testing.T) {
	w := NewWatcher(notFoundSource{}, "ethereum", "0xgone", 0, nil)
	_, err := w.Load(context.Background())
	assert.ErrorIs(t, err, provider.ErrNotFound)
	assert.Equal(t, DefaultInterval, w.Interval())
}

type notFoundSource struct{}

func (notFoundSource) Pair(context.Context, string, string) (models.Pair, error) {
	return models.Pair{}, provider.ErrNotFound
}

func TestRunRefreshesAndSkipsFailures(t *testing.T) {
	src := &countingSource{failOn: map[int32]bool{1: true, 2: true}}
	w := NewWatcher(src, "bsc", "0xp", 5*time.Millisecond, nil)

	refreshed := collect(w)
	runWatcher(t, w)

	p := waitRefresh(t, refreshed, 2*time.Second)
	assert.GreaterOrEqual(t, p.Metrics().Price, 3.0, "failed refreshes are skipped, timer keeps running")

	cur, ok := w.Current()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, cur.Metrics().Price, 3.0)
}

func TestHiddenWatcherDoesNotRefresh(t *testing.T) {
	src := &countingSource{}
	w := NewWatcher(src, "base", "0xp", 5*time.Millisecond, nil)
	refreshed := collect(w)

	w.SetVisible(false)
	runWatcher(t, w)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), src.calls.Load())

	w.SetVisible(true)
	waitRefresh(t, refreshed, 2*time.Second)
}

func TestResumeRefreshesImmediately(t *testing.T) {
	src := &countingSource{}
	w := NewWatcher(src, "solana", "SoPair", time.Hour, nil)
	refreshed := collect(w)
	runWatcher(t, w)

	w.SetVisible(false)
	w.SetVisible(true)

	p := waitRefresh(t, refreshed, 2*time.Second)
	assert.Equal(t, "SoPair", p.ContractAddress)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRunStopsOnCancel(t *testing.T) {
	w := NewWatcher(&countingSource{}, "ethereum", "0xp", time.Hour, nil)
	cancel, done := runWatcher(t, w)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
