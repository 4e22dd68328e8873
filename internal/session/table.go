package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/folyo/folyo/internal/discovery"
	"github.com/folyo/folyo/pkg/models"
)

// ErrSuperseded is returned by a fetch whose result was discarded because a
// newer request started while it was in flight.
var ErrSuperseded = errors.New("request superseded by a newer one")

// Snapshot is a copy of the table state for rendering.
type Snapshot struct {
	Strategy string        `json:"strategy"`
	State    PageState     `json:"state"`
	Pairs    []models.Pair `json:"pairs"`
	Loading  bool          `json:"loading"`
	Err      error         `json:"-"`
}

// HasNext reports whether a following page exists.
func (s Snapshot) HasNext() bool {
	_, ok := s.State.NextCursor()
	return ok
}

// Table controls the paged pair table. It holds exactly the latest fetched
// page. Every fetch takes a generation number; a result is written back only
// if no newer fetch started in the meantime.
type Table struct {
	mu       sync.Mutex
	strategy discovery.Strategy
	limit    int
	state    PageState
	pairs    []models.Pair
	loading  bool
	err      error
	gen      uint64
	logger   *zap.Logger
}

// NewTable creates a table over strategy for chain. Nothing is fetched
// until Load.
func NewTable(strategy discovery.Strategy, chain string, limit int, logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table{
		strategy: strategy,
		limit:    limit,
		state:    NewPageState(chain),
		logger:   logger,
	}
}

// Load fetches the page for the current state.
func (t *Table) Load(ctx context.Context) error {
	return t.fetch(ctx, func(s PageState) (PageState, bool) { return s, true })
}

// NextPage fetches the following page. It is a no-op without a next cursor.
func (t *Table) NextPage(ctx context.Context) error {
	return t.fetch(ctx, func(s PageState) (PageState, bool) {
		if _, ok := s.NextCursor(); !ok {
			return s, false
		}
		return s.Advance(), true
	})
}

// PrevPage fetches the previous page, or the first page when there is no
// history.
func (t *Table) PrevPage(ctx context.Context) error {
	return t.fetch(ctx, func(s PageState) (PageState, bool) {
		prev, _ := s.Back()
		return prev, true
	})
}

// SelectChain switches the chain filter, discards the current page and
// loads the first page of the new chain.
func (t *Table) SelectChain(ctx context.Context, chain string) error {
	t.reset(func() { t.state = t.state.WithChain(chain) })
	return t.Load(ctx)
}

// SelectStrategy swaps the discovery strategy and reloads from the first
// page of the current chain.
func (t *Table) SelectStrategy(ctx context.Context, strategy discovery.Strategy) error {
	t.reset(func() {
		t.strategy = strategy
		t.state = NewPageState(t.state.Chain)
	})
	return t.Load(ctx)
}

// reset applies mutate, drops the current page and supersedes every fetch
// still in flight, all under one lock.
func (t *Table) reset(mutate func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	mutate()
	t.pairs = nil
	t.gen++
}

// Snapshot returns a copy of the current state.
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	pairs := make([]models.Pair, len(t.pairs))
	copy(pairs, t.pairs)
	state := t.state
	state.History = append([]string(nil), t.state.History...)
	return Snapshot{
		Strategy: t.strategy.Name(),
		State:    state,
		Pairs:    pairs,
		Loading:  t.loading,
		Err:      t.err,
	}
}

// fetch computes the target state, fetches it and commits the result if
// this is still the newest request. On error the previous page and state
// stay in place.
func (t *Table) fetch(ctx context.Context, transition func(PageState) (PageState, bool)) error {
	t.mu.Lock()
	target, ok := transition(t.state)
	if !ok {
		t.mu.Unlock()
		return nil
	}
	t.gen++
	gen := t.gen
	strategy, limit := t.strategy, t.limit
	t.loading = true
	t.mu.Unlock()

	pairs, err := fetchPage(ctx, strategy, target, limit)

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		t.logger.Debug("discarding superseded page",
			zap.String("chain", target.Chain), zap.Uint64("generation", gen))
		return ErrSuperseded
	}
	t.loading = false
	if err != nil {
		t.err = err
		return err
	}
	t.err = nil
	t.state = target.Loaded(pairs)
	t.pairs = pairs
	return nil
}

func fetchPage(ctx context.Context, s discovery.Strategy, state PageState, limit int) ([]models.Pair, error) {
	if p, ok := s.(discovery.Pager); ok {
		return p.FetchPage(ctx, state.Chain, limit, state.Cursor)
	}
	return s.FetchPairs(ctx, state.Chain, limit)
}
