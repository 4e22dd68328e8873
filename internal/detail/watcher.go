// Package detail loads a single pair and keeps it fresh while it is shown.
package detail

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/folyo/folyo/pkg/models"
)

// DefaultInterval is the refresh period when none is configured.
const DefaultInterval = 60 * time.Second

// Source looks a pair up by chain and pair address.
type Source interface {
	Pair(ctx context.Context, chain, address string) (models.Pair, error)
}

// Watcher refreshes one pair on a fixed interval. Refreshing pauses while
// the pair is not visible and resumes with an immediate refresh.
type Watcher struct {
	src      Source
	chain    string
	address  string
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	current   models.Pair
	loaded    bool
	visible   bool
	resumed   bool
	onRefresh func(models.Pair)

	wake chan struct{}
}

// NewWatcher creates a watcher for the pair at address on chain.
// A non-positive interval selects DefaultInterval.
func NewWatcher(src Source, chain, address string, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		src:      src,
		chain:    chain,
		address:  address,
		interval: interval,
		logger:   logger.With(zap.String("chain", chain), zap.String("pair", address)),
		visible:  true,
		wake:     make(chan struct{}, 1),
	}
}

// Interval returns the refresh period.
func (w *Watcher) Interval() time.Duration { return w.interval }

// Load fetches the pair once. Unlike refreshes, errors are returned.
func (w *Watcher) Load(ctx context.Context) (models.Pair, error) {
	p, err := w.src.Pair(ctx, w.chain, w.address)
	if err != nil {
		return models.Pair{}, err
	}
	w.store(p)
	return p, nil
}

// OnRefresh registers fn to receive every refreshed pair. fn runs on the
// Run goroutine.
func (w *Watcher) OnRefresh(fn func(models.Pair)) {
	w.mu.Lock()
	w.onRefresh = fn
	w.mu.Unlock()
}

// Current returns the latest pair and whether one has been loaded.
func (w *Watcher) Current() (models.Pair, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current, w.loaded
}

// SetVisible pauses (false) or resumes (true) refreshing.
func (w *Watcher) SetVisible(visible bool) {
	w.mu.Lock()
	if visible && !w.visible {
		w.resumed = true
	}
	w.visible = visible
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Run refreshes until ctx is cancelled and returns ctx.Err(). Refresh
// failures are logged and the timer keeps running.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if !w.isVisible() {
		ticker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-w.wake:
			w.mu.Lock()
			visible, resumed := w.visible, w.resumed
			w.resumed = false
			w.mu.Unlock()

			switch {
			case resumed && visible:
				w.refresh(ctx)
				ticker.Reset(w.interval)
			case !visible:
				ticker.Stop()
			}

		case <-ticker.C:
			if w.isVisible() {
				w.refresh(ctx)
			}
		}
	}
}

func (w *Watcher) refresh(ctx context.Context) {
	p, err := w.src.Pair(ctx, w.chain, w.address)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("pair refresh failed", zap.Error(err))
		}
		return
	}
	fn := w.store(p)
	if fn != nil {
		fn(p)
	}
}

// store replaces the current pair and returns the refresh callback.
func (w *Watcher) store(p models.Pair) func(models.Pair) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = p
	w.loaded = true
	return w.onRefresh
}

func (w *Watcher) isVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}
