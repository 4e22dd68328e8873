package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/internal/gateway"
	"github.com/folyo/folyo/internal/infra"
	"github.com/folyo/folyo/pkg/models"
)

// MaxBoostedTokens caps the merged seed list.
const MaxBoostedTokens = 30

// Boosted surfaces the best pair of each boosted token.
type Boosted struct {
	client  gateway.Client
	logger  *zap.Logger
	metrics *infra.Metrics
}

// NewBoosted returns a boost-based strategy. logger and metrics may be nil.
func NewBoosted(client gateway.Client, logger *zap.Logger, metrics *infra.Metrics) *Boosted {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Boosted{client: client, logger: logger, metrics: metrics}
}

func (b *Boosted) Name() string { return NameBoosted }

// FetchPairs returns one pair per boosted token, in seed order: latest
// boosts first, then top boosts not already present. A pair appears at
// most once.
func (b *Boosted) FetchPairs(ctx context.Context, chain string, limit int) ([]models.Pair, error) {
	chain = chains.Normalize(chain)
	if limit <= 0 || limit > MaxBoostedTokens {
		limit = MaxBoostedTokens
	}

	latest, top, err := b.fetchBoosts(ctx)
	if err != nil {
		return nil, err
	}
	if chain != chains.All {
		latest = FilterChain(latest, chain)
		top = FilterChain(top, chain)
	}

	seeds := MergeBoosts(latest, top)
	if len(seeds) > limit {
		seeds = seeds[:limit]
	}
	if len(seeds) == 0 {
		return []models.Pair{}, nil
	}

	var candidates []models.Pair
	if chain == chains.All {
		candidates, err = b.fetchPerChain(ctx, seeds)
	} else {
		candidates, err = b.client.TokenPairs(ctx, chain, addresses(seeds))
	}
	if err != nil {
		return nil, err
	}

	// Two boosted tokens can share a best pool; the earlier seed keeps it.
	out := make([]models.Pair, 0, len(seeds))
	seen := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		best, ok := BestPair(candidates, s.Token.TokenAddress)
		if !ok || seen[best.Key()] {
			continue
		}
		seen[best.Key()] = true
		out = append(out, best.WithBoost(s.Token, s.Badge))
	}
	return out, nil
}

// fetchBoosts loads both feeds concurrently. One failing feed is logged and
// treated as empty; both failing is an error.
func (b *Boosted) fetchBoosts(ctx context.Context) (latest, top []models.BoostedToken, err error) {
	var latestErr, topErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		latest, latestErr = b.client.Boosts(gctx, gateway.BoostsLatest)
		return nil
	})
	g.Go(func() error {
		top, topErr = b.client.Boosts(gctx, gateway.BoostsTop)
		return nil
	})
	_ = g.Wait()

	switch {
	case latestErr != nil && topErr != nil:
		return nil, nil, fmt.Errorf("fetch boosted tokens: %w", errors.Join(latestErr, topErr))
	case latestErr != nil:
		b.logger.Warn("latest boosts unavailable", zap.Error(latestErr))
		b.metrics.PartialFailure(NameBoosted, "boosts-latest")
	case topErr != nil:
		b.logger.Warn("top boosts unavailable", zap.Error(topErr))
		b.metrics.PartialFailure(NameBoosted, "boosts-top")
	}
	return latest, top, nil
}

// fetchPerChain issues one token query per distinct chain in parallel.
// A failing chain contributes nothing; if every chain fails the first
// error in seed order is returned.
func (b *Boosted) fetchPerChain(ctx context.Context, seeds []Seed) ([]models.Pair, error) {
	order, groups := groupByChain(seeds)

	results := make([][]models.Pair, len(order))
	errs := make([]error, len(order))

	var mu sync.Mutex
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	for i, chain := range order {
		g.Go(func() error {
			pairs, err := b.client.TokenPairs(gctx, chain, groups[chain])
			if err != nil {
				b.logger.Warn("boosted pairs unavailable for chain",
					zap.String("chain", chain), zap.Error(err))
				b.metrics.PartialFailure(NameBoosted, chain)
				errs[i] = fmt.Errorf("%s: %w", chain, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil // non-fatal
			}
			results[i] = pairs
			return nil
		})
	}
	_ = g.Wait()

	if failed == len(order) {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	var all []models.Pair
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// groupByChain returns distinct chains in first-seen order and the token
// addresses per chain.
func groupByChain(seeds []Seed) ([]string, map[string][]string) {
	var order []string
	groups := make(map[string][]string)
	for _, s := range seeds {
		chain := strings.ToLower(s.Token.ChainID)
		if _, ok := groups[chain]; !ok {
			order = append(order, chain)
		}
		groups[chain] = append(groups[chain], s.Token.TokenAddress)
	}
	return order, groups
}

func addresses(seeds []Seed) []string {
	out := make([]string, len(seeds))
	for i, s := range seeds {
		out[i] = s.Token.TokenAddress
	}
	return out
}
