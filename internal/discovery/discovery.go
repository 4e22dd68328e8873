// Package discovery decides which pairs are shown for a chain filter.
//
// Three strategies share one interface: Fixed pages through the DEX pair
// listing, Popular queries a curated seed list and Boosted (the default)
// follows the boosted-token feeds. Strategies are stateless and safe for
// concurrent use.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/internal/gateway"
	"github.com/folyo/folyo/internal/infra"
	"github.com/folyo/folyo/pkg/models"
)

// Strategy names accepted by New.
const (
	NameFixed   = "fixed"
	NamePopular = "popular"
	NameBoosted = "boosted"
)

// Names lists every strategy name, default first.
var Names = []string{NameBoosted, NamePopular, NameFixed}

// Strategy fetches the pairs to display for chain. chain may be chains.All.
type Strategy interface {
	Name() string
	FetchPairs(ctx context.Context, chain string, limit int) ([]models.Pair, error)
}

// Pager is implemented by strategies with cursor pagination.
type Pager interface {
	Strategy
	// FetchPage returns the page following cursor ("" for the first page).
	// The next cursor, if any, is the ScrollID of the first returned pair.
	FetchPage(ctx context.Context, chain string, limit int, cursor string) ([]models.Pair, error)
}

// New returns the strategy registered under name. An empty name selects
// the boosted strategy. logger and metrics may be nil.
func New(name string, client gateway.Client, logger *zap.Logger, metrics *infra.Metrics) (Strategy, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("strategy", name))

	switch strings.ToLower(name) {
	case NameFixed:
		return &instrumentedPager{Fixed: &Fixed{client: client}, metrics: metrics}, nil
	case NamePopular:
		return &instrumented{Strategy: &Popular{client: client}, metrics: metrics}, nil
	case NameBoosted, "":
		return &instrumented{Strategy: &Boosted{client: client, logger: logger, metrics: metrics}, metrics: metrics}, nil
	}
	return nil, fmt.Errorf("unknown discovery strategy %q (want one of %s)", name, strings.Join(Names, ", "))
}

// networkOrDefault maps the all-networks sentinel to the default chain for
// strategies that cannot span networks.
func networkOrDefault(chain string) string {
	chain = chains.Normalize(chain)
	if chain == chains.All {
		return chains.Default
	}
	return chain
}

// instrumented records a discovery run per FetchPairs call.
type instrumented struct {
	Strategy
	metrics *infra.Metrics
}

func (s *instrumented) FetchPairs(ctx context.Context, chain string, limit int) ([]models.Pair, error) {
	pairs, err := s.Strategy.FetchPairs(ctx, chain, limit)
	s.metrics.ObserveDiscovery(s.Name(), len(pairs), err)
	return pairs, err
}

type instrumentedPager struct {
	*Fixed
	metrics *infra.Metrics
}

func (s *instrumentedPager) FetchPairs(ctx context.Context, chain string, limit int) ([]models.Pair, error) {
	return s.FetchPage(ctx, chain, limit, "")
}

func (s *instrumentedPager) FetchPage(ctx context.Context, chain string, limit int, cursor string) ([]models.Pair, error) {
	pairs, err := s.Fixed.FetchPage(ctx, chain, limit, cursor)
	s.metrics.ObserveDiscovery(s.Name(), len(pairs), err)
	return pairs, err
}
