package discovery

import (
	"context"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/internal/gateway"
	"github.com/folyo/folyo/pkg/models"
)

// Popular fetches every pair trading the curated seed tokens of a chain in
// one multi-address query.
type Popular struct {
	client gateway.Client
}

// NewPopular returns a popular-token strategy.
func NewPopular(client gateway.Client) *Popular { return &Popular{client: client} }

func (p *Popular) Name() string { return NamePopular }

// FetchPairs queries min(limit, 25) seed tokens. A chain without seeds
// yields an empty result.
func (p *Popular) FetchPairs(ctx context.Context, chain string, limit int) ([]models.Pair, error) {
	chain = networkOrDefault(chain)
	if limit <= 0 || limit > chains.DefaultSeedTokens {
		limit = chains.DefaultSeedTokens
	}

	addrs := chains.TokensLimit(chain, limit)
	if len(addrs) == 0 {
		return []models.Pair{}, nil
	}
	pairs, err := p.client.TokenPairs(ctx, chain, addrs)
	if err != nil {
		return nil, err
	}
	return SortByVolume(pairs), nil
}
