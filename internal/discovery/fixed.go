package discovery

import (
	"context"

	"github.com/folyo/folyo/internal/gateway"
	"github.com/folyo/folyo/pkg/models"
)

// DefaultPageSize is the fixed-endpoint page size when limit is not positive.
const DefaultPageSize = 100

// Fixed pages through the upstream DEX pair listing of one network.
type Fixed struct {
	client gateway.Client
}

// NewFixed returns a fixed-endpoint strategy.
func NewFixed(client gateway.Client) *Fixed { return &Fixed{client: client} }

func (f *Fixed) Name() string { return NameFixed }

// FetchPairs returns the first page.
func (f *Fixed) FetchPairs(ctx context.Context, chain string, limit int) ([]models.Pair, error) {
	return f.FetchPage(ctx, chain, limit, "")
}

// FetchPage returns the page after cursor, in upstream order.
func (f *Fixed) FetchPage(ctx context.Context, chain string, limit int, cursor string) ([]models.Pair, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return f.client.DexPairs(ctx, networkOrDefault(chain), limit, cursor)
}
