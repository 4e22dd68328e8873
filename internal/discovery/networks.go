package discovery

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/pkg/models"
)

// DefaultTopPerNetwork is the number of pairs kept per network card.
const DefaultTopPerNetwork = 3

// NetworkTop is the top pairs of one network.
type NetworkTop struct {
	Network chains.Network `json:"network"`
	Pairs   []models.Pair  `json:"pairs"`
}

// TopByNetwork fetches the top n pairs of every network in parallel.
// A failing network is logged and yields an empty list; output keeps the
// order of networks.
func TopByNetwork(ctx context.Context, s Strategy, networks []chains.Network, n int, logger *zap.Logger) []NetworkTop {
	if n <= 0 {
		n = DefaultTopPerNetwork
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	out := make([]NetworkTop, len(networks))
	g, gctx := errgroup.WithContext(ctx)
	for i, nw := range networks {
		out[i] = NetworkTop{Network: nw, Pairs: []models.Pair{}}
		g.Go(func() error {
			pairs, err := s.FetchPairs(gctx, nw.Slug, 0)
			if err != nil {
				logger.Warn("network top pairs unavailable", zap.String("network", nw.Slug), zap.Error(err))
				return nil // non-fatal
			}
			if len(pairs) > n {
				pairs = pairs[:n]
			}
			out[i].Pairs = pairs
			return nil
		})
	}
	_ = g.Wait()
	return out
}
