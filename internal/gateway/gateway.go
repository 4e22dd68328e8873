// Package gateway exposes the upstream gateway as a typed client.
//
// Local serves calls from an in-process provider registry. Remote calls the
// relay endpoint of a running folyo server. Both return the same errors:
// *provider.GatewayError for upstream failures, provider.ErrNotFound for a
// missing pair and configuration errors from package provider.
package gateway

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/pkg/models"
)

// BoostKind selects a boosted-token feed.
type BoostKind string

const (
	BoostsLatest BoostKind = "latest"
	BoostsTop    BoostKind = "top"
)

func (k BoostKind) endpoint() (provider.Endpoint, error) {
	switch k {
	case BoostsLatest:
		return provider.EndpointBoostsLatest, nil
	case BoostsTop:
		return provider.EndpointBoostsTop, nil
	}
	return "", fmt.Errorf("unknown boost feed %q", string(k))
}

// Client is the typed view of the relay used by discovery and the
// controllers.
type Client interface {
	// DexPairs returns one page of the fixed-endpoint pair list. cursor is
	// the scroll_id of the previous page, or "" for the first page.
	DexPairs(ctx context.Context, network string, limit int, cursor string) ([]models.Pair, error)
	// TokenPairs returns every pair trading any of the addresses, sorted
	// by descending 24h volume.
	TokenPairs(ctx context.Context, chain string, addresses []string) ([]models.Pair, error)
	// Boosts returns a boosted-token feed in upstream order.
	Boosts(ctx context.Context, kind BoostKind) ([]models.BoostedToken, error)
	// Search returns pairs matching a free-text query.
	Search(ctx context.Context, query string) ([]models.Pair, error)
	// Pair returns one pair by chain and pair address.
	Pair(ctx context.Context, chain, address string) (models.Pair, error)
}

// transport performs one relay call.
type transport interface {
	pairs(ctx context.Context, ep provider.Endpoint, params provider.QueryParams) (*models.PairEnvelope, error)
	boosts(ctx context.Context, ep provider.Endpoint) ([]models.BoostedToken, error)
}

type client struct {
	t transport
}

func (c *client) DexPairs(ctx context.Context, network string, limit int, cursor string) ([]models.Pair, error) {
	params := provider.QueryParams{provider.ParamNetworkSlug: network}
	if limit > 0 {
		params[provider.ParamLimit] = strconv.Itoa(limit)
	}
	if cursor != "" {
		params[provider.ParamScrollID] = cursor
	}
	return c.envelope(ctx, provider.EndpointDexPairs, params)
}

func (c *client) TokenPairs(ctx context.Context, chain string, addresses []string) ([]models.Pair, error) {
	if len(addresses) == 0 {
		return []models.Pair{}, nil
	}
	return c.envelope(ctx, provider.EndpointScreenerToken, provider.QueryParams{
		provider.ParamChainID:        chain,
		provider.ParamTokenAddresses: strings.Join(addresses, ","),
	})
}

func (c *client) Boosts(ctx context.Context, kind BoostKind) ([]models.BoostedToken, error) {
	ep, err := kind.endpoint()
	if err != nil {
		return nil, err
	}
	return c.t.boosts(ctx, ep)
}

func (c *client) Search(ctx context.Context, query string) ([]models.Pair, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Pair{}, nil
	}
	return c.envelope(ctx, provider.EndpointScreenerQuery, provider.QueryParams{provider.ParamQuery: query})
}

func (c *client) Pair(ctx context.Context, chain, address string) (models.Pair, error) {
	pairs, err := c.envelope(ctx, provider.EndpointScreenerPair, provider.QueryParams{
		provider.ParamChainID:     chain,
		provider.ParamPairAddress: address,
	})
	if err != nil {
		return models.Pair{}, err
	}
	if len(pairs) == 0 {
		return models.Pair{}, provider.ErrNotFound
	}
	return pairs[0], nil
}

// envelope runs a pair endpoint and turns a non-zero status into an error.
func (c *client) envelope(ctx context.Context, ep provider.Endpoint, params provider.QueryParams) ([]models.Pair, error) {
	env, err := c.t.pairs(ctx, ep, params)
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		msg := "upstream error"
		if env.Status.ErrorMessage != nil {
			msg = *env.Status.ErrorMessage
		}
		return nil, &provider.GatewayError{
			Endpoint: ep,
			Message:  fmt.Sprintf("error_code %d: %s", env.Status.ErrorCode, msg),
		}
	}
	if env.Data == nil {
		return []models.Pair{}, nil
	}
	return env.Data, nil
}
