// Package dexscreener implements the DexScreener provider: token pairs,
// pair lookup, free-text search and the token-boost feeds.
//
// No API key is required.
// Rate limit: 300 requests/minute on pair endpoints, 60/minute on boosts.
// Docs: https://docs.dexscreener.com/api/reference
package dexscreener

import (
	"context"
	"fmt"

	"github.com/folyo/folyo/internal/provider"
)

const (
	providerName = "dexscreener"
	// DefaultBaseURL is the public DexScreener API root.
	DefaultBaseURL = "https://api.dexscreener.com"
)

// Provider implements provider.Provider for DexScreener.
type Provider struct {
	provider.BaseProvider
	baseURL   string
	transport *provider.Transport
}

// New creates a DexScreener provider and registers all fetchers.
// An empty baseURL selects DefaultBaseURL.
func New(baseURL string, t *provider.Transport) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if t == nil {
		t = provider.DefaultTransport()
	}
	p := &Provider{
		BaseProvider: provider.NewBaseProvider(
			providerName,
			"DexScreener - DEX pairs, search and token boosts across chains",
			"https://dexscreener.com",
			nil,
		),
		baseURL:   baseURL,
		transport: t,
	}

	p.RegisterFetcher(newTokensFetcher(p))
	p.RegisterFetcher(newPairFetcher(p))
	p.RegisterFetcher(newSearchFetcher(p))
	p.RegisterFetcher(newBoostsFetcher(p, provider.EndpointBoostsLatest, "/token-boosts/latest/v1", "Latest boosted tokens"))
	p.RegisterFetcher(newBoostsFetcher(p, provider.EndpointBoostsTop, "/token-boosts/top/v1", "Tokens with the most active boosts"))

	return p
}

// Ping checks connectivity to the DexScreener API.
func (p *Provider) Ping(ctx context.Context) error {
	if err := p.transport.Ping(ctx, providerName, p.url("/token-boosts/latest/v1"), nil); err != nil {
		return fmt.Errorf("dexscreener ping: %w", err)
	}
	return nil
}

func (p *Provider) url(path string) string {
	return provider.JoinURL(p.baseURL, path)
}
