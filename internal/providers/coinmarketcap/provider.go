// Package coinmarketcap implements the CoinMarketCap Pro provider: the
// centralized listing endpoints (relayed verbatim) and the v4 DEX pair
// endpoints (reshaped into the unified pair envelope).
//
// Requires an API key from https://pro.coinmarketcap.com/signup.
// Docs: https://coinmarketcap.com/api/documentation/v1/
package coinmarketcap

import (
	"context"
	"fmt"

	"github.com/folyo/folyo/internal/provider"
)

const (
	providerName = "coinmarketcap"
	// DefaultBaseURL is the CMC Pro API root.
	DefaultBaseURL = "https://pro-api.coinmarketcap.com"
	credAPIKey     = "api_key"
	headerAPIKey   = "X-CMC_PRO_API_KEY"
)

// Provider implements provider.Provider for CoinMarketCap.
type Provider struct {
	provider.BaseProvider
	baseURL   string
	apiKey    string
	transport *provider.Transport
}

// New creates a CoinMarketCap provider and registers all fetchers.
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
			"CoinMarketCap Pro - listings, global metrics, quotes and DEX pairs",
			"https://coinmarketcap.com",
			[]provider.ProviderCredential{
				{
					Name:        credAPIKey,
					Description: "CoinMarketCap Pro API key",
					Required:    true,
					EnvVar:      "CMC_API_KEY",
				},
			},
		),
		baseURL:   baseURL,
		transport: t,
	}

	// --- Centralized listings (passthrough) ---
	p.RegisterFetcher(newListingsFetcher(p))
	p.RegisterFetcher(newGlobalMetricsFetcher(p))
	p.RegisterFetcher(newCryptoInfoFetcher(p))
	p.RegisterFetcher(newCryptoQuotesFetcher(p))
	p.RegisterFetcher(newOHLCVFetcher(p))

	// --- DEX ---
	p.RegisterFetcher(newDexPairsFetcher(p))
	p.RegisterFetcher(newDexPairQuotesFetcher(p))

	return p
}

// Init stores the API key. The provider is still registered without one so
// the relay can report the missing key per request.
func (p *Provider) Init(credentials map[string]string) error {
	err := p.BaseProvider.Init(credentials)
	p.apiKey = credentials[credAPIKey]
	return err
}

// Ping checks the API key against the key info endpoint.
func (p *Provider) Ping(ctx context.Context) error {
	if err := p.CheckCredentials(""); err != nil {
		return err
	}
	if err := p.transport.Ping(ctx, providerName, p.url("/v1/key/info"), p.headers()); err != nil {
		return fmt.Errorf("coinmarketcap ping: %w", err)
	}
	return nil
}

func (p *Provider) url(path string) string {
	return provider.JoinURL(p.baseURL, path)
}

func (p *Provider) headers() map[string]string {
	return map[string]string{headerAPIKey: p.apiKey}
}
