// Package alternativeme implements the Alternative.me provider for the
// Crypto Fear & Greed Index.
//
// No API key is required.
// Docs: https://alternative.me/crypto/fear-and-greed-index/#api
package alternativeme

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/folyo/folyo/internal/provider"
)

const (
	providerName = "alternativeme"
	// DefaultBaseURL is the public Alternative.me API root.
	DefaultBaseURL = "https://api.alternative.me"
)

// Provider implements provider.Provider for Alternative.me.
type Provider struct {
	provider.BaseProvider
	baseURL   string
	transport *provider.Transport
}

// New creates an Alternative.me provider. An empty baseURL selects
// DefaultBaseURL.
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
			"Alternative.me - Crypto Fear & Greed Index",
			"https://alternative.me",
			nil,
		),
		baseURL:   baseURL,
		transport: t,
	}
	p.RegisterFetcher(&fearGreedFetcher{
		BaseFetcher: provider.NewBaseFetcher(providerName, provider.EndpointFearGreed,
			"Crypto Fear & Greed Index, latest value or history",
			nil,
			[]string{provider.ParamLimit},
			t),
		p: p,
	})
	return p
}

// Ping checks connectivity to the Alternative.me API.
func (p *Provider) Ping(ctx context.Context) error {
	if err := p.transport.Ping(ctx, providerName, provider.JoinURL(p.baseURL, "/fng/"), nil); err != nil {
		return fmt.Errorf("alternativeme ping: %w", err)
	}
	return nil
}

// fearGreedFetcher relays /fng/ verbatim.
type fearGreedFetcher struct {
	provider.BaseFetcher
	p *Provider
}

func (f *fearGreedFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	u := provider.JoinURL(f.p.baseURL, "/fng/")
	if limit := params[provider.ParamLimit]; limit != "" {
		u += "?" + url.Values{"limit": {limit}}.Encode()
	}
	body, cached, err := f.GetRaw(ctx, u, nil)
	if err != nil {
		return nil, err
	}
	return f.Result(json.RawMessage(body), cached), nil
}
