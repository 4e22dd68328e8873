package coinmarketcap

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/pkg/models"
)

// queryBuilder turns relay params into an upstream path and query.
type queryBuilder func(params provider.QueryParams) (string, url.Values)

// ---- Passthrough fetcher ----
// Relays the upstream body unchanged. Used for every centralized endpoint.

type passthroughFetcher struct {
	provider.BaseFetcher
	p     *Provider
	build queryBuilder
}

func (f *passthroughFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	path, q := f.build(params)
	body, cached, err := f.GetRaw(ctx, f.p.url(path)+"?"+q.Encode(), f.p.headers())
	if err != nil {
		return nil, err
	}
	return f.Result(json.RawMessage(body), cached), nil
}

func newListingsFetcher(p *Provider) *passthroughFetcher {
	return &passthroughFetcher{
		BaseFetcher: provider.NewBaseFetcher(providerName, provider.EndpointListings,
			"Latest cryptocurrency listings ranked by market cap",
			nil,
			[]string{provider.ParamStart, provider.ParamLimit, provider.ParamConvert},
			p.transport),
		p: p,
		build: func(params provider.QueryParams) (string, url.Values) {
			q := url.Values{}
			q.Set("start", params.Get(provider.ParamStart, "1"))
			q.Set("limit", params.Get(provider.ParamLimit, "100"))
			q.Set("convert", params.Get(provider.ParamConvert, "USD"))
			return "/v1/cryptocurrency/listings/latest", q
		},
	}
}

func newGlobalMetricsFetcher(p *Provider) *passthroughFetcher {
	return &passthroughFetcher{
		BaseFetcher: provider.NewBaseFetcher(providerName, provider.EndpointGlobalMetrics,
			"Global market cap, volume and dominance",
			nil,
			[]string{provider.ParamConvert},
			p.transport),
		p: p,
		build: func(params provider.QueryParams) (string, url.Values) {
			q := url.Values{}
			q.Set("convert", params.Get(provider.ParamConvert, "USD"))
			return "/v1/global-metrics/quotes/latest", q
		},
	}
}

func newCryptoInfoFetcher(p *Provider) *passthroughFetcher {
	return &passthroughFetcher{
		BaseFetcher: provider.NewBaseFetcher(providerName, provider.EndpointCryptoInfo,
			"Static metadata for one or more cryptocurrencies",
			nil,
			[]string{provider.ParamIDs, provider.ParamSlug},
			p.transport).
			WithAnyOf([]string{provider.ParamIDs, provider.ParamSlug}),
		p: p,
		build: func(params provider.QueryParams) (string, url.Values) {
			q := url.Values{}
			setIfPresent(q, "id", params[provider.ParamIDs])
			setIfPresent(q, "slug", params[provider.ParamSlug])
			return "/v2/cryptocurrency/info", q
		},
	}
}

func newCryptoQuotesFetcher(p *Provider) *passthroughFetcher {
	return &passthroughFetcher{
		BaseFetcher: provider.NewBaseFetcher(providerName, provider.EndpointCryptoQuotes,
			"Latest market quotes for one or more cryptocurrencies",
			nil,
			[]string{provider.ParamIDs, provider.ParamSlug, provider.ParamSymbol, provider.ParamConvert},
			p.transport).
			WithAnyOf([]string{provider.ParamIDs, provider.ParamSlug, provider.ParamSymbol}),
		p: p,
		build: func(params provider.QueryParams) (string, url.Values) {
			q := url.Values{}
			setIfPresent(q, "id", params[provider.ParamIDs])
			setIfPresent(q, "slug", params[provider.ParamSlug])
			setIfPresent(q, "symbol", params[provider.ParamSymbol])
			q.Set("convert", params.Get(provider.ParamConvert, "USD"))
			return "/v2/cryptocurrency/quotes/latest", q
		},
	}
}

func newOHLCVFetcher(p *Provider) *passthroughFetcher {
	return &passthroughFetcher{
		BaseFetcher: provider.NewBaseFetcher(providerName, provider.EndpointOHLCVHistorical,
			"Historical OHLCV candles for one cryptocurrency",
			[]string{provider.ParamIDs},
			[]string{provider.ParamCount, provider.ParamInterval, provider.ParamTimePeriod, provider.ParamConvert},
			p.transport),
		p: p,
		build: func(params provider.QueryParams) (string, url.Values) {
			q := url.Values{}
			q.Set("id", params[provider.ParamIDs])
			q.Set("count", params.Get(provider.ParamCount, "8"))
			q.Set("time_period", params.Get(provider.ParamTimePeriod, "daily"))
			q.Set("interval", params.Get(provider.ParamInterval, "daily"))
			q.Set("convert", params.Get(provider.ParamConvert, "USD"))
			return "/v2/cryptocurrency/ohlcv/historical", q
		},
	}
}

// ---- DEX pair fetcher ----
// Decodes v4 spot pairs and returns the unified envelope. Upstream order is
// kept so the scroll cursor on row 0 stays meaningful.

type dexFetcher struct {
	provider.BaseFetcher
	p     *Provider
	build queryBuilder
}

func (f *dexFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	path, q := f.build(params)

	var resp spotPairsResponse
	cached, err := f.GetJSON(ctx, f.p.url(path)+"?"+q.Encode(), f.p.headers(), &resp)
	if err != nil {
		return nil, err
	}

	pairs := make([]models.Pair, 0, len(resp.Data))
	for _, raw := range resp.Data {
		pairs = append(pairs, normalizePair(raw))
	}
	env := models.NewEnvelope(pairs)
	if code := resp.Status.ErrorCode.Int(); code != 0 {
		env.Status.ErrorCode = code
		if msg := resp.Status.ErrorMessage; msg != "" {
			env.Status.ErrorMessage = &msg
		}
	}
	return f.Result(env, cached), nil
}

func newDexPairsFetcher(p *Provider) *dexFetcher {
	return &dexFetcher{
		BaseFetcher: provider.NewBaseFetcher(providerName, provider.EndpointDexPairs,
			"Latest DEX spot pairs on one network, paged by scroll_id",
			nil,
			[]string{provider.ParamNetworkSlug, provider.ParamLimit, provider.ParamScrollID, provider.ParamSort, provider.ParamAux},
			p.transport),
		p: p,
		build: func(params provider.QueryParams) (string, url.Values) {
			q := url.Values{}
			q.Set("network_slug", upstreamNetwork(params.Get(provider.ParamNetworkSlug, "ethereum")))
			q.Set("limit", params.Get(provider.ParamLimit, "100"))
			q.Set("sort", params.Get(provider.ParamSort, "volume_24h"))
			q.Set("aux", params.Get(provider.ParamAux, "num_transactions_24h,security_scan"))
			setIfPresent(q, "scroll_id", params[provider.ParamScrollID])
			return "/v4/dex/spot-pairs/latest", q
		},
	}
}

func newDexPairQuotesFetcher(p *Provider) *dexFetcher {
	return &dexFetcher{
		BaseFetcher: provider.NewBaseFetcher(providerName, provider.EndpointDexPairQuotes,
			"Latest quote for one DEX pair by contract address",
			[]string{provider.ParamContract},
			[]string{provider.ParamNetworkSlug},
			p.transport),
		p: p,
		build: func(params provider.QueryParams) (string, url.Values) {
			q := url.Values{}
			q.Set("contract_address", params[provider.ParamContract])
			q.Set("network_slug", upstreamNetwork(params.Get(provider.ParamNetworkSlug, "ethereum")))
			return "/v4/dex/pairs/quotes/latest", q
		},
	}
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
