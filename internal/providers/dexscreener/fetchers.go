package dexscreener

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/pkg/models"
)

// ---- Tokens fetcher ----
// Returns every pair that trades any of up to 30 token addresses on one chain.

type tokensFetcher struct {
	provider.BaseFetcher
	p *Provider
}

func newTokensFetcher(p *Provider) *tokensFetcher {
	return &tokensFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			providerName,
			provider.EndpointScreenerToken,
			"Pairs for a comma-separated list of token addresses on one chain",
			[]string{provider.ParamTokenAddresses},
			[]string{provider.ParamChainID},
			p.transport,
		),
		p: p,
	}
}

func (f *tokensFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	chain := chainParam(params)
	addrs := params[provider.ParamTokenAddresses]

	var raws []RawPair
	cached, err := f.GetJSON(ctx, f.p.url("/tokens/v1/"+url.PathEscape(chain)+"/"+addrs), nil, &raws)
	if err != nil {
		return nil, err
	}
	return f.Result(models.NewEnvelope(NormalizeBatch(raws)), cached), nil
}

// ---- Pair fetcher ----
// Looks a pair up by address, falling back to search when the direct
// endpoint has nothing.

type pairFetcher struct {
	provider.BaseFetcher
	p *Provider
}

func newPairFetcher(p *Provider) *pairFetcher {
	return &pairFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			providerName,
			provider.EndpointScreenerPair,
			"One pair by chain and pair address",
			[]string{provider.ParamPairAddress},
			[]string{provider.ParamChainID},
			p.transport,
		),
		p: p,
	}
}

func (f *pairFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	chain := chainParam(params)
	addr := strings.TrimSpace(params[provider.ParamPairAddress])

	var direct pairsResponse
	cached, err := f.GetJSON(ctx, f.p.url("/latest/dex/pairs/"+url.PathEscape(chain)+"/"+url.PathEscape(addr)), nil, &direct)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	candidates := direct.Pairs
	if direct.Pair != nil {
		candidates = append(candidates, *direct.Pair)
	}
	if raw, ok := matchPair(candidates, addr); ok {
		return f.Result(models.NewEnvelope([]models.Pair{NormalizePair(raw)}), cached), nil
	}

	var search pairsResponse
	cached, err = f.GetJSON(ctx, f.p.url("/latest/dex/search?q="+url.QueryEscape(addr)), nil, &search)
	if err != nil {
		return nil, err
	}
	if raw, ok := matchPair(search.Pairs, addr); ok {
		return f.Result(models.NewEnvelope([]models.Pair{NormalizePair(raw)}), cached), nil
	}
	return nil, provider.ErrNotFound
}

// matchPair returns the first candidate whose pair address equals addr.
func matchPair(candidates []RawPair, addr string) (RawPair, bool) {
	for _, c := range candidates {
		if strings.EqualFold(c.PairAddress, addr) {
			return c, true
		}
	}
	return RawPair{}, false
}

func isNotFound(err error) bool {
	var ge *provider.GatewayError
	return errors.As(err, &ge) && ge.StatusCode == http.StatusNotFound
}

// ---- Search fetcher ----

type searchFetcher struct {
	provider.BaseFetcher
	p *Provider
}

func newSearchFetcher(p *Provider) *searchFetcher {
	return &searchFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			providerName,
			provider.EndpointScreenerQuery,
			"Free-text pair search by symbol, name or address",
			[]string{provider.ParamQuery},
			nil,
			p.transport,
		),
		p: p,
	}
}

func (f *searchFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	q := strings.TrimSpace(params[provider.ParamQuery])

	var resp pairsResponse
	cached, err := f.GetJSON(ctx, f.p.url("/latest/dex/search?q="+url.QueryEscape(q)), nil, &resp)
	if err != nil {
		return nil, err
	}
	return f.Result(models.NewEnvelope(NormalizeBatch(resp.Pairs)), cached), nil
}

// ---- Boosts fetcher ----

type boostsFetcher struct {
	provider.BaseFetcher
	p    *Provider
	path string
}

func newBoostsFetcher(p *Provider, ep provider.Endpoint, path, desc string) *boostsFetcher {
	return &boostsFetcher{
		BaseFetcher: provider.NewBaseFetcher(providerName, ep, desc, nil, nil, p.transport),
		p:           p,
		path:        path,
	}
}

func (f *boostsFetcher) Fetch(ctx context.Context, _ provider.QueryParams) (*provider.FetchResult, error) {
	var raws []RawBoost
	cached, err := f.GetJSON(ctx, f.p.url(f.path), nil, &raws)
	if err != nil {
		return nil, err
	}
	out := make([]models.BoostedToken, 0, len(raws))
	for _, r := range raws {
		if r.TokenAddress == "" {
			continue
		}
		out = append(out, NormalizeBoost(r))
	}
	return f.Result(out, cached), nil
}

func chainParam(params provider.QueryParams) string {
	return strings.ToLower(params.Get(provider.ParamChainID, chains.Default))
}
