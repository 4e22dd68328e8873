package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/folyo/folyo/internal/infra"
)

// Transport bundles what fetchers need to reach an upstream: the HTTP
// client, an optional response cache, a per-provider rate limiter, metrics
// and a logger. Nil Cache, Limiter and Metrics disable those features.
type Transport struct {
	HTTP    *infra.HTTPClient
	Cache   infra.Store
	TTL     time.Duration
	Limiter *infra.RateLimiter
	Metrics *infra.Metrics
	Logger  *zap.Logger
}

// DefaultTransport returns an uncached, unlimited transport with a 30s timeout.
func DefaultTransport() *Transport {
	return &Transport{
		HTTP:   infra.NewHTTPClient(30*time.Second, nil),
		Logger: zap.NewNop(),
	}
}

// WithLimiter returns a copy of t using rl.
func (t *Transport) WithLimiter(rl *infra.RateLimiter) *Transport {
	cp := *t
	cp.Limiter = rl
	return &cp
}

func (t *Transport) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

// Ping issues an uncached GET and discards the body.
func (t *Transport) Ping(ctx context.Context, providerName, url string, headers map[string]string) error {
	_, err := t.HTTP.Get(ctx, providerName, "ping", url, headers)
	return err
}

// BaseFetcher provides common functionality for fetcher implementations.
// Embed this in concrete fetchers to get caching and rate limiting for free.
type BaseFetcher struct {
	provider    string
	endpoint    Endpoint
	description string
	required    []string
	optional    []string
	anyOf       [][]string
	transport   *Transport
}

// NewBaseFetcher creates a base fetcher. A nil transport uses DefaultTransport.
func NewBaseFetcher(providerName string, ep Endpoint, desc string, required, optional []string, t *Transport) BaseFetcher {
	if t == nil {
		t = DefaultTransport()
	}
	return BaseFetcher{
		provider:    providerName,
		endpoint:    ep,
		description: desc,
		required:    required,
		optional:    optional,
		transport:   t,
	}
}

// WithAnyOf adds "at least one of" parameter groups.
func (b BaseFetcher) WithAnyOf(groups ...[]string) BaseFetcher {
	b.anyOf = append(b.anyOf, groups...)
	return b
}

func (b *BaseFetcher) Endpoint() Endpoint       { return b.endpoint }
func (b *BaseFetcher) Description() string      { return b.description }
func (b *BaseFetcher) RequiredParams() []string { return b.required }
func (b *BaseFetcher) OptionalParams() []string { return b.optional }
func (b *BaseFetcher) Provider() string         { return b.provider }

// ValidateParams checks required params and any-of groups.
func (b *BaseFetcher) ValidateParams(params QueryParams) error {
	if err := ValidateParams(params, b.required); err != nil {
		return err
	}
	return ValidateAnyOf(params, b.anyOf)
}

// GetRaw fetches url, serving from the cache when possible. Every failure
// is returned as *GatewayError. The bool reports a cache hit.
func (b *BaseFetcher) GetRaw(ctx context.Context, url string, headers map[string]string) ([]byte, bool, error) {
	t := b.transport
	key := b.provider + ":" + url

	if t.Cache != nil && t.TTL > 0 {
		body, ok, err := t.Cache.Get(ctx, key)
		if err != nil {
			t.logger().Warn("cache read failed", zap.String("provider", b.provider), zap.Error(err))
		}
		t.Metrics.ObserveCache(b.provider, ok)
		if ok {
			return body, true, nil
		}
	}

	if err := t.Limiter.Wait(ctx); err != nil {
		return nil, false, b.gatewayError(err)
	}

	body, err := t.HTTP.Get(ctx, b.provider, string(b.endpoint), url, headers)
	if err != nil {
		return nil, false, b.gatewayError(err)
	}

	// Malformed bodies are never cached so the next request retries upstream.
	if t.Cache != nil && t.TTL > 0 && json.Valid(body) {
		if err := t.Cache.Set(ctx, key, body, t.TTL); err != nil {
			t.logger().Warn("cache write failed", zap.String("provider", b.provider), zap.Error(err))
		}
	}
	return body, false, nil
}

// GetJSON fetches url and decodes the body into v.
func (b *BaseFetcher) GetJSON(ctx context.Context, url string, headers map[string]string, v any) (bool, error) {
	body, cached, err := b.GetRaw(ctx, url, headers)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, &GatewayError{
			Provider:   b.provider,
			Endpoint:   b.endpoint,
			StatusCode: http.StatusOK,
			Message:    "malformed upstream JSON: " + err.Error(),
			Err:        err,
		}
	}
	return cached, nil
}

// Result builds a FetchResult for this fetcher.
func (b *BaseFetcher) Result(data any, cached bool) *FetchResult {
	return &FetchResult{
		Provider:  b.provider,
		Endpoint:  b.endpoint,
		Data:      data,
		FetchedAt: time.Now(),
		Cached:    cached,
	}
}

func (b *BaseFetcher) gatewayError(err error) *GatewayError {
	ge := &GatewayError{Provider: b.provider, Endpoint: b.endpoint, Err: err}
	var statusErr *infra.HTTPStatusError
	if errors.As(err, &statusErr) {
		ge.StatusCode = statusErr.StatusCode
		ge.Body = statusErr.Body
		ge.Message = upstreamMessage(statusErr.StatusCode, statusErr.Body)
		return ge
	}
	ge.Message = "request failed: " + err.Error()
	return ge
}

// upstreamMessage extracts a human-readable message from an error body.
func upstreamMessage(status int, body []byte) string {
	var probe struct {
		Status struct {
			ErrorMessage string `json:"error_message"`
		} `json:"status"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &probe) == nil {
		for _, m := range []string{probe.Status.ErrorMessage, probe.Message, probe.Error} {
			if m != "" {
				return m
			}
		}
	}
	return http.StatusText(status)
}

// BaseProvider provides common functionality for provider implementations.
// Embed this in concrete providers to simplify implementation.
type BaseProvider struct {
	info        ProviderInfo
	fetchers    map[Endpoint]Fetcher
	credentials map[string]string
}

// NewBaseProvider creates a base provider.
func NewBaseProvider(name, description, website string, creds []ProviderCredential) BaseProvider {
	return BaseProvider{
		info: ProviderInfo{
			Name:        name,
			Description: description,
			Website:     website,
			Credentials: creds,
		},
		fetchers:    make(map[Endpoint]Fetcher),
		credentials: make(map[string]string),
	}
}

func (bp *BaseProvider) Info() ProviderInfo { return bp.info }

// Init stores credentials and reports the first missing required one.
// Credentials are kept even on error.
func (bp *BaseProvider) Init(credentials map[string]string) error {
	bp.credentials = make(map[string]string, len(credentials))
	for k, v := range credentials {
		bp.credentials[k] = v
	}
	return bp.CheckCredentials("")
}

// CheckCredentials reports whether all required credentials are set.
func (bp *BaseProvider) CheckCredentials(Endpoint) error {
	for _, cred := range bp.info.Credentials {
		if cred.Required && bp.credentials[cred.Name] == "" {
			return &ErrInvalidCredentials{
				Provider: bp.info.Name,
				Detail:   "missing required credential: " + cred.Name,
			}
		}
	}
	return nil
}

func (bp *BaseProvider) Fetcher(ep Endpoint) Fetcher {
	return bp.fetchers[ep]
}

func (bp *BaseProvider) SupportedEndpoints() []Endpoint {
	eps := make([]Endpoint, 0, len(bp.fetchers))
	for ep := range bp.fetchers {
		eps = append(eps, ep)
	}
	sort.Slice(eps, func(i, j int) bool { return eps[i] < eps[j] })
	return eps
}

func (bp *BaseProvider) Ping(ctx context.Context) error {
	return nil // Override in concrete providers.
}

// RegisterFetcher adds a fetcher to this provider.
func (bp *BaseProvider) RegisterFetcher(f Fetcher) {
	bp.fetchers[f.Endpoint()] = f
	bp.info.Endpoints = bp.SupportedEndpoints()
}

// Credential returns a stored credential value.
func (bp *BaseProvider) Credential(name string) string {
	return bp.credentials[name]
}

// JoinURL joins a base URL and a path, tolerating stray slashes.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
