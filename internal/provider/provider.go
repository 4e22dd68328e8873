// Package provider implements the upstream provider abstraction layer.
// It defines a Provider interface, a Fetcher interface, and a central registry
// that routes relay requests to the provider serving a logical endpoint.
package provider

import (
	"context"
	"time"
)

// ProviderCredential describes a credential a provider needs.
type ProviderCredential struct {
	Name        string `json:"name"`        // e.g., "api_key"
	Description string `json:"description"` // e.g., "CoinMarketCap Pro API key"
	Required    bool   `json:"required"`
	EnvVar      string `json:"env_var"` // e.g., "CMC_API_KEY"
}

// ProviderInfo holds metadata about a registered provider.
type ProviderInfo struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Website     string               `json:"website"`
	Credentials []ProviderCredential `json:"credentials"`
	Endpoints   []Endpoint           `json:"endpoints"`
}

// Provider is the interface that all upstream providers implement.
// Each provider registers one Fetcher per logical endpoint it serves.
type Provider interface {
	// Info returns metadata about this provider.
	Info() ProviderInfo

	// Init stores credentials. It returns *ErrInvalidCredentials when a
	// required credential is missing; the provider stays usable for
	// endpoints that do not need it.
	Init(credentials map[string]string) error

	// Fetcher returns the fetcher for the given endpoint, or nil if unsupported.
	Fetcher(endpoint Endpoint) Fetcher

	// SupportedEndpoints returns all endpoints this provider serves.
	SupportedEndpoints() []Endpoint

	// Ping verifies the provider's connectivity.
	Ping(ctx context.Context) error
}

// QueryParams is the generic query parameter map passed to fetchers.
// Keys are the relay's query-string names (e.g. "chain_id", "scroll_id").
type QueryParams map[string]string

// Get returns params[key], or def when the key is absent or empty.
func (p QueryParams) Get(key, def string) string {
	if v := p[key]; v != "" {
		return v
	}
	return def
}

// Clone returns a shallow copy of p.
func (p QueryParams) Clone() QueryParams {
	out := make(QueryParams, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Query parameter names accepted by the relay.
const (
	ParamEndpoint       = "endpoint"
	ParamProvider       = "provider"
	ParamStart          = "start"
	ParamLimit          = "limit"
	ParamConvert        = "convert"
	ParamIDs            = "ids"
	ParamSlug           = "slug"
	ParamSymbol         = "symbol"
	ParamCount          = "count"
	ParamInterval       = "interval"
	ParamTimePeriod     = "time_period"
	ParamNetworkSlug    = "network_slug"
	ParamScrollID       = "scroll_id"
	ParamSort           = "sort"
	ParamAux            = "aux"
	ParamContract       = "contract_address"
	ParamChainID        = "chain_id"
	ParamTokenAddresses = "token_addresses"
	ParamPairAddress    = "pair_address"
	ParamQuery          = "q"
)

// FetchResult wraps a fetcher result with metadata.
//
// Data is json.RawMessage for passthrough endpoints, *models.PairEnvelope
// for pair endpoints and []models.BoostedToken for boost feeds.
type FetchResult struct {
	Provider  string    `json:"provider"`
	Endpoint  Endpoint  `json:"endpoint"`
	Data      any       `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
	Cached    bool      `json:"cached"`
}

// Fetcher is the interface for fetching one logical endpoint.
type Fetcher interface {
	// Endpoint returns the logical endpoint this fetcher serves.
	Endpoint() Endpoint

	// Description returns a human-readable description of what this fetcher does.
	Description() string

	// RequiredParams returns the parameter keys this fetcher requires.
	RequiredParams() []string

	// OptionalParams returns the parameter keys this fetcher optionally accepts.
	OptionalParams() []string

	// Fetch retrieves data for the given query parameters.
	Fetch(ctx context.Context, params QueryParams) (*FetchResult, error)
}

// ParamValidator is implemented by fetchers with validation rules beyond
// RequiredParams, such as "at least one of" groups.
type ParamValidator interface {
	ValidateParams(params QueryParams) error
}

// CredentialChecker is implemented by providers that can report whether
// the credentials needed by an endpoint are configured.
type CredentialChecker interface {
	CheckCredentials(endpoint Endpoint) error
}

// ValidateParams checks that all required parameters are present in params.
func ValidateParams(params QueryParams, required []string) error {
	for _, key := range required {
		if v, ok := params[key]; !ok || v == "" {
			return &ErrMissingParam{Param: key}
		}
	}
	return nil
}

// ValidateAnyOf checks that at least one key of each group is present.
func ValidateAnyOf(params QueryParams, groups [][]string) error {
	for _, group := range groups {
		found := false
		for _, key := range group {
			if params[key] != "" {
				found = true
				break
			}
		}
		if !found {
			return &ErrMissingParam{AnyOf: group}
		}
	}
	return nil
}
