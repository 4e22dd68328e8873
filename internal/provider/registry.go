package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Registry is a thread-safe registry of upstream providers.
// It maps provider names to Provider instances and maintains an index
// of which providers serve which logical endpoints.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	epIdx     map[Endpoint][]string // endpoint → provider names (priority order)
	defaults  map[Endpoint]string   // endpoint → default provider name
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		epIdx:     make(map[Endpoint][]string),
		defaults:  make(map[Endpoint]string),
	}
}

// Register adds a provider to the registry.
// Duplicate registrations overwrite the previous entry.
func (r *Registry) Register(p Provider) error {
	info := p.Info()
	if info.Name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[info.Name] = p

	for _, ep := range p.SupportedEndpoints() {
		existing := r.epIdx[ep]
		found := false
		for _, name := range existing {
			if name == info.Name {
				found = true
				break
			}
		}
		if !found {
			r.epIdx[ep] = append(existing, info.Name)
		}
		if _, ok := r.defaults[ep]; !ok {
			r.defaults[ep] = info.Name
		}
	}

	return nil
}

// Get returns a provider by name, or an error if not found.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}
	return p, nil
}

// List returns info about all registered providers, sorted by name.
func (r *Registry) List() []ProviderInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ProviderInfo, 0, len(r.providers))
	for _, p := range r.providers {
		infos = append(infos, p.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// ProvidersFor returns the names of providers serving ep, default first.
func (r *Registry) ProvidersFor(ep Endpoint) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.epIdx[ep]
	result := make([]string, len(names))
	copy(result, names)
	return result
}

// Coverage returns a map of endpoints to the providers that serve them.
func (r *Registry) Coverage() map[Endpoint][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coverage := make(map[Endpoint][]string, len(r.epIdx))
	for ep, names := range r.epIdx {
		cp := make([]string, len(names))
		copy(cp, names)
		coverage[ep] = cp
	}
	return coverage
}

// Fetch serves ep using the provider named in params (or the default).
// Missing parameters and credentials fail before any upstream call.
// Upstream failures are returned as *GatewayError.
func (r *Registry) Fetch(ctx context.Context, ep Endpoint, params QueryParams) (*FetchResult, error) {
	providerName := params[ParamProvider]

	r.mu.RLock()
	if providerName == "" {
		providerName = r.defaults[ep]
	}
	p, ok := r.providers[providerName]
	r.mu.RUnlock()

	if providerName == "" {
		return nil, &ErrEndpointNotSupported{Endpoint: ep}
	}
	if !ok {
		return nil, &ErrProviderNotFound{Name: providerName}
	}

	fetcher := p.Fetcher(ep)
	if fetcher == nil {
		return nil, &ErrEndpointNotSupported{Provider: providerName, Endpoint: ep}
	}

	if cc, ok := p.(CredentialChecker); ok {
		if err := cc.CheckCredentials(ep); err != nil {
			return nil, err
		}
	}

	if v, ok := fetcher.(ParamValidator); ok {
		if err := v.ValidateParams(params); err != nil {
			return nil, err
		}
	} else if err := ValidateParams(params, fetcher.RequiredParams()); err != nil {
		return nil, err
	}

	result, err := fetcher.Fetch(ctx, params)
	if err != nil {
		return nil, wrapFetchError(providerName, ep, err)
	}

	result.Provider = providerName
	result.Endpoint = ep
	if result.FetchedAt.IsZero() {
		result.FetchedAt = time.Now()
	}
	return result, nil
}

func wrapFetchError(providerName string, ep Endpoint, err error) error {
	var ge *GatewayError
	if errors.As(err, &ge) || errors.Is(err, ErrNotFound) || IsConfigError(err) {
		return err
	}
	return &GatewayError{
		Provider: providerName,
		Endpoint: ep,
		Message:  err.Error(),
		Err:      err,
	}
}

// Ping pings every registered provider and returns the errors by name.
func (r *Registry) Ping(ctx context.Context) map[string]error {
	r.mu.RLock()
	providers := make(map[string]Provider, len(r.providers))
	for name, p := range r.providers {
		providers[name] = p
	}
	r.mu.RUnlock()

	out := make(map[string]error, len(providers))
	for name, p := range providers {
		out[name] = p.Ping(ctx)
	}
	return out
}
