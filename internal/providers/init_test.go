package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/folyo/folyo/internal/infra"
	"github.com/folyo/folyo/internal/provider"
)

func TestRegisterAllTo(t *testing.T) {
	reg := provider.NewRegistry()
	if err := RegisterAllTo(reg, Options{}); err != nil {
		t.Fatalf("RegisterAllTo: %v", err)
	}

	for _, name := range []string{"coinmarketcap", "dexscreener", "alternativeme"} {
		if _, err := reg.Get(name); err != nil {
			t.Errorf("%s not registered: %v", name, err)
		}
	}
}

func TestEveryEndpointCovered(t *testing.T) {
	reg, err := NewRegistry(Options{})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	cov := reg.Coverage()
	for _, ep := range provider.AllEndpoints {
		if len(cov[ep]) == 0 {
			t.Errorf("endpoint %s has no provider", ep)
		}
	}
}

func TestMissingCMCKeyFailsAtFetch(t *testing.T) {
	reg, err := NewRegistry(Options{})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	_, err = reg.Fetch(context.Background(), provider.EndpointListings, provider.QueryParams{})
	var creds *provider.ErrInvalidCredentials
	if !errors.As(err, &creds) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCacheSharedAcrossRequests(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	reg, err := NewRegistry(Options{
		FearGreedBaseURL: srv.URL,
		Cache:            infra.NewMemoryStore(),
		CacheTTL:         time.Minute,
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	for i := 0; i < 3; i++ {
		res, err := reg.Fetch(context.Background(), provider.EndpointFearGreed, provider.QueryParams{})
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if i > 0 && !res.Cached {
			t.Errorf("request %d should be served from cache", i)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 upstream hit, got %d", hits.Load())
	}
}
