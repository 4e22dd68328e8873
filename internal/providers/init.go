// Package providers builds the upstream providers and registers them with a
// provider registry.
package providers

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/folyo/folyo/internal/infra"
	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/internal/providers/alternativeme"
	"github.com/folyo/folyo/internal/providers/coinmarketcap"
	"github.com/folyo/folyo/internal/providers/dexscreener"
)

// Options configures provider construction. Zero values select defaults.
type Options struct {
	CMCAPIKey          string
	CMCBaseURL         string
	DexScreenerBaseURL string
	FearGreedBaseURL   string

	Timeout time.Duration
	// RatePerSec caps CoinMarketCap requests per second. 0 disables the cap.
	RatePerSec int

	Cache    infra.Store
	CacheTTL time.Duration
	Metrics  *infra.Metrics
	Logger   *zap.Logger
}

// DexScreener allows 300 requests/minute on pair endpoints.
const dexScreenerPerMinute = 300

func (o Options) transport() *provider.Transport {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &provider.Transport{
		HTTP:    infra.NewHTTPClient(timeout, o.Metrics),
		Cache:   o.Cache,
		TTL:     o.CacheTTL,
		Metrics: o.Metrics,
		Logger:  logger,
	}
}

// NewRegistry creates a registry with every provider registered.
func NewRegistry(opts Options) (*provider.Registry, error) {
	reg := provider.NewRegistry()
	if err := RegisterAllTo(reg, opts); err != nil {
		return nil, err
	}
	return reg, nil
}

// RegisterAllTo registers all providers to the given registry.
// CoinMarketCap is registered even without an API key; its endpoints then
// fail with *provider.ErrInvalidCredentials at fetch time.
func RegisterAllTo(reg *provider.Registry, opts Options) error {
	t := opts.transport()
	logger := t.Logger

	// --- CoinMarketCap (requires API key) ---
	cmc := coinmarketcap.New(opts.CMCBaseURL, t.WithLimiter(infra.NewRateLimiter(opts.RatePerSec, time.Second)))
	if err := cmc.Init(map[string]string{"api_key": opts.CMCAPIKey}); err != nil {
		var creds *provider.ErrInvalidCredentials
		if !errors.As(err, &creds) {
			return err
		}
		logger.Warn("coinmarketcap API key not configured", zap.Error(err))
	}
	if err := reg.Register(cmc); err != nil {
		return err
	}

	// --- DexScreener (free, no API key) ---
	ds := dexscreener.New(opts.DexScreenerBaseURL, t.WithLimiter(infra.NewRateLimiter(dexScreenerPerMinute, time.Minute)))
	if err := ds.Init(nil); err != nil {
		return err
	}
	if err := reg.Register(ds); err != nil {
		return err
	}

	// --- Alternative.me (free, no API key) ---
	fng := alternativeme.New(opts.FearGreedBaseURL, t)
	if err := fng.Init(nil); err != nil {
		return err
	}
	return reg.Register(fng)
}
