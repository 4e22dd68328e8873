// Command folyo is the DEX pair discovery dashboard and market-data relay.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/folyo/folyo/api"
	"github.com/folyo/folyo/internal/config"
	"github.com/folyo/folyo/internal/gateway"
	"github.com/folyo/folyo/internal/infra"
	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/internal/providers"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set by PersistentPreRunE.
var (
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "folyo",
	Short: "folyo: DEX pair discovery and market-data relay",
	Long: `folyo relays CoinMarketCap, DexScreener and alternative.me behind one
endpoint and discovers trending DEX pairs across networks.

Commands run against upstreams in-process unless --relay points them at a
running folyo server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if cfg, err = config.LoadPath(configFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		if relay, _ := cmd.Flags().GetString("relay"); relay != "" {
			cfg.API.RelayURL = relay
		}

		logger, err = infra.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("relay", "", "base URL of a folyo server to query instead of upstreams")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(networksCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("folyo %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (relay + API server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relay and HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.API.Port = port
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		metrics := infra.NewMetrics("folyo")
		reg, closeCache, err := buildRegistry(metrics)
		if err != nil {
			return err
		}
		defer closeCache()

		api.Version = version
		srv, err := api.NewServer(cfg, api.Deps{
			Registry: reg,
			Metrics:  metrics,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		return srv.ListenAndServe(cmd.Context(), cfg.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides api.port)")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, API keys and upstream reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  folyo — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:   %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Strategy:      %s (chain: %s, page size: %d)\n",
			cfg.Discovery.Strategy, cfg.Discovery.DefaultChain, cfg.Discovery.PageSize)
		fmt.Printf("    Cache:         %s (ttl: %s)\n", cfg.Cache.Backend, cfg.CacheTTL())
		fmt.Printf("    API Server:    %s\n", cfg.Addr())
		if cfg.API.RelayURL != "" {
			fmt.Printf("    Relay:         %s\n", cfg.API.RelayURL)
		}
		fmt.Println()

		fmt.Println("  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}
		fmt.Println()

		reg, closeCache, err := buildRegistry(nil)
		if err != nil {
			return err
		}
		defer closeCache()

		fmt.Println("  Upstreams:")
		results := reg.Ping(cmd.Context())
		for _, info := range reg.List() {
			status := "✅ reachable"
			if err := results[info.Name]; err != nil {
				status = "❌ " + err.Error()
			}
			fmt.Printf("    %-25s %s\n", info.Name+":", status)
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Wiring ---

// buildCache returns the configured response cache and a close func.
func buildCache() (infra.Store, func(), error) {
	noop := func() {}
	switch strings.ToLower(cfg.Cache.Backend) {
	case "", "memory":
		return infra.NewMemoryStore(), noop, nil
	case "none":
		return nil, noop, nil
	case "redis":
		store, err := infra.DialRedis(cfg.Cache.RedisURL, "folyo:")
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}

// buildRegistry registers every upstream provider. metrics may be nil.
func buildRegistry(metrics *infra.Metrics) (*provider.Registry, func(), error) {
	cache, closeCache, err := buildCache()
	if err != nil {
		return nil, nil, err
	}
	reg, err := providers.NewRegistry(providers.Options{
		CMCAPIKey:          cfg.Upstream.CMCAPIKey,
		CMCBaseURL:         cfg.Upstream.CMCBaseURL,
		DexScreenerBaseURL: cfg.Upstream.DexScreenerBaseURL,
		FearGreedBaseURL:   cfg.Upstream.FearGreedURL,
		Timeout:            cfg.Timeout(),
		RatePerSec:         cfg.Upstream.RateLimitPerSec,
		Cache:              cache,
		CacheTTL:           cfg.CacheTTL(),
		Metrics:            metrics,
		Logger:             logger,
	})
	if err != nil {
		closeCache()
		return nil, nil, err
	}
	return reg, closeCache, nil
}

// buildClient returns a gateway client: remote when a relay URL is set,
// otherwise in-process over a fresh registry.
func buildClient() (gateway.Client, func(), error) {
	if cfg.API.RelayURL != "" {
		logger.Debug("using remote relay", zap.String("url", cfg.API.RelayURL))
		return gateway.NewRemote(cfg.API.RelayURL, nil), func() {}, nil
	}
	reg, closeCache, err := buildRegistry(nil)
	if err != nil {
		return nil, nil, err
	}
	return gateway.NewLocal(reg), closeCache, nil
}

// signalContext is cmd.Context() cancelled on SIGINT/SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}
