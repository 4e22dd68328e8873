// Package config handles configuration loading for folyo.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FOLYO_API_PORT.
const EnvPrefix = "FOLYO"

// LegacyCMCKeyEnv is the bare CoinMarketCap key variable the relay has
// always read.
const LegacyCMCKeyEnv = "CMC_API_KEY"

// Config represents the complete application configuration.
type Config struct {
	Upstream  UpstreamConfig  `mapstructure:"upstream"  yaml:"upstream"`
	Discovery DiscoveryConfig `mapstructure:"discovery" yaml:"discovery"`
	Detail    DetailConfig    `mapstructure:"detail"    yaml:"detail"`
	Cache     CacheConfig     `mapstructure:"cache"     yaml:"cache"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// UpstreamConfig holds market-data provider settings.
type UpstreamConfig struct {
	CMCAPIKey          string `mapstructure:"cmc_api_key"          yaml:"cmc_api_key"`
	CMCBaseURL         string `mapstructure:"cmc_base_url"         yaml:"cmc_base_url"`
	DexScreenerBaseURL string `mapstructure:"dexscreener_base_url" yaml:"dexscreener_base_url"`
	FearGreedURL       string `mapstructure:"fear_greed_url"       yaml:"fear_greed_url"`
	TimeoutSec         int    `mapstructure:"timeout_sec"          yaml:"timeout_sec"`
	RateLimitPerSec    int    `mapstructure:"rate_limit_per_sec"   yaml:"rate_limit_per_sec"` // CoinMarketCap only, 0 = unlimited
}

// DiscoveryConfig holds pair discovery settings.
type DiscoveryConfig struct {
	Strategy     string `mapstructure:"strategy"      yaml:"strategy"` // "boosted", "popular", "fixed"
	DefaultChain string `mapstructure:"default_chain" yaml:"default_chain"`
	PageSize     int    `mapstructure:"page_size"     yaml:"page_size"`
}

// DetailConfig holds pair detail settings.
type DetailConfig struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// CacheConfig holds upstream response cache settings.
type CacheConfig struct {
	Backend  string `mapstructure:"backend"   yaml:"backend"` // "memory", "redis", "none"
	TTLSec   int    `mapstructure:"ttl_sec"   yaml:"ttl_sec"`
	RedisURL string `mapstructure:"redis_url" yaml:"redis_url"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
	// RelayURL points CLI commands at a running server instead of calling
	// upstreams in-process.
	RelayURL string `mapstructure:"relay_url" yaml:"relay_url"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.folyo/config.yaml (home directory)
//  3. /etc/folyo/config.yaml (system)
//
// Environment variables override config file values.
// Format: FOLYO_<SECTION>_<KEY>, e.g., FOLYO_UPSTREAM_CMC_API_KEY
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".folyo"))
	v.AddConfigPath("/etc/folyo")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

// LoadPath loads from path when set, otherwise searches the default paths.
func LoadPath(path string) (*Config, error) {
	if path != "" {
		return LoadFromFile(path)
	}
	return Load()
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Upstream defaults
	v.SetDefault("upstream.cmc_api_key", "")
	v.SetDefault("upstream.cmc_base_url", "https://pro-api.coinmarketcap.com")
	v.SetDefault("upstream.dexscreener_base_url", "https://api.dexscreener.com")
	v.SetDefault("upstream.fear_greed_url", "https://api.alternative.me")
	v.SetDefault("upstream.timeout_sec", 30)
	v.SetDefault("upstream.rate_limit_per_sec", 0)

	// Discovery defaults
	v.SetDefault("discovery.strategy", "boosted")
	v.SetDefault("discovery.default_chain", "all")
	v.SetDefault("discovery.page_size", 30)

	// Detail defaults
	v.SetDefault("detail.refresh_interval_sec", 60)

	// Cache defaults
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl_sec", 30)
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})
	v.SetDefault("api.relay_url", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
// The prefixed variable wins over the legacy one.
func overrideFromEnv(cfg *Config) {
	if cfg.Upstream.CMCAPIKey == "" {
		if key := os.Getenv(LegacyCMCKeyEnv); key != "" {
			cfg.Upstream.CMCAPIKey = key
		}
	}
	if key := os.Getenv(EnvPrefix + "_UPSTREAM_CMC_API_KEY"); key != "" {
		cfg.Upstream.CMCAPIKey = key
	}
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("cache.backend: unknown backend %q (want memory, redis or none)", c.Cache.Backend)
	}
	switch strings.ToLower(c.Discovery.Strategy) {
	case "boosted", "popular", "fixed":
	default:
		return fmt.Errorf("discovery.strategy: unknown strategy %q", c.Discovery.Strategy)
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port: %d out of range", c.API.Port)
	}
	return nil
}

// Timeout returns the upstream request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSec) * time.Second
}

// CacheTTL returns the response cache TTL. Zero disables caching.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.Backend == "none" {
		return 0
	}
	return time.Duration(c.Cache.TTLSec) * time.Second
}

// RefreshInterval returns the pair detail refresh period.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Detail.RefreshIntervalSec) * time.Second
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.API.Host, strconv.Itoa(c.API.Port))
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
