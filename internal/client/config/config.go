package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the storefront CLI.
//
// Env tags are applied by parseEnv; a variable that is unset leaves the field
// as loaded by the earlier stages.
type Config struct {
	ServerURL           string        `env:"STOREFRONT_SERVER_URL"`
	StoreID             string        `env:"STOREFRONT_STORE_ID"`
	DatabasePath        string        `env:"STOREFRONT_DB_PATH"`
	OnlineCheckInterval time.Duration `env:"STOREFRONT_ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT"`
	RedisAddr           string        `env:"STOREFRONT_REDIS_ADDR"`
	OrderCacheTTL       time.Duration `env:"STOREFRONT_ORDER_CACHE_TTL"`
	LogFormat           string        `env:"STOREFRONT_LOG_FORMAT"`
	LogLevel            string        `env:"STOREFRONT_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.StoreID = "main"
	c.DatabasePath = "storefront.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.RedisAddr = ""
	c.OrderCacheTTL = 5 * time.Minute
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// parseEnv overlays STOREFRONT_* variables. Malformed values panic, matching
// the JSON and flag stages.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
