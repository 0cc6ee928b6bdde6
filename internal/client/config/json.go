package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations use
// timex.Duration so "3s" and integer nanoseconds are both accepted.
// Omitted keys keep their current value.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	StoreID             *string         `json:"store_id"`
	DatabasePath        *string         `json:"database_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	RedisAddr           *string         `json:"redis_addr"`
	OrderCacheTTL       *timex.Duration `json:"order_cache_ttl"`
	LogFormat           *string         `json:"log_format"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config. It is a no-op
// when no file is given and panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.StoreID, jc.StoreID)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OrderCacheTTL != nil {
		cfg.OrderCacheTTL = jc.OrderCacheTTL.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
