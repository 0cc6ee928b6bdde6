// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. STOREFRONT_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   storefront API base URL
//	-s string   store identifier
//	-d string   local database path
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "https://shop.example.com/api",
//	  "store_id": "main",
//	  "database_path": "data/storefront.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "redis_addr": "127.0.0.1:6379",
//	  "order_cache_ttl": "5m",
//	  "log_format": "json",
//	  "log_level": "debug"
//	}
package config
