// Package config loads runtime configuration for the ViviGo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. A .env file in the working directory, then VIVIGO_* environment
//     variables.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   backend base URL
//	-s string   session store: sqlite, redis or memory
//	-d string   SQLite DSN
//	-r string   Redis URL
//	-t int      refresh threshold (seconds)
//	-i int      session watch interval (seconds, 0 disables)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so "5m" and integer nanoseconds both work:
//
//	{
//	  "api_base_url": "https://api.vivigo.example",
//	  "store": "redis",
//	  "redis_url": "redis://localhost:6379/0",
//	  "refresh_threshold": "5m",
//	  "request_timeout": "10s",
//	  "watch_interval": "1m",
//	  "log_level": "debug"
//	}
//
// # Environment
//
//	VIVIGO_API_BASE_URL, VIVIGO_STORE, VIVIGO_DATABASE_DSN, VIVIGO_REDIS_URL,
//	VIVIGO_REFRESH_THRESHOLD (e.g. "5m"), VIVIGO_REQUEST_TIMEOUT,
//	VIVIGO_WATCH_INTERVAL, VIVIGO_LOG_LEVEL
package config
