package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vivigo/internal/flagx"
	"github.com/dmitrijs2005/vivigo/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// may be strings like "5m" or integer nanoseconds. Absent fields keep
// their current value.
type JsonConfig struct {
	APIBaseURL       *string         `json:"api_base_url"`
	StoreBackend     *string         `json:"store"`
	DatabaseDSN      *string         `json:"database_dsn"`
	RedisURL         *string         `json:"redis_url"`
	RefreshThreshold *timex.Duration `json:"refresh_threshold"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	WatchInterval    *timex.Duration `json:"watch_interval"`
	LogLevel         *string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c or -config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.StoreBackend, jc.StoreBackend)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.RedisURL, jc.RedisURL)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RefreshThreshold != nil {
		cfg.RefreshThreshold = jc.RefreshThreshold.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.WatchInterval != nil {
		cfg.WatchInterval = jc.WatchInterval.Duration
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
