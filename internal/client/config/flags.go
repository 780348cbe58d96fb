package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/vivigo/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
//	-a string   backend base URL
//	-s string   session store: sqlite, redis or memory
//	-d string   SQLite DSN
//	-r string   Redis URL
//	-t int      refresh threshold (seconds)
//	-i int      session watch interval (seconds, 0 disables)
//	-l string   log level
//
// Arguments other than these are dropped with flagx.FilterArgs so -c and
// friends do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-d", "-r", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("vivigo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "session store (sqlite|redis|memory)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite DSN")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "Redis URL")
	threshold := fs.Int("t", int(cfg.RefreshThreshold.Seconds()), "refresh threshold (in seconds)")
	interval := fs.Int("i", int(cfg.WatchInterval.Seconds()), "session watch interval (in seconds, 0 disables)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RefreshThreshold = time.Duration(*threshold) * time.Second
		case "i":
			cfg.WatchInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
