// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/romedit/internal/options"
	"github.com/retroenv/romedit/internal/session"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// SessionOptions returns the session options for the program options.
func SessionOptions(opts options.Program) session.Options {
	return session.Options{
		PruneStaleTranslations: !opts.KeepStale,
	}
}
