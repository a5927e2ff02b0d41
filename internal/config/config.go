// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
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

// CreateProgramLogger creates the logger matching the program options.
// Tracing logs at debug level and overrides quiet mode.
func CreateProgramLogger(opts options.Program) *log.Logger {
	return CreateLogger(opts.Debug || opts.Trace, opts.Quiet && !opts.Trace)
}
