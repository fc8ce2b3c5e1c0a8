// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/purify/internal/clipboard"
	"github.com/law-makers/purify/internal/config"
	"github.com/law-makers/purify/internal/purifier"
	"github.com/law-makers/purify/internal/ui"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation and shared by the command handlers.
// Use Close() to release it.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Purifier  *purifier.Purifier
	Clipboard clipboard.Clipboard
	// PatternErrors holds the ASIN patterns that failed to compile. They are
	// excluded from matching.
	PatternErrors []error
	startTime     time.Time
}

// Options customize New. The zero value uses the system clipboard and stderr.
type Options struct {
	Clipboard clipboard.Clipboard
	LogWriter io.Writer
}

// New creates and initializes a new Application.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Extends the built-in tracking rules with configured names and prefixes
//   - Compiles the ASIN patterns, skipping any that fail
//   - Creates the purifier and attaches the clipboard
func New(ctx context.Context, cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := NewLogger(cfg, opts.LogWriter)
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Str("config_file", cfg.ConfigFile).
		Msg("Logger initialized")

	rules := purifier.DefaultRules().Extend(cfg.ExtraParams, cfg.ExtraPrefixes, cfg.KeepParams)
	logger.Debug().
		Int("names", len(rules.Names())).
		Int("prefixes", len(rules.Prefixes())).
		Int("kept", len(rules.Kept())).
		Msg("Tracking rules initialized")

	patterns := append(append([]string{}, purifier.DefaultASINPatterns...), cfg.ExtraASINPatterns...)
	matchers, patternErrs := purifier.CompileASINPatterns(patterns, logger)
	logger.Debug().
		Int("compiled", len(matchers)).
		Int("skipped", len(patternErrs)).
		Msg("ASIN patterns initialized")

	p := purifier.New(purifier.Options{
		Rules:     rules,
		Matchers:  matchers,
		Normalize: cfg.Normalize,
		Logger:    logger,
	})

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.System{}
	}

	a := &Application{
		Config:        cfg,
		Logger:        &logger,
		Purifier:      p,
		Clipboard:     clip,
		PatternErrors: patternErrs,
		startTime:     time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return a, nil
}

// NewLogger builds the zerolog logger described by cfg. A nil writer means stderr.
func NewLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	if w == nil {
		w = os.Stderr
	}
	if !cfg.JSONLog {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !ui.For(w).Colored()}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Close releases the application.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
