// Package app provides the top-level application lifecycle for the pick'em
// tool. It wires together the clients, stores, caches and notifier, and runs
// the selected command mode.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mbarrett/pickslip/internal/config"
)

// RunOptions are the per-invocation parameters supplied on the command line.
type RunOptions struct {
	Mode           string // generate, compare, submit, history
	Week           int
	Seed           int64 // 0 means "use config, else derive from season/week"
	MaxPoints      int   // 0 means "use config"
	NonInteractive bool
	AutoSubmit     bool // generate mode: push to the site after confirmation
}

// App is the root application object. It owns the configuration, logger, and
// a list of cleanup functions called in reverse order on shutdown.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     io.Writer
	in      io.Reader
	closers []func()
}

// New creates a new App from the given configuration and logger. Console
// interaction goes through stdin/stdout.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
		out:    os.Stdout,
		in:     os.Stdin,
	}
}

// Run wires all dependencies, runs the selected mode, and returns when it
// finishes. Cleanup functions registered during wiring run on Close.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if opts.Week < 1 || opts.Week > 18 {
		return fmt.Errorf("app: week must be 1-18, got %d", opts.Week)
	}

	a.logger.InfoContext(ctx, "starting",
		slog.String("mode", opts.Mode),
		slog.Int("week", opts.Week),
		slog.Int("season", a.cfg.Picks.Season),
	)

	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	switch strings.ToLower(opts.Mode) {
	case "generate":
		return a.GenerateMode(ctx, deps, opts)
	case "compare":
		return a.CompareMode(ctx, deps, opts)
	case "submit":
		return a.SubmitMode(ctx, deps, opts)
	case "history":
		return a.HistoryMode(ctx, deps, opts)
	default:
		return fmt.Errorf("app: unsupported mode %q (valid: generate, compare, submit, history)", opts.Mode)
	}
}

// Close tears down all resources in reverse registration order. Safe to call
// multiple times.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
