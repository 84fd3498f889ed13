// Command pickslip is the entry point for the weekly pick'em tool. It loads
// configuration, validates it, wires dependencies, sets up signal handling,
// and runs the requested mode for the requested week.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mbarrett/pickslip/internal/app"
	"github.com/mbarrett/pickslip/internal/config"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file (empty skips the file)")
	mode := flag.String("mode", "generate", "mode: generate, compare, submit, history")
	week := flag.Int("week", 0, "NFL week number (1-18, required)")
	season := flag.Int("season", 0, "season year (overrides config)")
	seed := flag.Int64("seed", 0, "shuffle seed (overrides config; 0 derives from season and week)")
	maxPoints := flag.Int("max-points", 0, "highest confidence point value (overrides config)")
	nonInteractive := flag.Bool("non-interactive", false, "skip the adjustment and confirmation prompts")
	autoSubmit := flag.Bool("submit", false, "push picks to the site after generating")
	flag.Parse()

	// Logs go to stderr so the rendered slate on stdout stays pipeable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *week == 0 {
		fmt.Fprintln(os.Stderr, "fatal: -week is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config",
			slog.String("path", *configPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *season != 0 {
		cfg.Picks.Season = *season
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Debug("configuration loaded", slog.Any("config", config.RedactedConfig(cfg)))

	application := app.New(cfg, logger)
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = application.Run(ctx, app.RunOptions{
		Mode:           *mode,
		Week:           *week,
		Seed:           *seed,
		MaxPoints:      *maxPoints,
		NonInteractive: *nonInteractive,
		AutoSubmit:     *autoSubmit,
	})
	if err != nil {
		if err == context.Canceled {
			logger.Info("interrupted")
			return
		}
		logger.Error("run failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
