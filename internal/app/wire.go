package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mbarrett/pickslip/internal/cache/redis"
	"github.com/mbarrett/pickslip/internal/config"
	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/notify"
	"github.com/mbarrett/pickslip/internal/pipeline"
	"github.com/mbarrett/pickslip/internal/platform/espn"
	"github.com/mbarrett/pickslip/internal/platform/oddsapi"
	"github.com/mbarrett/pickslip/internal/store/postgres"
	"github.com/mbarrett/pickslip/internal/submit"
)

// Dependencies bundles the wired collaborators the modes operate on.
// SlateStore is nil when no database is configured; the modes degrade to
// in-memory behaviour in that case.
type Dependencies struct {
	Builder       *pipeline.Builder
	SlateStore    domain.SlateStore
	Notifier      *notify.Notifier
	Browser       *submit.Browser
	HTTPClient    *http.Client
	TieBreakerDay time.Weekday
	Location      *time.Location
}

// Wire constructs every dependency from config. It returns the dependencies,
// a cleanup function that releases connections in reverse order, and any
// construction error. On error the cleanup of already-built resources has
// already run.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, func() {}, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	tieBreakerDay, err := cfg.Picks.TieBreakerWeekday()
	if err != nil {
		return nil, func() {}, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	espnClient := espn.NewClient(
		espn.WithBaseURLs(cfg.ESPN.ScoreboardURL, cfg.ESPN.OddsURLFormat),
		espn.WithHTTPClient(httpClient),
	)

	var oddsAPIClient *oddsapi.Client
	if cfg.OddsAPI.APIKey != "" {
		oddsAPIClient = oddsapi.NewClient(cfg.OddsAPI.APIKey, cfg.OddsAPI.SportKey,
			oddsapi.WithHTTPClient(httpClient))
	}

	var responseCache domain.ResponseCache
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close failed", slog.String("error", err.Error()))
			}
		})
		responseCache = redis.NewResponseCache(redisClient)
		logger.Info("response cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	var slateStore domain.SlateStore
	if cfg.Postgres.Enabled() {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, func() {}, fmt.Errorf("run migrations: %w", err)
			}
		}
		slateStore = postgres.NewSlateStore(pgClient.Pool())
		logger.Info("slate history enabled")
	}

	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	notifier := notify.NewNotifier(senders, logger)

	browser := submit.NewBrowser(submit.BrowserConfig{
		LoginURL:    cfg.Site.LoginURL,
		MakeWeekURL: cfg.Site.MakeWeekURL,
		LoginID:     cfg.Site.LoginID,
		Password:    cfg.Site.Password,
		LoginKey:    cfg.Site.LoginKey,
		Headless:    cfg.Site.Headless,
		Timeout:     cfg.Site.Timeout.Duration,
	}, logger)

	builder := pipeline.NewBuilder(espnClient, oddsAPIClient, responseCache, cfg.Redis.ResponseTTL.Duration, pipeline.Options{
		Season:            cfg.Picks.Season,
		OddsSource:        cfg.Picks.OddsSource,
		PreferredProvider: cfg.ESPN.PreferredProvider,
		Bookmakers:        cfg.OddsAPI.Bookmakers,
		FallbackDir:       cfg.Fallback.Dir,
		SkipThursday:      cfg.Picks.SkipThursday,
		MaxPoints:         cfg.Picks.MaxPoints,
		TieBreakerDay:     tieBreakerDay,
		Location:          location,
	}, logger)

	return &Dependencies{
		Builder:       builder,
		SlateStore:    slateStore,
		Notifier:      notifier,
		Browser:       browser,
		HTTPClient:    httpClient,
		TieBreakerDay: tieBreakerDay,
		Location:      location,
	}, cleanup, nil
}
