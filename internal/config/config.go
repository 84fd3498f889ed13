// Package config defines the top-level configuration for the pick'em tool
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by PICKSLIP_* environment
// variables.
type Config struct {
	ESPN     ESPNConfig     `toml:"espn"`
	OddsAPI  OddsAPIConfig  `toml:"odds_api"`
	Fallback FallbackConfig `toml:"fallback"`
	Site     SiteConfig     `toml:"site"`
	Picks    PicksConfig    `toml:"picks"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	Notify   NotifyConfig   `toml:"notify"`
	Timezone string         `toml:"timezone"`
	LogLevel string         `toml:"log_level"`
}

// ESPNConfig holds the schedule and per-event odds endpoints.
type ESPNConfig struct {
	ScoreboardURL     string `toml:"scoreboard_url"`
	OddsURLFormat     string `toml:"odds_url_format"`
	PreferredProvider string `toml:"preferred_provider"`
}

// OddsAPIConfig holds The Odds API credentials and preferences. When APIKey
// is empty the primary odds source falls back to ESPN's per-event endpoint.
type OddsAPIConfig struct {
	APIKey     string   `toml:"api_key"`
	SportKey   string   `toml:"sport_key"`
	Bookmakers []string `toml:"bookmakers"`
}

// FallbackConfig points at the directory of saved SportsbookReview week
// pages (sbr_week<N>.html). Empty disables the fallback layer.
type FallbackConfig struct {
	Dir string `toml:"dir"`
}

// SiteConfig holds the pool site endpoints and credentials used for reading
// back and submitting picks.
type SiteConfig struct {
	LoginURL    string   `toml:"login_url"`
	MakeWeekURL string   `toml:"make_week_url"`
	LoginID     string   `toml:"login_id"`
	Password    string   `toml:"password"`
	LoginKey    string   `toml:"login_key"`
	Headless    bool     `toml:"headless"`
	Timeout     duration `toml:"timeout"`
}

// PicksConfig holds assignment parameters.
type PicksConfig struct {
	Season        int    `toml:"season"`
	MaxPoints     int    `toml:"max_points"`
	Seed          int64  `toml:"seed"` // 0 derives season*100+week
	TieBreakerDay string `toml:"tie_breaker_day"`
	OddsSource    string `toml:"odds_source"` // "the-odds-api" or "espn"
	SkipThursday  bool   `toml:"skip_thursday"`
}

// PostgresConfig holds PostgreSQL connection parameters for slate history.
// Leaving Host and DSN empty disables persistence.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// Enabled reports whether any connection target was configured.
func (p PostgresConfig) Enabled() bool {
	return strings.TrimSpace(p.DSN) != "" || p.Host != ""
}

// RedisConfig holds Redis connection parameters for the response cache.
// Leaving Addr empty disables caching.
type RedisConfig struct {
	Addr        string   `toml:"addr"`
	Password    string   `toml:"password"`
	DB          int      `toml:"db"`
	PoolSize    int      `toml:"pool_size"`
	MaxRetries  int      `toml:"max_retries"`
	TLSEnabled  bool     `toml:"tls_enabled"`
	ResponseTTL duration `toml:"response_ttl"`
}

// Enabled reports whether a cache target was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// NotifyConfig holds chat delivery credentials. Channels with empty
// credentials are simply not registered.
type NotifyConfig struct {
	TelegramToken     string `toml:"telegram_token"`
	TelegramChatID    string `toml:"telegram_chat_id"`
	DiscordWebhookURL string `toml:"discord_webhook_url"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the built-in configuration the TOML file is merged onto.
func Defaults() Config {
	return Config{
		ESPN: ESPNConfig{
			ScoreboardURL:     "https://site.web.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard",
			OddsURLFormat:     "https://sports.core.api.espn.com/v2/sports/football/leagues/nfl/events/%s/competitions/%s/odds",
			PreferredProvider: "ESPN BET",
		},
		OddsAPI: OddsAPIConfig{
			SportKey:   "americanfootball_nfl",
			Bookmakers: []string{"fanduel", "draftkings", "betmgm"},
		},
		Site: SiteConfig{
			LoginURL:    "https://fantasyteamsnetwork.com/play/login",
			MakeWeekURL: "https://fantasyteamsnetwork.com/play/make_week",
			Headless:    true,
			Timeout:     duration{2 * time.Minute},
		},
		Picks: PicksConfig{
			Season:        time.Now().Year(),
			MaxPoints:     16,
			TieBreakerDay: "Monday",
			OddsSource:    "the-odds-api",
			SkipThursday:  true,
		},
		Postgres: PostgresConfig{
			Port:          5432,
			SSLMode:       "disable",
			PoolMaxConns:  4,
			PoolMinConns:  0,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			PoolSize:    4,
			MaxRetries:  3,
			ResponseTTL: duration{15 * time.Minute},
		},
		Timezone: "America/New_York",
		LogLevel: "info",
	}
}

// validOddsSources enumerates the accepted values for Picks.OddsSource.
var validOddsSources = map[string]bool{
	"the-odds-api": true,
	"espn":         true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validWeekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// TieBreakerWeekday resolves the configured tie-breaker day name.
func (p PicksConfig) TieBreakerWeekday() (time.Weekday, error) {
	day, ok := validWeekdays[strings.ToLower(p.TieBreakerDay)]
	if !ok {
		return 0, fmt.Errorf("config: unknown tie_breaker_day %q", p.TieBreakerDay)
	}
	return day, nil
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.ESPN.ScoreboardURL == "" {
		errs = append(errs, "espn: scoreboard_url must not be empty")
	}
	if c.ESPN.OddsURLFormat == "" {
		errs = append(errs, "espn: odds_url_format must not be empty")
	}

	if !validOddsSources[strings.ToLower(c.Picks.OddsSource)] {
		errs = append(errs, fmt.Sprintf("picks: unknown odds_source %q (valid: the-odds-api, espn)", c.Picks.OddsSource))
	}
	if strings.ToLower(c.Picks.OddsSource) == "the-odds-api" && c.OddsAPI.APIKey == "" {
		errs = append(errs, "odds_api: api_key is required when picks.odds_source is the-odds-api")
	}
	if c.Picks.MaxPoints < 1 {
		errs = append(errs, fmt.Sprintf("picks: max_points must be >= 1, got %d", c.Picks.MaxPoints))
	}
	if c.Picks.Season < 2000 {
		errs = append(errs, fmt.Sprintf("picks: season %d looks wrong", c.Picks.Season))
	}
	if _, err := c.Picks.TieBreakerWeekday(); err != nil {
		errs = append(errs, fmt.Sprintf("picks: unknown tie_breaker_day %q", c.Picks.TieBreakerDay))
	}

	if c.Site.LoginURL == "" || c.Site.MakeWeekURL == "" {
		errs = append(errs, "site: login_url and make_week_url must not be empty")
	}

	if c.Postgres.Enabled() {
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty (or set postgres.dsn)")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns < 0 || c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must be between 0 and pool_max_conns")
		}
	}

	if c.Redis.Enabled() && c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}

	if (c.Notify.TelegramToken == "") != (c.Notify.TelegramChatID == "") {
		errs = append(errs, "notify: telegram_token and telegram_chat_id must be set together")
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("timezone: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
