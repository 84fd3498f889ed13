package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies PICKSLIP_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known PICKSLIP_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets credentials stay out of the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── ESPN ──
	setStr(&cfg.ESPN.ScoreboardURL, "PICKSLIP_ESPN_SCOREBOARD_URL")
	setStr(&cfg.ESPN.OddsURLFormat, "PICKSLIP_ESPN_ODDS_URL_FORMAT")
	setStr(&cfg.ESPN.PreferredProvider, "PICKSLIP_ESPN_PREFERRED_PROVIDER")

	// ── The Odds API ──
	setStr(&cfg.OddsAPI.APIKey, "PICKSLIP_ODDS_API_KEY")
	setStr(&cfg.OddsAPI.APIKey, "THE_ODDS_API_KEY") // compatibility alias
	setStr(&cfg.OddsAPI.SportKey, "PICKSLIP_ODDS_API_SPORT_KEY")
	setStringSlice(&cfg.OddsAPI.Bookmakers, "PICKSLIP_ODDS_API_BOOKMAKERS")

	// ── Fallback ──
	setStr(&cfg.Fallback.Dir, "PICKSLIP_FALLBACK_DIR")

	// ── Site ──
	setStr(&cfg.Site.LoginURL, "PICKSLIP_SITE_LOGIN_URL")
	setStr(&cfg.Site.MakeWeekURL, "PICKSLIP_SITE_MAKE_WEEK_URL")
	setStr(&cfg.Site.LoginID, "PICKSLIP_SITE_LOGIN_ID")
	setStr(&cfg.Site.Password, "PICKSLIP_SITE_PASSWORD")
	setStr(&cfg.Site.LoginKey, "PICKSLIP_SITE_LOGIN_KEY")
	setBool(&cfg.Site.Headless, "PICKSLIP_SITE_HEADLESS")
	setDuration(&cfg.Site.Timeout, "PICKSLIP_SITE_TIMEOUT")

	// ── Picks ──
	setInt(&cfg.Picks.Season, "PICKSLIP_PICKS_SEASON")
	setInt(&cfg.Picks.MaxPoints, "PICKSLIP_PICKS_MAX_POINTS")
	setInt64(&cfg.Picks.Seed, "PICKSLIP_PICKS_SEED")
	setStr(&cfg.Picks.TieBreakerDay, "PICKSLIP_PICKS_TIE_BREAKER_DAY")
	setStr(&cfg.Picks.OddsSource, "PICKSLIP_PICKS_ODDS_SOURCE")
	setBool(&cfg.Picks.SkipThursday, "PICKSLIP_PICKS_SKIP_THURSDAY")

	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "PICKSLIP_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "PICKSLIP_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "PICKSLIP_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "PICKSLIP_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "PICKSLIP_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "PICKSLIP_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "PICKSLIP_POSTGRES_SSL_MODE")
	setInt(&cfg.Postgres.PoolMaxConns, "PICKSLIP_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "PICKSLIP_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "PICKSLIP_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "PICKSLIP_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "PICKSLIP_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "PICKSLIP_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "PICKSLIP_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "PICKSLIP_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "PICKSLIP_REDIS_TLS_ENABLED")
	setDuration(&cfg.Redis.ResponseTTL, "PICKSLIP_REDIS_RESPONSE_TTL")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "PICKSLIP_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "PICKSLIP_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "PICKSLIP_NOTIFY_DISCORD_WEBHOOK_URL")

	// ── Top-level ──
	setStr(&cfg.Timezone, "PICKSLIP_TIMEZONE")
	setStr(&cfg.LogLevel, "PICKSLIP_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
