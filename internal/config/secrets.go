package config

// RedactedConfig returns a shallow copy of cfg with sensitive fields replaced
// by the redaction placeholder "***". Use this when logging or printing the
// active configuration so credentials are never accidentally exposed.
func RedactedConfig(cfg *Config) Config {
	out := *cfg

	redact(&out.OddsAPI.APIKey)
	redact(&out.Site.Password)
	redact(&out.Site.LoginKey)
	redact(&out.Postgres.DSN)
	redact(&out.Postgres.Password)
	redact(&out.Redis.Password)
	redact(&out.Notify.TelegramToken)
	redact(&out.Notify.DiscordWebhookURL)

	// Copy slices so callers cannot mutate the original through the
	// redacted copy.
	if cfg.OddsAPI.Bookmakers != nil {
		out.OddsAPI.Bookmakers = make([]string, len(cfg.OddsAPI.Bookmakers))
		copy(out.OddsAPI.Bookmakers, cfg.OddsAPI.Bookmakers)
	}

	return out
}

const redacted = "***"

// redact replaces a non-empty string with the redaction placeholder.
func redact(s *string) {
	if *s != "" {
		*s = redacted
	}
}
