package config

import (
	"errors"
	"fmt"
	"slices"
)

var (
	fixtureSources = []string{"scoreboard", "static"}
	oddsSources    = []string{"proxy", "oddspedia", "none"}
	scoringModels  = []string{"rule", "logistic"}
	translators    = []string{"google", "none"}
	stores         = []string{"file", "redis", "postgres"}
	botModes       = []string{"polling", "webhook"}
)

// Validate reports every problem that must stop the service from starting.
func (c *Config) Validate() error {
	var errs []error

	check := func(field, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, fmt.Errorf("%s: unknown value %q (available: %v)", field, value, allowed))
		}
	}
	check("fixtures.source", c.Fixtures.Source, fixtureSources)
	check("odds.source", c.Odds.Source, oddsSources)
	check("scoring.model", c.Scoring.Model, scoringModels)
	check("telegram.mode", c.Telegram.Mode, botModes)
	if c.Translation.Enabled {
		check("translation.translator", c.Translation.Translator, translators)
		check("translation.store", c.Translation.Store, stores)
	}

	if c.Scoring.Model == "logistic" && c.Scoring.Artifact == "" {
		errs = append(errs, errors.New("scoring.artifact is required for the logistic model"))
	}
	if c.Telegram.Token == "" && !c.Telegram.DryRun {
		errs = append(errs, errors.New("telegram.token is required (set TELEGRAM_BOT_TOKEN) unless telegram.dry_run is set"))
	}
	if c.Telegram.Mode == "webhook" && c.Telegram.WebhookSecret == "" {
		errs = append(errs, errors.New("telegram.webhook_secret is required in webhook mode"))
	}
	if c.Schedule.Enabled && len(c.Telegram.ChatIDs) == 0 {
		errs = append(errs, errors.New("telegram.chat_ids must list at least one recipient when schedule is enabled"))
	}
	if c.Translation.Enabled {
		switch c.Translation.Store {
		case "postgres":
			if c.Postgres.DSN == "" {
				errs = append(errs, errors.New("postgres.dsn is required for the postgres translation store"))
			}
		case "redis":
			if c.Redis.Addr == "" {
				errs = append(errs, errors.New("redis.addr is required for the redis translation store"))
			}
		case "file":
			if c.Translation.FilePath == "" {
				errs = append(errs, errors.New("translation.file_path is required for the file translation store"))
			}
		}
	}
	if c.HTTP.Port <= 0 {
		errs = append(errs, errors.New("http.port must be greater than 0"))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http.timeout must be greater than 0"))
	}

	return errors.Join(errs...)
}
