// Package app wires configuration into a running bot.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vodeneev/oddsbot/internal/bot"
	"github.com/Vodeneev/oddsbot/internal/delivery"
	"github.com/Vodeneev/oddsbot/internal/fixtures"
	"github.com/Vodeneev/oddsbot/internal/odds"
	"github.com/Vodeneev/oddsbot/internal/pipeline"
	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/fetch"
	"github.com/Vodeneev/oddsbot/internal/pkg/health"
	"github.com/Vodeneev/oddsbot/internal/pkg/metrics"
	"github.com/Vodeneev/oddsbot/internal/pkg/runner"
	"github.com/Vodeneev/oddsbot/internal/scheduler"
	"github.com/Vodeneev/oddsbot/internal/scoring"
	"github.com/Vodeneev/oddsbot/internal/translate"
)

const ServiceName = "oddsbot"

// App owns every long-lived component built from one Config.
type App struct {
	cfg          *config.Config
	metrics      *metrics.Metrics
	pipeline     *pipeline.Pipeline
	odds         odds.Source
	handler      *bot.Handler
	scheduler    *scheduler.Scheduler
	api          *tgbotapi.BotAPI
	recipients   []string
	defaultSport enums.Sport
	closeNames   func(context.Context) error
}

func configErr(component string, err error) error {
	return &pipeline.ConfigurationError{Component: component, Err: err}
}

// New validates cfg and builds all components. Every error is a
// *pipeline.ConfigurationError and should stop the process.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, configErr("config", err)
	}
	sport, ok := enums.ParseSport(cfg.Schedule.Sport)
	if !ok {
		return nil, configErr("schedule", fmt.Errorf("unsupported sport %q", cfg.Schedule.Sport))
	}

	a := &App{
		cfg:          cfg,
		metrics:      metrics.New(),
		recipients:   bot.Recipients(cfg.Telegram.ChatIDs),
		defaultSport: sport,
		closeNames:   func(context.Context) error { return nil },
	}

	pageFetcher := fetch.New(cfg.Fetch, cfg.HTTP.Timeout)
	fixtureSource, err := fixtures.New(cfg, pageFetcher)
	if err != nil {
		return nil, configErr("fixtures", err)
	}
	a.odds, err = odds.New(cfg, pageFetcher)
	if err != nil {
		return nil, configErr("odds", err)
	}
	scorer, err := scoring.FromConfig(ctx, cfg.Scoring)
	if err != nil {
		return nil, configErr("scoring", err)
	}
	names, closeNames, err := translate.FromConfig(ctx, cfg, a.metrics)
	if err != nil {
		return nil, configErr("translation", err)
	}
	a.closeNames = closeNames

	gateway, err := a.newGateway()
	if err != nil {
		_ = closeNames(ctx)
		return nil, configErr("telegram", err)
	}

	var loc *time.Location
	if cfg.Schedule.Timezone != "" {
		if loc, err = time.LoadLocation(cfg.Schedule.Timezone); err != nil {
			_ = closeNames(ctx)
			return nil, configErr("schedule", err)
		}
	}

	a.pipeline, err = pipeline.New(pipeline.Deps{
		Fixtures: fixtureSource,
		Odds:     a.odds,
		Scorer:   scorer,
		Names:    names,
		Gateway:  gateway,
		Metrics:  a.metrics,
		Location: loc,
	})
	if err != nil {
		_ = closeNames(ctx)
		return nil, err
	}

	a.handler = bot.NewHandler(a.pipeline, gateway, cfg.Telegram.ChatIDs, cfg.Telegram.AllowedUserIDs, sport)

	if cfg.Schedule.Enabled {
		a.scheduler, err = scheduler.New(cfg.Schedule, a.pipeline, a.recipients)
		if err != nil {
			_ = closeNames(ctx)
			return nil, configErr("schedule", err)
		}
	}

	slog.Info("Application configured",
		"fixtures", fixtureSource.Name(),
		"odds", a.odds.Name(),
		"scoring", cfg.Scoring.Model,
		"translation", cfg.Translation.Enabled,
		"telegram_mode", cfg.Telegram.Mode,
		"dry_run", cfg.Telegram.DryRun,
		"recipients", len(a.recipients))
	return a, nil
}

func (a *App) newGateway() (delivery.Gateway, error) {
	if a.cfg.Telegram.DryRun {
		slog.Warn("Telegram dry run: messages are logged, not sent")
		return delivery.NewLogGateway(a.metrics), nil
	}

	api, err := tgbotapi.NewBotAPI(a.cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = false
	slog.Info("Authorized on telegram", "account", api.Self.UserName)

	a.api = api
	return delivery.NewTelegramGateway(api, a.cfg.Telegram.SendInterval, a.metrics), nil
}

func (a *App) Pipeline() *pipeline.Pipeline { return a.pipeline }

func (a *App) Recipients() []string { return a.recipients }

func (a *App) DefaultSport() enums.Sport { return a.defaultSport }

// components lists what Run starts for the configured mode.
func (a *App) components() []runner.Component {
	opts := health.Options{
		Service:           ServiceName,
		Port:              a.cfg.HTTP.Port,
		ReadHeaderTimeout: a.cfg.HTTP.ReadHeaderTimeout,
		CORSOrigins:       a.cfg.HTTP.CORSOrigins,
		Metrics:           a.metrics.Handler(),
		TestPush:          a.handler.TestPush,
		Odds:              a.odds,
		DefaultSport:      a.defaultSport,
	}
	if a.cfg.Telegram.Mode == "webhook" {
		opts.Webhook = bot.WebhookHandler(a.cfg.Telegram.WebhookSecret, a.handler)
	}

	cs := []runner.Component{
		runner.Func{ComponentName: "http", Fn: func(ctx context.Context) error { return health.Run(ctx, opts) }},
	}
	if a.cfg.Telegram.Mode == "polling" && a.api != nil {
		cs = append(cs, runner.Func{ComponentName: "telegram-polling", Fn: func(ctx context.Context) error {
			return bot.RunPolling(ctx, a.api, a.cfg.Telegram.UpdateTimeout, a.handler)
		}})
	}
	if a.scheduler != nil {
		cs = append(cs, runner.Func{ComponentName: "scheduler", Fn: a.scheduler.Run})
	}
	return cs
}

// Run serves until ctx is done or a component fails, then closes the
// translation store.
func (a *App) Run(ctx context.Context) error {
	err := runner.Run(ctx, a.components(), runner.RunOptions{LogStart: true})

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cerr := a.Close(closeCtx); cerr != nil {
		slog.Error("Failed to close translation store", "error", cerr)
	}
	return err
}

func (a *App) Close(ctx context.Context) error {
	return a.closeNames(ctx)
}
