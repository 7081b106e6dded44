package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Vodeneev/oddsbot/internal/app"
	"github.com/Vodeneev/oddsbot/internal/pipeline"
	pkgconfig "github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/logging"
)

const (
	defaultConfigPath = "configs/config.yaml"
)

type config struct {
	configPath string
	runFor     time.Duration
	dryRun     bool
}

func main() {
	if err := run(); err != nil {
		var ce *pipeline.ConfigurationError
		if errors.As(err, &ce) {
			slog.Error("Invalid configuration", "component", ce.Component, "error", ce.Err)
			os.Exit(2)
		}
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()
	slog.Info("Loading config", "path", cfg.configPath)

	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return &pipeline.ConfigurationError{Component: "config", Err: err}
	}
	if cfg.dryRun {
		appConfig.Telegram.DryRun = true
	}

	logging.SetupLogger(&appConfig.Logging, app.ServiceName)
	slog.Info("Logging initialized", "service", app.ServiceName)

	ctx, cancel := createContext(cfg.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	a, err := app.New(ctx, appConfig)
	if err != nil {
		return err
	}

	slog.Info("Starting bot...")
	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("bot stopped: %w", err)
	}
	slog.Info("Bot stopped gracefully")
	return nil
}

func parseFlags() config {
	var cfg config

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.DurationVar(&cfg.runFor, "run-for", 0, "Auto-stop after duration (e.g. 10s, 1m). 0 = run until SIGINT/SIGTERM")
	flag.BoolVar(&cfg.dryRun, "dry-run", false, "Log outbound messages instead of sending them")
	flag.Parse()
	return cfg
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping bot...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
		}
	}()
}
