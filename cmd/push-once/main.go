// push-once generates one report and pushes it to every configured
// recipient, then exits. Useful from an external scheduler.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/Vodeneev/oddsbot/internal/app"
	"github.com/Vodeneev/oddsbot/internal/pipeline"
	pkgconfig "github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/logging"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	sport := flag.String("sport", "", "Sport to report (default: schedule.sport)")
	printOnly := flag.Bool("print", false, "Print the report instead of pushing it")
	flag.Parse()

	if err := run(*configPath, *sport, *printOnly); err != nil {
		slog.Error("Push failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, sportName string, printOnly bool) error {
	cfg, err := pkgconfig.Load(configPath)
	if err != nil {
		return err
	}
	logging.SetupLogger(&cfg.Logging, "push-once")

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	sport := a.DefaultSport()
	if sportName != "" {
		s, ok := enums.ParseSport(sportName)
		if !ok {
			return fmt.Errorf("unknown sport %q", sportName)
		}
		sport = s
	}

	if printOnly {
		fmt.Println(a.Pipeline().Generate(ctx, sport, ""))
		return nil
	}

	deliveries := a.Pipeline().Broadcast(ctx, sport, a.Recipients(), pipeline.TriggerManual)
	failed := 0
	for _, d := range deliveries {
		if !d.Result.OK {
			failed++
		}
	}
	slog.Info("Push finished", "recipients", len(deliveries), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d deliveries failed", failed, len(deliveries))
	}
	return nil
}
