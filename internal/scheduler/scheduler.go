// Package scheduler fires the hourly broadcast.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Vodeneev/oddsbot/internal/pipeline"
	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
)

// Broadcaster is the pipeline entry point the scheduler calls.
type Broadcaster interface {
	Broadcast(ctx context.Context, sport enums.Sport, recipients []string, trigger string) []pipeline.Delivery
}

// Scheduler runs one broadcast per cron tick. A tick that starts while the
// previous one is still running is skipped.
type Scheduler struct {
	cron       *cron.Cron
	target     Broadcaster
	sport      enums.Sport
	recipients []string
	timeout    time.Duration
	spec       string
}

// New parses the schedule; a bad spec or timezone is a configuration error.
func New(cfg config.ScheduleConfig, target Broadcaster, recipients []string) (*Scheduler, error) {
	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("schedule timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}
	sport, ok := enums.ParseSport(cfg.Sport)
	if !ok {
		return nil, fmt.Errorf("schedule sport %q is not supported", cfg.Sport)
	}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		target:     target,
		sport:      sport,
		recipients: recipients,
		timeout:    cfg.RunTimeout,
		spec:       cfg.Cron,
	}
	if _, err := s.cron.AddFunc(cfg.Cron, s.Tick); err != nil {
		return nil, fmt.Errorf("schedule cron %q: %w", cfg.Cron, err)
	}
	return s, nil
}

// Tick runs one broadcast with the per-run timeout.
func (s *Scheduler) Tick() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	slog.Info("Scheduled broadcast", "sport", s.sport, "recipients", len(s.recipients))
	s.target.Broadcast(ctx, s.sport, s.recipients, pipeline.TriggerSchedule)
}

// Next returns the next fire time.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Run starts the cron and blocks until ctx is done, then waits for a
// running broadcast to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	slog.Info("Cron scheduler started", "spec", s.spec, "next", s.Next())

	<-ctx.Done()
	<-s.cron.Stop().Done()
	slog.Info("Cron scheduler stopped")
	return nil
}
