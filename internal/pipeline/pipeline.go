// Package pipeline runs fetch → score → resolve names → render → deliver.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Vodeneev/oddsbot/internal/delivery"
	"github.com/Vodeneev/oddsbot/internal/fixtures"
	"github.com/Vodeneev/oddsbot/internal/odds"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/metrics"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
	"github.com/Vodeneev/oddsbot/internal/report"
	"github.com/Vodeneev/oddsbot/internal/translate"
)

// Triggers label runs in logs and metrics.
const (
	TriggerSchedule = "schedule"
	TriggerCommand  = "command"
	TriggerManual   = "manual"
)

// Scorer predicts one fixture.
type Scorer interface {
	Score(models.Fixture) (models.Prediction, error)
}

// Pipeline holds no state between runs; the name resolver owns the only
// shared cache. Safe for concurrent use by the scheduler and inbound commands.
type Pipeline struct {
	fixtures fixtures.Source
	odds     odds.Source
	scorer   Scorer
	names    translate.Names
	gateway  delivery.Gateway
	metrics  *metrics.Metrics
	now      func() time.Time
}

// Deps are the stages of a pipeline. Names and Metrics may be nil.
type Deps struct {
	Fixtures fixtures.Source
	Odds     odds.Source
	Scorer   Scorer
	Names    translate.Names
	Gateway  delivery.Gateway
	Metrics  *metrics.Metrics
	// Location is the report clock's timezone; nil means local time.
	Location *time.Location
}

func New(d Deps) (*Pipeline, error) {
	var errs []error
	if d.Fixtures == nil {
		errs = append(errs, errors.New("fixture source is required"))
	}
	if d.Odds == nil {
		errs = append(errs, errors.New("odds source is required"))
	}
	if d.Scorer == nil {
		errs = append(errs, errors.New("scorer is required"))
	}
	if d.Gateway == nil {
		errs = append(errs, errors.New("delivery gateway is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, &ConfigurationError{Component: "pipeline", Err: err}
	}

	names := d.Names
	if names == nil {
		names = translate.Passthrough{}
	}
	now := time.Now
	if d.Location != nil {
		loc := d.Location
		now = func() time.Time { return time.Now().In(loc) }
	}
	return &Pipeline{
		fixtures: d.Fixtures,
		odds:     d.Odds,
		scorer:   d.Scorer,
		names:    names,
		gateway:  d.Gateway,
		metrics:  d.Metrics,
		now:      now,
	}, nil
}

// Request selects what one run reports.
type Request struct {
	Sport   enums.Sport
	Keyword string
	Trigger string
}

// Report is the outcome of one run. Failures lists the recoverable errors
// that degraded the text; the text is always usable.
type Report struct {
	RunID    string
	Text     string
	Fixtures int
	Failures []error
}

// Generate renders a report for sport, optionally filtered by keyword.
func (p *Pipeline) Generate(ctx context.Context, sport enums.Sport, keyword string) string {
	return p.Run(ctx, Request{Sport: sport, Keyword: keyword, Trigger: TriggerCommand}).Text
}

func (p *Pipeline) Run(ctx context.Context, req Request) *Report {
	start := time.Now()
	rep := &Report{RunID: uuid.NewString()}
	log := slog.With("run_id", rep.RunID, "sport", req.Sport, "trigger", req.Trigger)
	log.Info("Pipeline run started", "keyword", req.Keyword)

	games, lines := p.fetch(ctx, req.Sport, rep, log)
	rep.Fixtures = len(games)

	predictions := make([]*models.Prediction, len(games))
	for i, f := range games {
		pred, err := p.score(f)
		if err != nil {
			p.metrics.ScoringFailed()
			fail := &ScoringFailure{Fixture: f.Title(), Err: err}
			rep.Failures = append(rep.Failures, fail)
			log.Warn("Scoring failed, prediction omitted", "error", fail)
			continue
		}
		predictions[i] = &pred
	}

	display := p.resolveNames(ctx, games, rep, log)
	rep.Text = report.Render(report.Input{
		Sport:       req.Sport,
		Fixtures:    games,
		Odds:        lines,
		Predictions: predictions,
		Keyword:     req.Keyword,
		Now:         p.now(),
		Names:       func(s string) string { return display[s] },
	})

	elapsed := time.Since(start)
	p.metrics.ObserveRun(req.Sport.String(), req.Trigger, elapsed.Seconds())
	log.Info("Pipeline run finished",
		"fixtures", len(games),
		"odds_lines", len(lines),
		"failures", len(rep.Failures),
		"duration", elapsed)
	return rep
}

// fetch queries both sources concurrently. Neither failure aborts the other;
// when there are no fixtures the odds request is cancelled.
func (p *Pipeline) fetch(ctx context.Context, sport enums.Sport, rep *Report, log *slog.Logger) ([]models.Fixture, []models.OddsLine) {
	oddsCtx, cancelOdds := context.WithCancel(ctx)
	defer cancelOdds()

	var (
		games               []models.Fixture
		lines               []models.OddsLine
		fixtureErr, oddsErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		games, fixtureErr = p.fixtures.ListFixtures(ctx, sport)
		if len(games) == 0 {
			cancelOdds()
		}
		return nil
	})
	g.Go(func() error {
		lines, oddsErr = p.odds.ListOdds(oddsCtx, sport)
		return nil
	})
	_ = g.Wait()

	if fixtureErr != nil {
		p.metrics.FetchFailed("fixtures")
		fail := &FetchFailure{Source: p.fixtures.Name(), Err: fixtureErr}
		rep.Failures = append(rep.Failures, fail)
		log.Warn("Fixture fetch failed", "error", fail)
		games = nil
	}
	if len(games) == 0 {
		return nil, nil
	}
	if len(games) > fixtures.MaxFixtures {
		games = games[:fixtures.MaxFixtures]
	}

	if oddsErr != nil {
		p.metrics.FetchFailed("odds")
		fail := &FetchFailure{Source: p.odds.Name(), Err: oddsErr}
		rep.Failures = append(rep.Failures, fail)
		log.Warn("Odds fetch failed, rendering without odds", "error", fail)
		lines = nil
	}
	return games, lines
}

// score isolates one fixture: a panicking classifier costs only its line.
func (p *Pipeline) score(f models.Fixture) (pred models.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scorer panic: %v", r)
		}
	}()
	return p.scorer.Score(f)
}

func (p *Pipeline) resolveNames(ctx context.Context, games []models.Fixture, rep *Report, log *slog.Logger) map[string]string {
	out := make(map[string]string, 2*len(games))
	for _, f := range games {
		for _, name := range []string{f.HomeTeam, f.AwayTeam} {
			if _, ok := out[name]; ok {
				continue
			}
			display, err := p.names.Lookup(ctx, name)
			if err != nil {
				fail := &TranslationFailure{Name: name, Err: err}
				rep.Failures = append(rep.Failures, fail)
				log.Debug("Name left untranslated", "error", fail)
			}
			out[name] = display
		}
	}
	return out
}

// Delivery is the result of pushing to one recipient.
type Delivery struct {
	Recipient string
	Result    delivery.Result
}

// Broadcast renders one unfiltered report and pushes it to every recipient.
// Failed pushes are logged and reported, never retried.
func (p *Pipeline) Broadcast(ctx context.Context, sport enums.Sport, recipients []string, trigger string) []Delivery {
	rep := p.Run(ctx, Request{Sport: sport, Trigger: trigger})

	out := make([]Delivery, 0, len(recipients))
	for _, r := range recipients {
		res := p.gateway.Push(ctx, r, rep.Text)
		if !res.OK {
			slog.Error("Push failed", "run_id", rep.RunID, "error", &DeliveryFailure{Recipient: r, Reason: res.Reason})
		}
		out = append(out, Delivery{Recipient: r, Result: res})
	}
	slog.Info("Broadcast finished", "run_id", rep.RunID, "recipients", len(recipients), "delivered", countOK(out))
	return out
}

func countOK(ds []Delivery) int {
	n := 0
	for _, d := range ds {
		if d.Result.OK {
			n++
		}
	}
	return n
}
