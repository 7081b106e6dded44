package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/oddsbot/internal/delivery"
	"github.com/Vodeneev/oddsbot/internal/fixtures"
	"github.com/Vodeneev/oddsbot/internal/odds"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
	"github.com/Vodeneev/oddsbot/internal/report"
	"github.com/Vodeneev/oddsbot/internal/scoring"
	"github.com/Vodeneev/oddsbot/internal/translate"
)

type stubFixtures struct {
	games []models.Fixture
	err   error
}

func (s stubFixtures) Name() string { return "stub-fixtures" }

func (s stubFixtures) ListFixtures(context.Context, enums.Sport) ([]models.Fixture, error) {
	if s.err != nil {
		return []models.Fixture{}, s.err
	}
	return s.games, nil
}

type stubOdds struct {
	lines    []models.OddsLine
	err      error
	mu       sync.Mutex
	canceled bool
	block    bool
}

func (s *stubOdds) Name() string { return "stub-odds" }

func (s *stubOdds) ListOdds(ctx context.Context, _ enums.Sport) ([]models.OddsLine, error) {
	if s.block {
		<-ctx.Done()
		s.mu.Lock()
		s.canceled = true
		s.mu.Unlock()
		return []models.OddsLine{}, ctx.Err()
	}
	if s.err != nil {
		return []models.OddsLine{}, s.err
	}
	return s.lines, nil
}

type recordingGateway struct {
	mu     sync.Mutex
	pushed map[string]string
	fail   map[string]bool
}

func (g *recordingGateway) Push(_ context.Context, recipient, text string) delivery.Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail[recipient] {
		return delivery.Failed("Bad Request: chat not found")
	}
	if g.pushed == nil {
		g.pushed = map[string]string{}
	}
	g.pushed[recipient] = text
	return delivery.Ok()
}

func (g *recordingGateway) Reply(context.Context, *delivery.ReplyHandle, string) delivery.Result {
	return delivery.Ok()
}

type failingNames struct{}

func (failingNames) Resolve(_ context.Context, name string) string { return name }

func (failingNames) Lookup(_ context.Context, name string) (string, error) {
	return name, errors.New("translator down")
}

type panicScorer struct{}

func (panicScorer) Score(f models.Fixture) (models.Prediction, error) {
	if f.HomeTeam == "Celtics" {
		panic("bad model")
	}
	return scoring.NewRule(-2.5, 220).Score(f)
}

func lakers() []models.Fixture {
	return []models.Fixture{{Sport: enums.NBA, HomeTeam: "Lakers", AwayTeam: "Warriors", HomeScore: 110, AwayScore: 105}}
}

func newPipeline(t *testing.T, d Deps) *Pipeline {
	t.Helper()
	if d.Scorer == nil {
		d.Scorer = scoring.NewRule(-2.5, 220)
	}
	if d.Odds == nil {
		d.Odds = &stubOdds{}
	}
	if d.Gateway == nil {
		d.Gateway = &recordingGateway{}
	}
	p, err := New(d)
	require.NoError(t, err)
	return p
}

func TestGenerate_EndToEnd(t *testing.T) {
	p := newPipeline(t, Deps{
		Fixtures: stubFixtures{games: lakers()},
		Names:    translate.Passthrough{},
	})

	text := p.Generate(context.Background(), enums.NBA, "")

	assert.True(t, strings.HasPrefix(text, "🏀 NBA 推薦（"))
	assert.Contains(t, text, "Lakers vs Warriors")
	assert.Contains(t, text, "預測勝方：主隊")
	assert.NotContains(t, text, "實際賠率")
}

func TestRun_AttachesMatchingOdds(t *testing.T) {
	p := newPipeline(t, Deps{
		Fixtures: stubFixtures{games: lakers()},
		Odds:     &stubOdds{lines: []models.OddsLine{{MatchLabel: "Lakers vs Warriors", HomePrice: "1.80", AwayPrice: "2.00"}}},
	})

	rep := p.Run(context.Background(), Request{Sport: enums.NBA, Trigger: TriggerManual})
	assert.Contains(t, rep.Text, "實際賠率：1.80 / 2.00")
	assert.Empty(t, rep.Failures)
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 1, rep.Fixtures)
}

func TestRun_OddsFailureKeepsFixtures(t *testing.T) {
	p := newPipeline(t, Deps{
		Fixtures: stubFixtures{games: lakers()},
		Odds:     &stubOdds{err: odds.ErrFetch},
	})

	rep := p.Run(context.Background(), Request{Sport: enums.NBA})
	assert.Contains(t, rep.Text, "Lakers vs Warriors")

	var ff *FetchFailure
	require.True(t, errors.As(rep.Failures[0], &ff))
	assert.Equal(t, "stub-odds", ff.Source)
	assert.ErrorIs(t, ff, odds.ErrFetch)
}

func TestRun_FixtureFailureRendersNoData(t *testing.T) {
	o := &stubOdds{block: true}
	p := newPipeline(t, Deps{
		Fixtures: stubFixtures{err: fixtures.ErrFetch},
		Odds:     o,
	})

	rep := p.Run(context.Background(), Request{Sport: enums.MLB})
	assert.Contains(t, rep.Text, report.NoDataLine)
	require.Len(t, rep.Failures, 1, "cancelled odds fetch is not a failure")

	var ff *FetchFailure
	assert.True(t, errors.As(rep.Failures[0], &ff))
	o.mu.Lock()
	assert.True(t, o.canceled, "odds fetch is cancelled when there are no fixtures")
	o.mu.Unlock()
}

func TestRun_ScoringFailureIsPerFixture(t *testing.T) {
	games := append(lakers(), models.Fixture{HomeTeam: "Celtics", AwayTeam: "Heat", HomeScore: 100, AwayScore: 102})
	p := newPipeline(t, Deps{
		Fixtures: stubFixtures{games: games},
		Scorer:   panicScorer{},
	})

	rep := p.Run(context.Background(), Request{Sport: enums.NBA})
	assert.Contains(t, rep.Text, "Lakers vs Warriors\n預測勝方：主隊")
	assert.Contains(t, rep.Text, "Celtics vs Heat")
	assert.Equal(t, 1, strings.Count(rep.Text, "預測勝方"))

	var sf *ScoringFailure
	require.True(t, errors.As(errors.Join(rep.Failures...), &sf))
	assert.Equal(t, "Celtics vs Heat", sf.Fixture)
}

func TestRun_TranslationFailurePassesThrough(t *testing.T) {
	p := newPipeline(t, Deps{
		Fixtures: stubFixtures{games: lakers()},
		Names:    failingNames{},
	})

	rep := p.Run(context.Background(), Request{Sport: enums.NBA})
	assert.Contains(t, rep.Text, "Lakers vs Warriors")
	require.Len(t, rep.Failures, 2)

	var tf *TranslationFailure
	assert.True(t, errors.As(rep.Failures[0], &tf))
	assert.Equal(t, "Lakers", tf.Name)
}

func TestBroadcast_ReportsPerRecipient(t *testing.T) {
	gw := &recordingGateway{fail: map[string]bool{"2": true}}
	p := newPipeline(t, Deps{
		Fixtures: stubFixtures{games: lakers()},
		Gateway:  gw,
	})

	out := p.Broadcast(context.Background(), enums.NBA, []string{"1", "2"}, TriggerSchedule)
	require.Len(t, out, 2)
	assert.True(t, out[0].Result.OK)
	assert.False(t, out[1].Result.OK)
	assert.Equal(t, "Bad Request: chat not found", out[1].Result.Reason)
	assert.Contains(t, gw.pushed["1"], "Lakers vs Warriors")
}

func TestNew_MissingStages(t *testing.T) {
	_, err := New(Deps{})
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "pipeline", ce.Component)
	assert.ErrorContains(t, err, "fixture source is required")
}
