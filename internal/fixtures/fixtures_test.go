package fixtures

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
)

type fakeFetcher struct {
	body    string
	err     error
	lastURL string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.lastURL = url
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func row(home, away, score string) string {
	return fmt.Sprintf(`<div class="eventRow__main">
  <span class="eventRow__name">%s</span>
  <span class="eventRow__name">%s</span>
  <div class="eventRow__score">%s</div>
</div>`, home, away, score)
}

func page(rows ...string) string {
	return "<html><body>" + strings.Join(rows, "\n") + "</body></html>"
}

func TestParseScoreboard(t *testing.T) {
	html := page(
		row("Lakers", "Warriors", "110:105"),
		row("Celtics", "Heat", "100 : 102"),
		`<div class="eventRow__main"><span class="eventRow__name">Solo</span><div class="eventRow__score">1:0</div></div>`,
		row("Nets", "Knicks", "-"),
		row("Bulls", "Bucks", "x:3"),
	)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	got, err := ParseScoreboard(strings.NewReader(html), enums.NBA, at)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Lakers", got[0].HomeTeam)
	assert.Equal(t, "Warriors", got[0].AwayTeam)
	assert.Equal(t, 110, got[0].HomeScore)
	assert.Equal(t, 105, got[0].AwayScore)
	assert.Equal(t, enums.NBA, got[0].Sport)
	assert.Equal(t, at, got[0].FetchedAt)

	assert.Equal(t, "Celtics vs Heat", got[1].Title())
	assert.Equal(t, 102, got[1].AwayScore)
}

func TestParseScoreboard_CapsAtFive(t *testing.T) {
	var rows []string
	for i := 0; i < 8; i++ {
		rows = append(rows, row(fmt.Sprintf("H%d", i), fmt.Sprintf("A%d", i), "1:2"))
	}
	got, err := ParseScoreboard(strings.NewReader(page(rows...)), enums.MLB, time.Now())
	require.NoError(t, err)
	assert.Len(t, got, MaxFixtures)
}

func TestScoreboardSource_URLPerSport(t *testing.T) {
	f := &fakeFetcher{body: page(row("Giants", "Tigers", "3:1"))}
	s := NewScoreboardSource("https://scores.example/", f)

	got, err := s.ListFixtures(context.Background(), enums.NPB)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "https://scores.example/baseball/japan/pro-yakyu-npb", f.lastURL)
}

func TestScoreboardSource_FetchFailureIsEmpty(t *testing.T) {
	s := NewScoreboardSource("https://scores.example", &fakeFetcher{err: errors.New("timeout")})

	got, err := s.ListFixtures(context.Background(), enums.NBA)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestScoreboardSource_UnknownSport(t *testing.T) {
	f := &fakeFetcher{}
	s := NewScoreboardSource("https://scores.example", f)

	got, err := s.ListFixtures(context.Background(), enums.Sport("curling"))
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Empty(t, f.lastURL, "no request for unknown sport")
}

func TestStaticSource(t *testing.T) {
	got, err := NewStaticSource(nil).ListFixtures(context.Background(), enums.NBA)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Lakers", got[0].HomeTeam)
	assert.Equal(t, 110, got[0].HomeScore)
	assert.Equal(t, enums.NBA, got[1].Sport)
}

func TestNew_Registry(t *testing.T) {
	cfg := config.Defaults()

	cfg.Fixtures.Source = "static"
	s, err := New(&cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "static", s.Name())

	cfg.Fixtures.Source = " Scoreboard "
	s, err = New(&cfg, &fakeFetcher{})
	require.NoError(t, err)
	assert.Equal(t, "scoreboard", s.Name())

	cfg.Fixtures.Source = "espn"
	_, err = New(&cfg, nil)
	assert.Error(t, err)
	assert.Equal(t, []string{"scoreboard", "static"}, AvailableNames())
}
