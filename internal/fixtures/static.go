package fixtures

import (
	"context"
	"time"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/fetch"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

func init() {
	Register("static", func(*config.Config, fetch.Fetcher) Source {
		return NewStaticSource(nil)
	})
}

// StaticSource returns a fixed game list; used for demos and tests.
type StaticSource struct {
	games []models.Fixture
}

// SampleGames is the demo list used when no games are given.
func SampleGames() []models.Fixture {
	return []models.Fixture{
		{HomeTeam: "Lakers", AwayTeam: "Warriors", HomeScore: 110, AwayScore: 105},
		{HomeTeam: "Celtics", AwayTeam: "Heat", HomeScore: 100, AwayScore: 102},
	}
}

func NewStaticSource(games []models.Fixture) *StaticSource {
	if games == nil {
		games = SampleGames()
	}
	return &StaticSource{games: games}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) ListFixtures(_ context.Context, sport enums.Sport) ([]models.Fixture, error) {
	now := time.Now()
	n := min(len(s.games), MaxFixtures)
	out := make([]models.Fixture, 0, n)
	for _, g := range s.games[:n] {
		g.Sport = sport
		g.FetchedAt = now
		out = append(out, g)
	}
	return out, nil
}
