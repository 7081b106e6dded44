package fixtures

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/fetch"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

// Selector contract of the scoreboard page. Bump when the markup changes.
const (
	rowSelector   = "div.eventRow__main"
	nameSelector  = "span.eventRow__name"
	scoreSelector = "div.eventRow__score"
	scoreSep      = ":"
)

var scoreboardPaths = map[enums.Sport]string{
	enums.NBA:    "/basketball/nba",
	enums.MLB:    "/baseball/usa/mlb",
	enums.KBO:    "/baseball/south-korea/kbo",
	enums.NPB:    "/baseball/japan/pro-yakyu-npb",
	enums.Soccer: "/football",
}

func init() {
	Register("scoreboard", func(cfg *config.Config, f fetch.Fetcher) Source {
		return NewScoreboardSource(cfg.Fixtures.BaseURL, f)
	})
}

// ScoreboardSource scrapes the HTML scoreboard page of a sport.
type ScoreboardSource struct {
	baseURL string
	fetcher fetch.Fetcher
	now     func() time.Time
}

func NewScoreboardSource(baseURL string, f fetch.Fetcher) *ScoreboardSource {
	return &ScoreboardSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: f,
		now:     time.Now,
	}
}

func (s *ScoreboardSource) Name() string { return "scoreboard" }

func (s *ScoreboardSource) ListFixtures(ctx context.Context, sport enums.Sport) ([]models.Fixture, error) {
	path, ok := scoreboardPaths[sport]
	if !ok {
		return []models.Fixture{}, fetchErr("no scoreboard page for sport %q", sport)
	}

	url := s.baseURL + path
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return []models.Fixture{}, fetchErr("%s: %v", url, err)
	}

	fixtures, err := ParseScoreboard(bytes.NewReader(body), sport, s.now())
	if err != nil {
		return []models.Fixture{}, fetchErr("parse %s: %v", url, err)
	}
	slog.Debug("Scoreboard parsed", "sport", sport, "url", url, "fixtures", len(fixtures))
	return fixtures, nil
}

// ParseScoreboard extracts up to MaxFixtures games. Rows without exactly two
// team names or with a malformed score are skipped.
func ParseScoreboard(r io.Reader, sport enums.Sport, fetchedAt time.Time) ([]models.Fixture, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	out := make([]models.Fixture, 0, MaxFixtures)
	doc.Find(rowSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		var names []string
		row.Find(nameSelector).Each(func(_ int, n *goquery.Selection) {
			names = append(names, strings.TrimSpace(n.Text()))
		})
		if len(names) != 2 || names[0] == "" || names[1] == "" {
			slog.Debug("Skipping scoreboard row", "row", i, "reason", "team names", "names", names)
			return true
		}

		home, away, ok := parseScore(row.Find(scoreSelector).First().Text())
		if !ok {
			slog.Debug("Skipping scoreboard row", "row", i, "reason", "score")
			return true
		}

		out = append(out, models.Fixture{
			Sport:     sport,
			HomeTeam:  names[0],
			AwayTeam:  names[1],
			HomeScore: home,
			AwayScore: away,
			FetchedAt: fetchedAt,
		})
		return len(out) < MaxFixtures
	})
	return out, nil
}

// parseScore reads "110:105".
func parseScore(text string) (int, int, bool) {
	h, a, found := strings.Cut(strings.TrimSpace(text), scoreSep)
	if !found {
		return 0, 0, false
	}
	home, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || home < 0 {
		return 0, 0, false
	}
	away, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil || away < 0 {
		return 0, 0, false
	}
	return home, away, true
}
