package odds

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/fetch"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

// Selector contract of the odds page.
const (
	eventSelector = ".eventRow"
	labelSelector = ".name"
	timeSelector  = ".time"
	priceSelector = ".odds"
)

var oddspediaPaths = map[enums.Sport]string{
	enums.NBA:    "/basketball/usa/nba",
	enums.MLB:    "/baseball/usa/mlb",
	enums.NPB:    "/baseball/japan/npb",
	enums.KBO:    "/baseball/south-korea/kbo-league",
	enums.Soccer: "/football",
}

func init() {
	Register("oddspedia", func(cfg *config.Config, f fetch.Fetcher) Source {
		return NewOddspediaSource(cfg.Odds.BaseURL, f)
	})
}

// OddspediaSource scrapes the odds comparison page of a sport.
type OddspediaSource struct {
	baseURL string
	fetcher fetch.Fetcher
}

func NewOddspediaSource(baseURL string, f fetch.Fetcher) *OddspediaSource {
	return &OddspediaSource{baseURL: strings.TrimRight(baseURL, "/"), fetcher: f}
}

func (s *OddspediaSource) Name() string { return "oddspedia" }

func (s *OddspediaSource) ListOdds(ctx context.Context, sport enums.Sport) ([]models.OddsLine, error) {
	path, ok := oddspediaPaths[sport]
	if !ok {
		return []models.OddsLine{}, fetchErr("no odds page for sport %q", sport)
	}

	url := s.baseURL + path
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return []models.OddsLine{}, fetchErr("%s: %v", url, err)
	}
	lines, err := ParseOddsPage(bytes.NewReader(body))
	if err != nil {
		return []models.OddsLine{}, fetchErr("parse %s: %v", url, err)
	}
	return lines, nil
}

// ParseOddsPage reads up to MaxLines rows. A row needs a label and at least
// two price cells.
func ParseOddsPage(r io.Reader) ([]models.OddsLine, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	out := make([]models.OddsLine, 0, MaxLines)
	doc.Find(eventSelector).EachWithBreak(func(_ int, ev *goquery.Selection) bool {
		label := strings.TrimSpace(ev.Find(labelSelector).First().Text())
		prices := ev.Find(priceSelector)
		if label == "" || prices.Length() < 2 {
			return true
		}
		out = append(out, models.OddsLine{
			MatchLabel: label,
			Time:       strings.TrimSpace(ev.Find(timeSelector).First().Text()),
			HomePrice:  NormalizePrice(prices.Eq(0).Text()),
			AwayPrice:  NormalizePrice(prices.Eq(1).Text()),
		})
		return len(out) < MaxLines
	})
	return out, nil
}
