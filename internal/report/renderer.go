// Package report renders fixtures, odds and predictions as chat text.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Vodeneev/oddsbot/internal/odds"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

const (
	NoDataLine = "今日無比賽數據可供預測。"

	winnerPrefix = "預測勝方："
	sidePrefix   = "推薦盤口："
	totalPrefix  = "大小分推薦："
	oddsPrefix   = "實際賠率："

	headerTimeLayout = "01/02 15:04"
)

var (
	winnerText = map[models.Winner]string{models.WinnerHome: "主隊", models.WinnerAway: "客隊"}
	sideText   = map[models.Side]string{models.HomeCovers: "主隊過盤", models.AwayCovers: "客隊受讓"}
	totalText  = map[models.Total]string{models.Over: "大分", models.Under: "小分"}
)

// NoResultsLine is shown when a keyword matches no fixture.
func NoResultsLine(keyword string) string {
	return fmt.Sprintf("❌ 查無 %s 相關資料", keyword)
}

// Input is everything one report needs. Predictions is aligned with
// Fixtures; a nil entry means scoring failed for that fixture.
type Input struct {
	Sport       enums.Sport
	Fixtures    []models.Fixture
	Odds        []models.OddsLine
	Predictions []*models.Prediction
	Keyword     string
	Now         time.Time
	// Names maps a source team name to its display name; nil keeps names as is.
	Names func(string) string
}

// Header returns "<label> 推薦（MM/DD HH:MM）".
func Header(sport enums.Sport, now time.Time) string {
	return fmt.Sprintf("%s 推薦（%s）", sport.GetSportInfo().Label(), now.Format(headerTimeLayout))
}

// Render is pure: the same Input always yields the same text.
func Render(in Input) string {
	names := in.Names
	if names == nil {
		names = func(s string) string { return s }
	}

	var b strings.Builder
	b.WriteString(Header(in.Sport, in.Now))
	b.WriteString("\n\n")

	if len(in.Fixtures) == 0 {
		b.WriteString(NoDataLine)
		return b.String()
	}

	var blocks []string
	for i, f := range in.Fixtures {
		home, away := names(f.HomeTeam), names(f.AwayTeam)
		if in.Keyword != "" && !matchesKeyword(in.Keyword, f.HomeTeam, f.AwayTeam, home, away) {
			continue
		}

		var pred *models.Prediction
		if i < len(in.Predictions) {
			pred = in.Predictions[i]
		}
		line, hasOdds := odds.Match(f, in.Odds)
		blocks = append(blocks, renderFixture(home, away, pred, line, hasOdds))
	}

	if len(blocks) == 0 {
		b.WriteString(NoResultsLine(in.Keyword))
		return b.String()
	}
	b.WriteString(strings.Join(blocks, "\n\n"))
	return b.String()
}

func renderFixture(home, away string, pred *models.Prediction, line models.OddsLine, hasOdds bool) string {
	lines := []string{home + " vs " + away}
	if pred != nil {
		lines = append(lines,
			winnerPrefix+winnerText[pred.Winner],
			sidePrefix+sideText[pred.Side],
			totalPrefix+totalText[pred.Total],
		)
	}
	if hasOdds {
		lines = append(lines, fmt.Sprintf("%s%s / %s", oddsPrefix, line.HomePrice, line.AwayPrice))
	}
	return strings.Join(lines, "\n")
}

func matchesKeyword(kw string, names ...string) bool {
	for _, n := range names {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}
