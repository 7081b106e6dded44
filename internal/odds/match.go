package odds

import (
	"strings"

	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

// Match returns the first line whose label contains both team names
// (case-sensitive). Ambiguous labels are not disambiguated: a city shared by
// two fixtures attaches the same line to whichever fixture asks first.
func Match(f models.Fixture, lines []models.OddsLine) (models.OddsLine, bool) {
	if f.HomeTeam == "" || f.AwayTeam == "" {
		return models.OddsLine{}, false
	}
	for _, l := range lines {
		if strings.Contains(l.MatchLabel, f.HomeTeam) && strings.Contains(l.MatchLabel, f.AwayTeam) {
			return l, true
		}
	}
	return models.OddsLine{}, false
}
