package models

import (
	"time"

	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
)

// Fixture is one scheduled or in-progress match as read from the scoreboard.
// Team names are kept in the source site's locale.
type Fixture struct {
	Sport     enums.Sport `json:"sport"`
	HomeTeam  string      `json:"home_team"`
	AwayTeam  string      `json:"away_team"`
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// Title returns "<home> vs <away>".
func (f Fixture) Title() string {
	return f.HomeTeam + " vs " + f.AwayTeam
}
