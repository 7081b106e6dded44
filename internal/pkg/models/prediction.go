package models

// Winner is the predicted match winner.
type Winner string

const (
	WinnerHome Winner = "home"
	WinnerAway Winner = "away"
)

// Side is the predicted spread result.
type Side string

const (
	HomeCovers Side = "home_covers"
	AwayCovers Side = "away_covers"
)

// Total is the predicted over/under result.
type Total string

const (
	Over  Total = "over"
	Under Total = "under"
)

// Prediction is derived per fixture and never stored.
type Prediction struct {
	Winner Winner `json:"predicted_winner"`
	Side   Side   `json:"predicted_side"`
	Total  Total  `json:"predicted_total"`
}
