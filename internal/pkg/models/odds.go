package models

// OddsLine is one bookmaker quote as scraped. Prices are kept as text because
// the page does not guarantee numeric values.
type OddsLine struct {
	MatchLabel string `json:"match"`
	Time       string `json:"time,omitempty"`
	HomePrice  string `json:"home_odds"`
	AwayPrice  string `json:"away_odds"`
}
