package scoring

// WinRule predicts the team ahead.
type WinRule struct{}

func (WinRule) Predict(x Features) (bool, error) {
	return x.HomeScore > x.AwayScore, nil
}

// SpreadRule says the home side covers when home-away exceeds Threshold.
type SpreadRule struct {
	Threshold float64
}

func (r SpreadRule) Predict(x Features) (bool, error) {
	return x.HomeScore-x.AwayScore > r.Threshold, nil
}

// TotalRule says over when home+away exceeds Threshold.
type TotalRule struct {
	Threshold float64
}

func (r TotalRule) Predict(x Features) (bool, error) {
	return x.HomeScore+x.AwayScore > r.Threshold, nil
}

// NewRule builds the deterministic baseline scorer.
func NewRule(spreadThreshold, totalThreshold float64) *Scorer {
	return New(WinRule{}, SpreadRule{Threshold: spreadThreshold}, TotalRule{Threshold: totalThreshold}, nil)
}
