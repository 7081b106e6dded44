package scoring

import (
	"fmt"
	"math"
)

// Logistic is a two-feature logistic regression: sigmoid(b + w·x) >= 0.5.
type Logistic struct {
	Intercept float64   `json:"intercept"`
	Coef      []float64 `json:"coef"`
}

func (l Logistic) Predict(x Features) (bool, error) {
	if len(l.Coef) != 2 {
		return false, fmt.Errorf("logistic: want 2 coefficients, got %d", len(l.Coef))
	}
	return l.Probability(x) >= 0.5, nil
}

// Probability returns P(label=true). Coef must hold two weights.
func (l Logistic) Probability(x Features) float64 {
	z := l.Intercept + l.Coef[0]*x.HomeScore + l.Coef[1]*x.AwayScore
	return 1 / (1 + math.Exp(-z))
}
