// Package scoring turns a fixture into win, spread and total predictions.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

// Features are the numeric inputs every classifier sees.
type Features struct {
	HomeScore float64
	AwayScore float64
}

// FeatureFunc builds features for a fixture. ScoreFeatures is the default;
// a pregame feature source can be plugged in without touching classifiers.
type FeatureFunc func(models.Fixture) Features

// ScoreFeatures uses the current score of the game.
func ScoreFeatures(f models.Fixture) Features {
	return Features{HomeScore: float64(f.HomeScore), AwayScore: float64(f.AwayScore)}
}

// Classifier returns one binary label.
type Classifier interface {
	Predict(Features) (bool, error)
}

var ErrBadFeatures = errors.New("scoring: features are not finite")

// Scorer combines the three classifiers into a Prediction.
type Scorer struct {
	win      Classifier
	spread   Classifier
	total    Classifier
	features FeatureFunc
}

// New builds a scorer. A nil features func means ScoreFeatures.
func New(win, spread, total Classifier, features FeatureFunc) *Scorer {
	if features == nil {
		features = ScoreFeatures
	}
	return &Scorer{win: win, spread: spread, total: total, features: features}
}

// Score predicts all three labels; any classifier error fails the whole
// prediction for this fixture only.
func (s *Scorer) Score(f models.Fixture) (models.Prediction, error) {
	x := s.features(f)
	if !finite(x.HomeScore) || !finite(x.AwayScore) {
		return models.Prediction{}, ErrBadFeatures
	}

	homeWins, err := s.win.Predict(x)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("win classifier: %w", err)
	}
	homeCovers, err := s.spread.Predict(x)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("spread classifier: %w", err)
	}
	over, err := s.total.Predict(x)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("total classifier: %w", err)
	}

	p := models.Prediction{Winner: models.WinnerAway, Side: models.AwayCovers, Total: models.Under}
	if homeWins {
		p.Winner = models.WinnerHome
	}
	if homeCovers {
		p.Side = models.HomeCovers
	}
	if over {
		p.Total = models.Over
	}
	return p, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FromConfig builds the scorer selected by scoring.model.
func FromConfig(ctx context.Context, cfg config.ScoringConfig) (*Scorer, error) {
	switch cfg.Model {
	case "", "rule":
		return NewRule(cfg.SpreadThreshold, cfg.TotalThreshold), nil
	case "logistic":
		data, err := ReadArtifact(ctx, cfg.Artifact, cfg.S3)
		if err != nil {
			return nil, err
		}
		art, err := ParseArtifact(data)
		if err != nil {
			return nil, fmt.Errorf("model artifact %s: %w", cfg.Artifact, err)
		}
		return art.Scorer(nil), nil
	default:
		return nil, fmt.Errorf("unknown scoring model %q", cfg.Model)
	}
}
