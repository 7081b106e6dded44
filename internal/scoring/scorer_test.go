package scoring

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

func fixture(home, away int) models.Fixture {
	return models.Fixture{HomeTeam: "Lakers", AwayTeam: "Warriors", HomeScore: home, AwayScore: away}
}

func TestRuleScorer(t *testing.T) {
	s := NewRule(-2.5, 220)
	tests := []struct {
		home, away int
		want       models.Prediction
	}{
		{110, 105, models.Prediction{Winner: models.WinnerHome, Side: models.HomeCovers, Total: models.Under}},
		{100, 102, models.Prediction{Winner: models.WinnerAway, Side: models.HomeCovers, Total: models.Under}},
		{100, 103, models.Prediction{Winner: models.WinnerAway, Side: models.AwayCovers, Total: models.Under}},
		{120, 101, models.Prediction{Winner: models.WinnerHome, Side: models.HomeCovers, Total: models.Over}},
		{0, 0, models.Prediction{Winner: models.WinnerAway, Side: models.HomeCovers, Total: models.Under}},
	}
	for _, tt := range tests {
		got, err := s.Score(fixture(tt.home, tt.away))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%d:%d", tt.home, tt.away)
	}
}

func TestRuleScorer_Deterministic(t *testing.T) {
	s := NewRule(-2.5, 220)
	first, err := s.Score(fixture(98, 97))
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		got, err := s.Score(fixture(98, 97))
		require.NoError(t, err)
		require.Equal(t, first, got)
	}
}

type failing struct{}

func (failing) Predict(Features) (bool, error) { return false, errors.New("boom") }

func TestScorer_ClassifierErrorFailsPrediction(t *testing.T) {
	s := New(WinRule{}, failing{}, TotalRule{Threshold: 1}, nil)
	_, err := s.Score(fixture(1, 0))
	assert.ErrorContains(t, err, "spread classifier")
}

func TestScorer_CustomFeatures(t *testing.T) {
	pregame := func(models.Fixture) Features { return Features{HomeScore: 1, AwayScore: 5} }
	s := New(WinRule{}, SpreadRule{}, TotalRule{}, pregame)

	got, err := s.Score(fixture(110, 105))
	require.NoError(t, err)
	assert.Equal(t, models.WinnerAway, got.Winner)

	bad := New(WinRule{}, SpreadRule{}, TotalRule{}, func(models.Fixture) Features {
		return Features{HomeScore: math.NaN()}
	})
	_, err = bad.Score(fixture(1, 0))
	assert.ErrorIs(t, err, ErrBadFeatures)
}

func TestLogistic(t *testing.T) {
	l := Logistic{Intercept: 0, Coef: []float64{1, -1}}

	ok, err := l.Predict(Features{HomeScore: 110, AwayScore: 105})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Predict(Features{HomeScore: 100, AwayScore: 102})
	require.NoError(t, err)
	assert.False(t, ok)

	assert.InDelta(t, 0.5, l.Probability(Features{HomeScore: 3, AwayScore: 3}), 1e-9)

	_, err = Logistic{Coef: []float64{1}}.Predict(Features{})
	assert.Error(t, err)
}

const artifactJSON = `{
  "version": "2024-03-01",
  "models": {
    "win":    {"intercept": 0,    "coef": [0.3, -0.3]},
    "spread": {"intercept": 0.75, "coef": [0.3, -0.3]},
    "total":  {"intercept": -22,  "coef": [0.1, 0.1]}
  }
}`

func TestParseArtifact(t *testing.T) {
	a, err := ParseArtifact([]byte(artifactJSON))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", a.Version)

	got, err := a.Scorer(nil).Score(fixture(110, 105))
	require.NoError(t, err)
	assert.Equal(t, models.Prediction{Winner: models.WinnerHome, Side: models.HomeCovers, Total: models.Under}, got)
}

func TestParseArtifact_Invalid(t *testing.T) {
	_, err := ParseArtifact([]byte(`{"models":{"win":{"coef":[1,2]}}}`))
	assert.ErrorContains(t, err, `missing "spread" model`)

	_, err = ParseArtifact([]byte(`{"models":{"win":{"coef":[1]},"spread":{"coef":[1,2]},"total":{"coef":[1,2]}}}`))
	assert.ErrorContains(t, err, "want 2 coefficients")

	_, err = ParseArtifact([]byte(`not json`))
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	s, err := FromConfig(ctx, config.ScoringConfig{Model: "rule", SpreadThreshold: -2.5, TotalThreshold: 220})
	require.NoError(t, err)
	got, err := s.Score(fixture(110, 105))
	require.NoError(t, err)
	assert.Equal(t, models.WinnerHome, got.Winner)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(artifactJSON), 0o600))
	_, err = FromConfig(ctx, config.ScoringConfig{Model: "logistic", Artifact: path})
	require.NoError(t, err)

	_, err = FromConfig(ctx, config.ScoringConfig{Model: "logistic", Artifact: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	_, err = FromConfig(ctx, config.ScoringConfig{Model: "xgboost"})
	assert.Error(t, err)
}

func TestSplitS3(t *testing.T) {
	bucket, key, err := splitS3("s3://models/nba/v1.json")
	require.NoError(t, err)
	assert.Equal(t, "models", bucket)
	assert.Equal(t, "nba/v1.json", key)

	_, _, err = splitS3("s3://models")
	assert.Error(t, err)
}
