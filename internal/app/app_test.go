package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/oddsbot/internal/pipeline"
	"github.com/Vodeneev/oddsbot/internal/pkg/config"
)

func dryRunConfig(t *testing.T) *config.Config {
	cfg := config.Defaults()
	cfg.Telegram.DryRun = true
	cfg.Telegram.ChatIDs = []int64{100, 200}
	cfg.Fixtures.Source = "static"
	cfg.Odds.Source = "none"
	cfg.Translation.Translator = "none"
	cfg.Translation.FilePath = filepath.Join(t.TempDir(), "cache.json")
	cfg.Schedule.Timezone = "UTC"
	return &cfg
}

func TestNew_DryRun(t *testing.T) {
	a, err := New(context.Background(), dryRunConfig(t))
	require.NoError(t, err)
	defer a.Close(context.Background())

	text := a.Pipeline().Generate(context.Background(), a.DefaultSport(), "")
	assert.Contains(t, text, "Lakers vs Warriors")
	assert.Contains(t, text, "Celtics vs Heat")

	out := a.Pipeline().Broadcast(context.Background(), a.DefaultSport(), a.Recipients(), pipeline.TriggerManual)
	require.Len(t, out, 2)
	assert.True(t, out[0].Result.OK)

	names := make([]string, 0)
	for _, c := range a.components() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"http", "scheduler"}, names, "no poller without a bot API")
}

func TestNew_InvalidConfigIsConfigurationError(t *testing.T) {
	cfg := dryRunConfig(t)
	cfg.Scoring.Model = "logistic"
	cfg.Scoring.Artifact = filepath.Join(t.TempDir(), "missing.json")

	_, err := New(context.Background(), cfg)
	var ce *pipeline.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "scoring", ce.Component)

	cfg = dryRunConfig(t)
	cfg.Telegram.DryRun = false
	_, err = New(context.Background(), cfg)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "config", ce.Component)
}
