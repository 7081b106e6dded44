package translate

import (
	"context"
	"fmt"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/fetch"
	"github.com/Vodeneev/oddsbot/internal/pkg/metrics"
	"github.com/Vodeneev/oddsbot/internal/pkg/storage"
)

// FromConfig builds the name resolver. With translation disabled it returns
// Passthrough and a no-op closer.
func FromConfig(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (Names, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Translation.Enabled {
		return Passthrough{}, noop, nil
	}

	var t Translator
	switch cfg.Translation.Translator {
	case "google":
		t = NewGoogleTranslator(cfg.Translation.Endpoint,
			fetch.NewHTTPFetcher(cfg.Fetch.UserAgent, nil, cfg.HTTP.Timeout, 0))
	case "none":
		t = NoneTranslator{}
	default:
		return nil, noop, fmt.Errorf("unknown translator %q", cfg.Translation.Translator)
	}

	store, err := storage.NewTranslationStore(cfg)
	if err != nil {
		return nil, noop, fmt.Errorf("open translation store: %w", err)
	}
	r, err := NewResolver(ctx, t, store, cfg.Translation.TargetLocale, m)
	if err != nil {
		_ = store.Close()
		return nil, noop, err
	}
	return r, r.Close, nil
}
