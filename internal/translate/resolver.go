package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Vodeneev/oddsbot/internal/pkg/metrics"
	"github.com/Vodeneev/oddsbot/internal/pkg/storage"
)

// Names resolves a source team name to its display name. Lookup returns
// the source name together with the error when translation fails.
type Names interface {
	Resolve(ctx context.Context, name string) string
	Lookup(ctx context.Context, name string) (string, error)
}

// Passthrough returns names unchanged; used when translation is disabled.
type Passthrough struct{}

func (Passthrough) Resolve(_ context.Context, name string) string { return name }

func (Passthrough) Lookup(_ context.Context, name string) (string, error) { return name, nil }

// Resolver memoizes translations in memory and in a persistent store.
// Concurrent misses of one name share a single translation call; store
// writes happen under mu, one at a time.
type Resolver struct {
	translator Translator
	store      storage.TranslationStore
	locale     string
	metrics    *metrics.Metrics

	mu    sync.RWMutex
	names map[string]string
	group singleflight.Group
}

// NewResolver loads the whole store into memory.
func NewResolver(ctx context.Context, t Translator, store storage.TranslationStore, locale string, m *metrics.Metrics) (*Resolver, error) {
	if t == nil || store == nil {
		return nil, errors.New("translate: translator and store are required")
	}
	names, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load translation cache: %w", err)
	}
	if names == nil {
		names = map[string]string{}
	}
	slog.Info("Translation cache loaded", "entries", len(names), "locale", locale)
	return &Resolver{translator: t, store: store, locale: locale, metrics: m, names: names}, nil
}

// Resolve never fails: on any translation problem it returns name as is.
func (r *Resolver) Resolve(ctx context.Context, name string) string {
	v, err := r.Lookup(ctx, name)
	if err != nil {
		slog.Warn("Translation failed, using source name", "name", name, "error", err)
	}
	return v
}

func (r *Resolver) Lookup(ctx context.Context, name string) (string, error) {
	key := NormalizeKey(name)
	if key == "" {
		return name, nil
	}
	if v, ok := r.lookup(key); ok {
		return v, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		if v, ok := r.lookup(key); ok {
			return v, nil
		}
		translated, err := r.translator.Translate(ctx, key, r.locale)
		if err != nil {
			return nil, err
		}
		if translated == "" {
			return nil, errors.New("empty translation")
		}
		r.remember(ctx, key, translated)
		return translated, nil
	})
	if err != nil {
		r.metrics.TranslationFailed()
		return name, err
	}
	return v.(string), nil
}

func (r *Resolver) lookup(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.names[key]
	return v, ok
}

func (r *Resolver) remember(ctx context.Context, key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[key] = value
	if err := r.store.Put(ctx, key, value); err != nil {
		// Запись остаётся в памяти до перезапуска.
		slog.Error("Failed to persist translation", "name", key, "error", err)
	}
}

// Len returns the number of cached names.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Close flushes and closes the store.
func (r *Resolver) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.store.Flush(ctx), r.store.Close())
}
