package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("storage: store closed")

// TranslationStore persists the source name -> display name mapping.
// Entries are never evicted; keys are unique.
type TranslationStore interface {
	// Load returns every persisted entry
	Load(ctx context.Context) (map[string]string, error)

	// Get returns the display name for key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Put stores one entry and persists it before returning
	Put(ctx context.Context, key, value string) error

	// Flush persists anything still buffered
	Flush(ctx context.Context) error

	// Close releases the underlying connection or file
	Close() error
}

// NewTranslationStore opens the store named by translation.store.
func NewTranslationStore(cfg *config.Config) (TranslationStore, error) {
	switch cfg.Translation.Store {
	case "file":
		return NewFileStore(cfg.Translation.FilePath)
	case "redis":
		return NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "postgres":
		return NewPostgresStore(cfg.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unknown translation store %q", cfg.Translation.Store)
	}
}
