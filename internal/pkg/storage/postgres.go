package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// Ensure PostgresStore implements TranslationStore
var _ TranslationStore = (*PostgresStore)(nil)

// PostgresStore keeps translations in the team_translations table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, pings and creates the schema if needed.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL translation storage initialized successfully")
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS team_translations (
		source_name VARCHAR(255) PRIMARY KEY,
		display_name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *PostgresStore) Load(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source_name, display_name FROM team_translations`)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan translation: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT display_name FROM team_translations WHERE source_name = $1`, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get translation: %w", err)
	}
	return v, true, nil
}

// Put uses UPSERT: one row per source name.
func (s *PostgresStore) Put(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO team_translations (source_name, display_name)
	VALUES ($1, $2)
	ON CONFLICT (source_name) DO UPDATE SET display_name = EXCLUDED.display_name
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to store translation: %w", err)
	}
	return nil
}

func (s *PostgresStore) Flush(ctx context.Context) error {
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
