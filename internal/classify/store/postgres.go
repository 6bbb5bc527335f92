package store

import (
	"context"
	"database/sql"
	"fmt"

	"pidkit/internal/classify/models"
)

// PostgresHistoryStore persists classification history in PostgreSQL.
type PostgresHistoryStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed history store.
func NewPostgres(db *sql.DB) *PostgresHistoryStore {
	return &PostgresHistoryStore{db: db}
}

// EnsureSchema creates the history table if it does not exist yet.
func (s *PostgresHistoryStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS classification_history (
			id UUID PRIMARY KEY,
			raw_value TEXT NOT NULL,
			scheme TEXT NOT NULL,
			normalized_value TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure classification_history schema: %w", err)
	}
	return nil
}

func (s *PostgresHistoryStore) Append(ctx context.Context, record *models.Record) error {
	query := `
		INSERT INTO classification_history (id, raw_value, scheme, normalized_value, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.RawValue,
		record.Scheme,
		record.NormalizedValue,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append classification record: %w", err)
	}
	return nil
}

func (s *PostgresHistoryStore) Recent(ctx context.Context, limit int) ([]models.Record, error) {
	query := `
		SELECT id, raw_value, scheme, normalized_value, created_at
		FROM classification_history
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query classification history: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.RawValue, &r.Scheme, &r.NormalizedValue, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan classification record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classification history: %w", err)
	}
	return records, nil
}

func (s *PostgresHistoryStore) Purge(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM classification_history`)
	if err != nil {
		return 0, fmt.Errorf("purge classification history: %w", err)
	}
	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge classification history: %w", err)
	}
	return purged, nil
}
