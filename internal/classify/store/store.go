// Package store persists classification history. Stores are pure I/O;
// retention and validation rules belong in the service layer.
package store

import (
	"context"

	"pidkit/internal/classify/models"
)

// HistoryStore records classifications for curation audit.
type HistoryStore interface {
	Append(ctx context.Context, record *models.Record) error
	Recent(ctx context.Context, limit int) ([]models.Record, error)
	Purge(ctx context.Context) (int64, error)
}
