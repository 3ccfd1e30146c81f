package repository

import (
	"context"

	"customer_extract/internal/domain/dataset"
)

// RowRepository persists flattened rows.
type RowRepository interface {
	// SaveRows appends rows to what is already stored.
	SaveRows(ctx context.Context, rows []dataset.Row) error
	// ReplaceRows atomically swaps the stored rows for rows.
	ReplaceRows(ctx context.Context, rows []dataset.Row) error
	CountRows(ctx context.Context) (int, error)
}
