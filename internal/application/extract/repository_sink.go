package extract

import (
	"context"
	"fmt"

	"customer_extract/internal/domain/dataset"
	"customer_extract/internal/domain/repository"
)

// RepositorySink adapts a RowRepository to Sink. Each run replaces the stored
// rows, so repeated runs leave one copy of the dataset, as the CSV sink does.
type RepositorySink struct {
	name string
	repo repository.RowRepository
}

func NewRepositorySink(name string, repo repository.RowRepository) *RepositorySink {
	return &RepositorySink{name: name, repo: repo}
}

func (s *RepositorySink) Name() string {
	return s.name
}

func (s *RepositorySink) WriteRows(ctx context.Context, ds *dataset.Dataset) error {
	var rows []dataset.Row
	if ds != nil {
		rows = ds.Rows
	}

	if err := s.repo.ReplaceRows(ctx, rows); err != nil {
		return err
	}

	n, err := s.repo.CountRows(ctx)
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	if n != len(rows) {
		return fmt.Errorf("%s holds %d rows after write, want %d", s.name, n, len(rows))
	}
	return nil
}
