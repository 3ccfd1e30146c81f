package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"customer_extract/internal/domain/dataset"
	"customer_extract/internal/domain/repository"
)

var reTableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RowRepository stores flattened rows in one table, created on first use.
type RowRepository struct {
	pool  *pgxpool.Pool
	table string
}

var _ repository.RowRepository = (*RowRepository)(nil)

func NewRowRepository(pool *pgxpool.Pool, table string) (*RowRepository, error) {
	if !reTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &RowRepository{pool: pool, table: table}, nil
}

// SaveRows appends rows with one COPY statement.
func (r *RowRepository) SaveRows(ctx context.Context, rows []dataset.Row) error {
	return r.write(ctx, rows, false)
}

// ReplaceRows truncates the table and copies rows in the same transaction.
func (r *RowRepository) ReplaceRows(ctx context.Context, rows []dataset.Row) error {
	return r.write(ctx, rows, true)
}

func (r *RowRepository) write(ctx context.Context, rows []dataset.Row, replace bool) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if replace {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, r.ident())); err != nil {
			return fmt.Errorf("clear %s: %w", r.table, err)
		}
	}

	if len(rows) > 0 {
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{r.table},
			dataset.Columns,
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				return rows[i].Values(), nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy rows into %s: %w", r.table, err)
		}
		if int(n) != len(rows) {
			return fmt.Errorf("copy rows into %s: copied %d of %d", r.table, n, len(rows))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *RowRepository) ident() string {
	return pgx.Identifier{r.table}.Sanitize()
}

func (r *RowRepository) CountRows(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, r.ident())
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *RowRepository) ensureTable(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, createTableStatement(r.table))
	if err != nil {
		return fmt.Errorf("ensure table %s: %w", r.table, err)
	}
	return nil
}

func createTableStatement(table string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			customer_id BIGINT,
			customer_name TEXT NOT NULL,
			registration_date TIMESTAMPTZ,
			is_vip BOOLEAN NOT NULL,
			order_id BIGINT,
			order_date TIMESTAMPTZ,
			product_id BIGINT,
			product_name TEXT NOT NULL,
			unit_price DOUBLE PRECISION,
			item_quantity BIGINT,
			total_item_price DOUBLE PRECISION,
			total_order_value_percentage DOUBLE PRECISION,
			category TEXT NOT NULL
		);
	`, pgx.Identifier{table}.Sanitize())
}
