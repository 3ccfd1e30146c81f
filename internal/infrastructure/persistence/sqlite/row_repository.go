package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"customer_extract/internal/domain/dataset"
	"customer_extract/internal/domain/repository"
)

const table = "customer_order_items"

var columnTypes = map[string]string{
	"customer_id":                  "INTEGER",
	"is_vip":                       "INTEGER NOT NULL",
	"order_id":                     "INTEGER",
	"product_id":                   "INTEGER",
	"unit_price":                   "REAL",
	"item_quantity":                "INTEGER",
	"total_item_price":             "REAL",
	"total_order_value_percentage": "REAL",
	"customer_name":                "TEXT NOT NULL",
	"product_name":                 "TEXT NOT NULL",
	"category":                     "TEXT NOT NULL",
}

// RowRepository writes rows to a SQLite database file. Dates are stored as
// RFC 3339 text, booleans as 0/1.
type RowRepository struct {
	db *sql.DB
}

var _ repository.RowRepository = (*RowRepository)(nil)

func Open(path string) (*RowRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &RowRepository{db: db}, nil
}

func (r *RowRepository) Close() error {
	return r.db.Close()
}

// SaveRows appends rows in a single transaction.
func (r *RowRepository) SaveRows(ctx context.Context, rows []dataset.Row) error {
	return r.write(ctx, rows, false)
}

// ReplaceRows deletes every stored row and inserts rows in the same
// transaction, so readers see either the old table or the new one.
func (r *RowRepository) ReplaceRows(ctx context.Context, rows []dataset.Row) error {
	return r.write(ctx, rows, true)
}

func (r *RowRepository) write(ctx context.Context, rows []dataset.Row, replace bool) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM "`+table+`"`); err != nil {
			return fmt.Errorf("clear table: %w", err)
		}
	}

	quoted := make([]string, 0, len(dataset.Columns))
	for _, c := range dataset.Columns {
		quoted = append(quoted, fmt.Sprintf("%q", c))
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(dataset.Columns)), ",")

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO "`+table+`" (`+strings.Join(quoted, ",")+`) VALUES (`+ph+`)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, sqliteValues(row)...); err != nil {
			return fmt.Errorf("insert row #%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *RowRepository) CountRows(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM "`+table+`"`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *RowRepository) ensureTable(ctx context.Context) error {
	defs := make([]string, 0, len(dataset.Columns))
	for _, c := range dataset.Columns {
		t := columnTypes[c]
		if t == "" {
			t = "TEXT"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, t))
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS "` + table + `" (` + strings.Join(defs, ",") + `)`,
		`CREATE INDEX IF NOT EXISTS idx_customer_order_items_order_id ON "` + table + `"(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_customer_order_items_customer_id ON "` + table + `"(customer_id)`,
	}
	for _, s := range stmts {
		if _, err := r.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure table: %w", err)
		}
	}
	return nil
}

func sqliteValues(row dataset.Row) []any {
	values := row.Values()
	for i, v := range values {
		switch t := v.(type) {
		case time.Time:
			values[i] = t.UTC().Format(time.RFC3339)
		case bool:
			if t {
				values[i] = 1
			} else {
				values[i] = 0
			}
		}
	}
	return values
}
