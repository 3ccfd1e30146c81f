package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"customer_extract/internal/domain/dataset"
)

// FileSink writes the dataset to a CSV file, replacing any previous content.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Name() string {
	return "csv"
}

func (s *FileSink) WriteRows(ctx context.Context, ds *dataset.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	if err := Write(f, ds); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Write emits a header row followed by one record per row. Missing values are
// empty cells.
func Write(w io.Writer, ds *dataset.Dataset) error {
	cw := stdcsv.NewWriter(w)

	if err := cw.Write(dataset.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(dataset.Columns))
	if ds != nil {
		for i, row := range ds.Rows {
			for j, v := range row.Values() {
				rec[j] = formatCell(v)
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("write row #%d: %w", i, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return formatDate(t)
	default:
		return fmt.Sprint(t)
	}
}

// formatDate prints midnight UTC values as plain dates.
func formatDate(t time.Time) string {
	t = t.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
