package csv

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer_extract/internal/domain/category"
	"customer_extract/internal/domain/dataset"
)

func sampleDataset() *dataset.Dataset {
	id := int64(5)
	orderID := int64(99)
	qty := int64(2)
	price := 10.0
	total := 20.0
	pct := 100.0
	reg := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	ordered := time.Date(2023, 2, 1, 9, 30, 0, 0, time.UTC)

	return &dataset.Dataset{Rows: []dataset.Row{
		{
			CustomerID:                &id,
			CustomerName:              "Doe, Jane",
			RegistrationDate:          &reg,
			IsVIP:                     true,
			OrderID:                   &orderID,
			OrderDate:                 &ordered,
			ProductName:               "Order 99 Widget",
			UnitPrice:                 &price,
			ItemQuantity:              &qty,
			TotalItemPrice:            &total,
			TotalOrderValuePercentage: &pct,
			Category:                  category.Misc,
		},
		{Category: category.Books},
	}}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleDataset()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(dataset.Columns, ","), lines[0])
	assert.Equal(t, `5,"Doe, Jane",2023-01-15,true,99,2023-02-01T09:30:00Z,,Order 99 Widget,10,2,20,100,Misc`, lines[1])
	assert.Equal(t, `,,,false,,,,,,,,,Books`, lines[2])
}

func TestWrite_NilDataset(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, strings.Join(dataset.Columns, ",")+"\n", buf.String())
}

func TestFileSink_WriteRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rows.csv")
	sink := NewFileSink(path)

	require.NoError(t, sink.WriteRows(context.Background(), sampleDataset()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
	assert.Equal(t, "csv", sink.Name())
}
