package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRecordSource_FetchCustomers_Array(t *testing.T) {
	path := writeFile(t, "customers.json", `[
		{"id": 1, "orders": [{"order_id": 1, "items": [{"item_id": 1}, {"item_id": 2}]}]},
		{"id": 2}
	]`)

	customers, err := NewRecordSource(path).FetchCustomers(context.Background())

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, 2, customers[0].ItemCount())
	assert.Empty(t, customers[1].Orders)
}

func TestRecordSource_FetchCustomers_JSONLines(t *testing.T) {
	path := writeFile(t, "customers.jsonl", "{\"id\": 1}\n{\"id\": \"2\"}\n\n{\"id\": 3}\n")

	customers, err := NewRecordSource(path).FetchCustomers(context.Background())

	require.NoError(t, err)
	assert.Len(t, customers, 3)
}

func TestRecordSource_FetchCustomers_Empty(t *testing.T) {
	path := writeFile(t, "customers.json", "  \n")

	customers, err := NewRecordSource(path).FetchCustomers(context.Background())

	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestRecordSource_FetchCustomers_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			want: "read records file",
		},
		{
			name: "corrupt json",
			path: func(t *testing.T) string { return writeFile(t, "bad.json", `[{"id": 1}`) },
			want: "decode records file",
		},
		{
			name: "corrupt json lines",
			path: func(t *testing.T) string { return writeFile(t, "bad.jsonl", "{\"id\": 1}\n{oops}\n") },
			want: "record #1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecordSource(tt.path(t)).FetchCustomers(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRecordSource_FetchCustomers_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRecordSource("unused").FetchCustomers(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadVIPIDs(t *testing.T) {
	set, err := ReadVIPIDs(strings.NewReader("5\n 12 \n-3\nabc\n\n4.0\n007\n99999999999999999999\n"))

	require.NoError(t, err)
	assert.Len(t, set, 3)
	for _, id := range []int64{5, 12, 7} {
		_, ok := set[id]
		assert.True(t, ok, "id %d", id)
	}
}

func TestVIPSource_FetchVIPIDs(t *testing.T) {
	path := writeFile(t, "vip.txt", "1\n2\n")

	set, err := NewVIPSource(path).FetchVIPIDs(context.Background())

	require.NoError(t, err)
	assert.Len(t, set, 2)
}

func TestVIPSource_FetchVIPIDs_MissingFile(t *testing.T) {
	_, err := NewVIPSource(filepath.Join(t.TempDir(), "vip.txt")).FetchVIPIDs(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open vip file")
}
