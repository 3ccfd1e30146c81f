package avro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer_extract/internal/domain/category"
	"customer_extract/internal/domain/dataset"
)

func TestEncoder_EncodeRow(t *testing.T) {
	enc, err := NewRowEncoder()
	require.NoError(t, err)

	id := int64(5)
	orderID := int64(99)
	price := 10.0
	regDate := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	row := dataset.Row{
		CustomerID:       &id,
		CustomerName:     "Ann",
		RegistrationDate: &regDate,
		IsVIP:            true,
		OrderID:          &orderID,
		UnitPrice:        &price,
		Category:         category.Misc,
	}

	binary, err := enc.EncodeRow(row)
	require.NoError(t, err)
	require.NotEmpty(t, binary)

	native, err := enc.DecodeNative(binary)
	require.NoError(t, err)

	rec, ok := native.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"long": int64(5)}, rec["customer_id"])
	assert.Equal(t, map[string]interface{}{"string": "2023-01-15T00:00:00Z"}, rec["registration_date"])
	assert.Equal(t, true, rec["is_vip"])
	assert.Nil(t, rec["order_date"])
	assert.Nil(t, rec["total_order_value_percentage"])
	assert.Equal(t, "Misc", rec["category"])
}

func TestNewEncoder_InvalidSchema(t *testing.T) {
	enc, err := NewEncoder(`{"type": "record"}`)

	assert.Error(t, err)
	assert.Nil(t, enc)
}

func TestEncoder_EncodeNative_WrongShape(t *testing.T) {
	enc, err := NewRowEncoder()
	require.NoError(t, err)

	_, err = enc.EncodeNative(map[string]interface{}{"is_vip": "yes"})

	assert.Error(t, err)
}
