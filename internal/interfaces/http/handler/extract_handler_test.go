package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"customer_extract/internal/application/extract"
	"customer_extract/internal/domain/category"
	"customer_extract/internal/domain/customer"
	"customer_extract/internal/domain/dataset"
)

type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(ctx context.Context, customers []customer.Customer, vips customer.VIPSet) *dataset.Dataset {
	args := m.Called(ctx, customers, vips)
	return args.Get(0).(*dataset.Dataset)
}

func newTestEngine(svc Transformer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewExtractHandler(svc)
	r.GET("/healthz", Health)
	r.POST("/api/extract", h.Extract)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExtractHandler_Extract(t *testing.T) {
	// Arrange
	r := newTestEngine(extract.NewService(nil, nil, nil))
	body := `{
		"customers": [{
			"id": 7,
			"name": "Ada",
			"registration_date": "2022-01-01",
			"orders": [{
				"order_id": null,
				"order_date": "2022-02-01",
				"items": [
					{"item_id": 1, "product_name": "Order 55 Lamp", "price": "$10.00", "quantity": "2", "category": 4},
					{"item_id": 2, "product_name": "Shade", "price": 5, "quantity": "free", "category": "books"}
				]
			}]
		}],
		"vip_ids": [7]
	}`

	// Act
	w := doRequest(r, http.MethodPost, "/api/extract", body)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dataset.Columns, resp.Columns)
	require.Len(t, resp.Rows, 2)

	first := resp.Rows[0]
	require.NotNil(t, first.OrderID)
	assert.Equal(t, int64(55), *first.OrderID)
	assert.True(t, first.IsVIP)
	assert.Equal(t, category.HomeGoods, first.Category)
	require.NotNil(t, first.TotalOrderValuePercentage)
	assert.InDelta(t, 100.0, *first.TotalOrderValuePercentage, 1e-9)

	second := resp.Rows[1]
	require.NotNil(t, second.ItemQuantity)
	assert.Equal(t, int64(0), *second.ItemQuantity)
	assert.Equal(t, category.Books, second.Category)
	require.NotNil(t, second.TotalOrderValuePercentage)
	assert.InDelta(t, 0.0, *second.TotalOrderValuePercentage, 1e-9)
}

func TestExtractHandler_Extract_PassesVIPSet(t *testing.T) {
	// Arrange
	svc := new(MockTransformer)
	svc.On("Transform", mock.Anything, mock.Anything, customer.NewVIPSet(1, 2)).
		Return(&dataset.Dataset{})
	r := newTestEngine(svc)

	// Act
	w := doRequest(r, http.MethodPost, "/api/extract", `{"customers": [], "vip_ids": [1, 2]}`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"columns": `+mustJSON(t, dataset.Columns)+`, "rows": []}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestExtractHandler_Extract_OutOfRangeValuesBecomeNull(t *testing.T) {
	r := newTestEngine(extract.NewService(nil, nil, nil))

	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, row dataset.Row)
	}{
		{
			name: "epoch milliseconds registration date",
			body: `{"customers": [{"id": 1, "registration_date": 1672531200000, "orders": [
				{"order_id": 1, "order_date": "2023-01-02", "items": [{"item_id": 1, "price": 2, "quantity": 1}]}
			]}]}`,
			check: func(t *testing.T, row dataset.Row) {
				assert.Nil(t, row.RegistrationDate)
				require.NotNil(t, row.OrderDate)
				require.NotNil(t, row.TotalOrderValuePercentage)
			},
		},
		{
			name: "negative infinity price",
			body: `{"customers": [{"id": 1, "orders": [
				{"order_id": 1, "items": [{"item_id": 1, "price": "-inf", "quantity": 1}]}
			]}]}`,
			check: func(t *testing.T, row dataset.Row) {
				assert.Nil(t, row.UnitPrice)
				assert.Nil(t, row.TotalItemPrice)
			},
		},
		{
			name: "line total overflows",
			body: `{"customers": [{"id": 1, "orders": [
				{"order_id": 1, "items": [{"item_id": 1, "price": 1e308, "quantity": 10}]}
			]}]}`,
			check: func(t *testing.T, row dataset.Row) {
				require.NotNil(t, row.UnitPrice)
				assert.Nil(t, row.TotalItemPrice)
				assert.Nil(t, row.TotalOrderValuePercentage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/extract", tt.body)

			require.Equal(t, http.StatusOK, w.Code)
			var resp ExtractResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Len(t, resp.Rows, 1)
			tt.check(t, resp.Rows[0])
		})
	}
}

func TestExtractHandler_Extract_UnencodableRow(t *testing.T) {
	// Arrange
	inf := math.Inf(1)
	svc := new(MockTransformer)
	svc.On("Transform", mock.Anything, mock.Anything, mock.Anything).
		Return(&dataset.Dataset{Rows: []dataset.Row{{UnitPrice: &inf}}})
	r := newTestEngine(svc)

	// Act
	w := doRequest(r, http.MethodPost, "/api/extract", `{"customers": []}`)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "render rows")
}

func TestExtractHandler_Extract_BadBody(t *testing.T) {
	svc := new(MockTransformer)
	r := newTestEngine(svc)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"customers": [`},
		{name: "vip ids not integers", body: `{"customers": [], "vip_ids": ["a"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/extract", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
	svc.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	r := newTestEngine(new(MockTransformer))

	w := doRequest(r, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
