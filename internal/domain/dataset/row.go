package dataset

import (
	"time"

	"customer_extract/internal/domain/category"
)

// Columns lists the output columns in their fixed order.
var Columns = []string{
	"customer_id",
	"customer_name",
	"registration_date",
	"is_vip",
	"order_id",
	"order_date",
	"product_id",
	"product_name",
	"unit_price",
	"item_quantity",
	"total_item_price",
	"total_order_value_percentage",
	"category",
}

// Row is one flattened order item with its customer and order attributes.
// Nil pointers are missing values.
type Row struct {
	CustomerID                *int64         `json:"customer_id"`
	CustomerName              string         `json:"customer_name"`
	RegistrationDate          *time.Time     `json:"registration_date"`
	IsVIP                     bool           `json:"is_vip"`
	OrderID                   *int64         `json:"order_id"`
	OrderDate                 *time.Time     `json:"order_date"`
	ProductID                 *int64         `json:"product_id"`
	ProductName               string         `json:"product_name"`
	UnitPrice                 *float64       `json:"unit_price"`
	ItemQuantity              *int64         `json:"item_quantity"`
	TotalItemPrice            *float64       `json:"total_item_price"`
	TotalOrderValuePercentage *float64       `json:"total_order_value_percentage"`
	Category                  category.Label `json:"category"`
}

// Values returns the row's cells in Columns order. Missing values are nil
// interfaces, never typed nil pointers.
func (r Row) Values() []interface{} {
	return []interface{}{
		optional(r.CustomerID),
		r.CustomerName,
		optional(r.RegistrationDate),
		r.IsVIP,
		optional(r.OrderID),
		optional(r.OrderDate),
		optional(r.ProductID),
		r.ProductName,
		optional(r.UnitPrice),
		optional(r.ItemQuantity),
		optional(r.TotalItemPrice),
		optional(r.TotalOrderValuePercentage),
		string(r.Category),
	}
}

func optional[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// Dataset is the final table: one row per source item, in traversal order.
type Dataset struct {
	Rows []Row `json:"rows"`
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}
