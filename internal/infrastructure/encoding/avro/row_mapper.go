package avro

import (
	"time"

	"customer_extract/internal/domain/dataset"
)

// ToFlatOrderItemNative converts a row into the goavro native form, wrapping
// every present optional value as map[string]interface{}{"<type>": value}.
func ToFlatOrderItemNative(row dataset.Row) map[string]interface{} {
	return map[string]interface{}{
		"customer_id":                  longUnion(row.CustomerID),
		"customer_name":                row.CustomerName,
		"registration_date":            dateUnion(row.RegistrationDate),
		"is_vip":                       row.IsVIP,
		"order_id":                     longUnion(row.OrderID),
		"order_date":                   dateUnion(row.OrderDate),
		"product_id":                   longUnion(row.ProductID),
		"product_name":                 row.ProductName,
		"unit_price":                   doubleUnion(row.UnitPrice),
		"item_quantity":                longUnion(row.ItemQuantity),
		"total_item_price":             doubleUnion(row.TotalItemPrice),
		"total_order_value_percentage": doubleUnion(row.TotalOrderValuePercentage),
		"category":                     string(row.Category),
	}
}

func longUnion(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return map[string]interface{}{"long": *v}
}

func doubleUnion(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return map[string]interface{}{"double": *v}
}

func dateUnion(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return map[string]interface{}{"string": v.UTC().Format(time.RFC3339)}
}
