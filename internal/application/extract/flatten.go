package extract

import (
	"math"
	"strings"

	"customer_extract/internal/domain/category"
	"customer_extract/internal/domain/coerce"
	"customer_extract/internal/domain/customer"
	"customer_extract/internal/domain/dataset"
	"customer_extract/internal/domain/order"
	"customer_extract/internal/domain/raw"
)

// FlatRow is an output row before post-processing: the two date columns are
// still raw and the order percentage is not yet computed. RawPrice and
// RawQuantity keep the source values for diagnostics.
type FlatRow struct {
	Row                 dataset.Row
	RawRegistrationDate raw.Value
	RawOrderDate        raw.Value
	RawPrice            raw.Value
	RawQuantity         raw.Value
}

// Unparsed reports whether a present price or quantity failed to parse.
func (fr FlatRow) Unparsed() bool {
	return (fr.Row.UnitPrice == nil && !fr.RawPrice.IsNull()) ||
		(fr.Row.ItemQuantity == nil && !fr.RawQuantity.IsNull())
}

// Flatten emits one FlatRow per item, walking customers, their orders and
// the orders' items in source order. It only assembles rows.
func Flatten(customers []customer.Customer, vips customer.VIPSet) []FlatRow {
	total := 0
	for _, c := range customers {
		total += c.ItemCount()
	}
	rows := make([]FlatRow, 0, total)

	for _, c := range customers {
		customerID := coerce.ToIntOrNA(c.ID)
		customerName := coerce.Text(c.Name)
		isVIP := vips.Contains(customerID)

		for _, o := range c.Orders {
			orderID := order.InferID(o)

			for _, item := range o.Items {
				price := coerce.ParsePrice(item.Price)
				qty := coerce.ParseQty(item.Quantity)

				rows = append(rows, FlatRow{
					Row: dataset.Row{
						CustomerID:     customerID,
						CustomerName:   customerName,
						IsVIP:          isVIP,
						OrderID:        orderID,
						ProductID:      coerce.ToIntOrNA(item.ID),
						ProductName:    strings.TrimSpace(coerce.Text(item.ProductName)),
						UnitPrice:      price,
						ItemQuantity:   qty,
						TotalItemPrice: lineTotal(price, qty),
						Category:       category.Classify(item.Category),
					},
					RawRegistrationDate: c.RegistrationDate,
					RawOrderDate:        o.Date,
					RawPrice:            item.Price,
					RawQuantity:         item.Quantity,
				})
			}
		}
	}

	return rows
}

func lineTotal(price *float64, qty *int64) *float64 {
	if price == nil || qty == nil {
		return nil
	}
	total := *price * float64(*qty)
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return nil
	}
	return &total
}
