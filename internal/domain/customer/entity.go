package customer

import (
	"customer_extract/internal/domain/order"
	"customer_extract/internal/domain/raw"
)

// Customer is the root of one nested source record.
type Customer struct {
	ID               raw.Value     `json:"id"`
	Name             raw.Value     `json:"name"`
	RegistrationDate raw.Value     `json:"registration_date"`
	Orders           []order.Order `json:"orders"`
}

// ItemCount returns the number of leaf items, which is the number of rows the
// customer contributes to a flattened dataset.
func (c Customer) ItemCount() int {
	n := 0
	for _, o := range c.Orders {
		n += len(o.Items)
	}
	return n
}
