package order

import "customer_extract/internal/domain/raw"

// Order is one order as it arrives from a record source. Every field keeps
// its raw shape; coercion happens while flattening.
type Order struct {
	ID    raw.Value `json:"order_id"`
	Date  raw.Value `json:"order_date"`
	Items []Item    `json:"items"`
}

// Item is a single order line.
type Item struct {
	ID          raw.Value `json:"item_id"`
	ProductName raw.Value `json:"product_name"`
	Price       raw.Value `json:"price"`
	Quantity    raw.Value `json:"quantity"`
	Category    raw.Value `json:"category"`
}
