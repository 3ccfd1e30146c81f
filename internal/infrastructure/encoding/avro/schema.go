package avro

// FlatOrderItemSchema describes one output row. Optional columns are
// ["null", T] unions; dates travel as RFC 3339 strings.
const FlatOrderItemSchema = `{
	"type": "record",
	"name": "FlatOrderItem",
	"namespace": "com.customer_extract.dataset",
	"fields": [
		{"name": "customer_id", "type": ["null", "long"], "default": null},
		{"name": "customer_name", "type": "string", "default": ""},
		{"name": "registration_date", "type": ["null", "string"], "default": null},
		{"name": "is_vip", "type": "boolean", "default": false},
		{"name": "order_id", "type": ["null", "long"], "default": null},
		{"name": "order_date", "type": ["null", "string"], "default": null},
		{"name": "product_id", "type": ["null", "long"], "default": null},
		{"name": "product_name", "type": "string", "default": ""},
		{"name": "unit_price", "type": ["null", "double"], "default": null},
		{"name": "item_quantity", "type": ["null", "long"], "default": null},
		{"name": "total_item_price", "type": ["null", "double"], "default": null},
		{"name": "total_order_value_percentage", "type": ["null", "double"], "default": null},
		{"name": "category", "type": "string", "default": "Misc"}
	]
}`
