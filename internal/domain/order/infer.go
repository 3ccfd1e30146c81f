package order

import (
	"regexp"
	"strconv"

	"customer_extract/internal/domain/coerce"
)

var reOrderRef = regexp.MustCompile(`(?i)order\s+(\d+)`)

// InferID resolves the order identifier. A present id is coerced as is;
// a missing one is recovered from an "Order <digits>" reference in the
// first item's product name. Only the first item is consulted.
func InferID(o Order) *int64 {
	if !o.ID.IsNull() {
		return coerce.ToIntOrNA(o.ID)
	}
	if len(o.Items) == 0 {
		return nil
	}

	name, ok := o.Items[0].ProductName.AsString()
	if !ok {
		return nil
	}

	m := reOrderRef.FindStringSubmatch(name)
	if m == nil {
		return nil
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
