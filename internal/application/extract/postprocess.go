package extract

import (
	"math"

	"customer_extract/internal/domain/dataset"
)

// groupKey identifies a percentage group. Rows without an order id share
// the single null group.
type groupKey struct {
	id    int64
	valid bool
}

type groupSum struct {
	sum   float64
	count int
}

func keyOf(orderID *int64) groupKey {
	if orderID == nil {
		return groupKey{}
	}
	return groupKey{id: *orderID, valid: true}
}

// PostProcess types the date columns and computes each row's share of its
// order total. The percentage is nil when the row total is missing or when
// its group has no totals or sums to zero.
func PostProcess(flat []FlatRow) *dataset.Dataset {
	sums := make(map[groupKey]groupSum)
	for _, fr := range flat {
		if fr.Row.TotalItemPrice == nil {
			continue
		}
		k := keyOf(fr.Row.OrderID)
		g := sums[k]
		g.sum += *fr.Row.TotalItemPrice
		g.count++
		sums[k] = g
	}

	rows := make([]dataset.Row, 0, len(flat))
	for _, fr := range flat {
		row := fr.Row
		row.RegistrationDate = dataset.ParseDate(fr.RawRegistrationDate)
		row.OrderDate = dataset.ParseDate(fr.RawOrderDate)
		row.TotalOrderValuePercentage = share(row.TotalItemPrice, sums[keyOf(row.OrderID)])
		rows = append(rows, row)
	}

	return &dataset.Dataset{Rows: rows}
}

func share(total *float64, g groupSum) *float64 {
	if total == nil || g.count == 0 || g.sum == 0 {
		return nil
	}
	pct := *total / g.sum * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return nil
	}
	return &pct
}
