// Package coerce turns raw field values into typed optional scalars.
//
// None of the functions here fail: anything that cannot be read resolves to
// nil.
package coerce

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"customer_extract/internal/domain/raw"
)

var (
	rePricePrefix = regexp.MustCompile(`^[^\d\-.]+`)
	reNonInteger  = regexp.MustCompile(`[^\d\-]`)
)

// idKeys is the lookup order used when an identifier arrives wrapped in a map.
var idKeys = []string{"id", "code", "order_id"}

// ParsePrice reads a unit price. Strings may carry currency symbols or labels
// before the number and thousands separators inside it: "$1,234.56" is 1234.56.
// Infinite prices are rejected.
func ParsePrice(v raw.Value) *float64 {
	if v.IsNull() {
		return nil
	}

	if n, ok := v.Number(); ok {
		return finite(n)
	}

	s, ok := v.AsString()
	if !ok {
		return nil
	}

	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	clean = rePricePrefix.ReplaceAllString(clean, "")

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

// ParseQty reads an item quantity. Numbers are truncated, "free" means zero,
// and text keeps only its digits and minus signs ("3 units" is 3).
func ParseQty(v raw.Value) *int64 {
	if v.IsNull() {
		return nil
	}

	if i, ok := v.AsInt(); ok {
		return &i
	}
	if n, ok := v.Number(); ok {
		return truncate(n)
	}

	s, ok := v.AsString()
	if !ok {
		return nil
	}

	txt := strings.ToLower(strings.TrimSpace(s))
	if txt == "free" {
		zero := int64(0)
		return &zero
	}
	return parseDigits(txt)
}

// ToIntOrNA reads an identifier. Maps are unwrapped through the first present
// key of "id", "code", "order_id", in that order.
func ToIntOrNA(v raw.Value) *int64 {
	if v.IsNull() {
		return nil
	}

	switch v.Kind() {
	case raw.KindInt:
		i, _ := v.AsInt()
		return &i
	case raw.KindBool:
		n, _ := v.Number()
		return truncate(n)
	case raw.KindFloat:
		f, _ := v.AsFloat()
		if f != math.Trunc(f) {
			return nil
		}
		return truncate(f)
	case raw.KindString:
		s, _ := v.AsString()
		return parseDigits(s)
	case raw.KindMap:
		if inner, ok := v.Lookup(idKeys...); ok {
			return ToIntOrNA(inner)
		}
		return nil
	default:
		return nil
	}
}

// Text renders scalar values for string columns. Null and containers give "".
func Text(v raw.Value) string {
	s, _ := v.Scalar()
	return s
}

func parseDigits(s string) *int64 {
	digits := reNonInteger.ReplaceAllString(s, "")
	if digits == "" {
		return nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func truncate(f float64) *int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	t := math.Trunc(f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return nil
	}
	n := int64(t)
	return &n
}
