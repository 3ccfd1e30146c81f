package category

import (
	"math"
	"strconv"
	"strings"

	"customer_extract/internal/domain/raw"
)

// Label is one of the five canonical product categories.
type Label string

const (
	Electronics Label = "Electronics"
	Apparel     Label = "Apparel"
	Books       Label = "Books"
	HomeGoods   Label = "Home Goods"
	Misc        Label = "Misc"
)

var codes = map[int64]Label{
	1: Electronics,
	2: Apparel,
	3: Books,
	4: HomeGoods,
}

// containerKeys is the lookup order for categories wrapped in a map.
var containerKeys = []string{"id", "code", "category", "value"}

// Classify maps a raw category of any shape to a Label. It always returns
// one of the five labels.
func Classify(v raw.Value) Label {
	if items, ok := v.AsList(); ok && len(items) > 0 {
		v = items[0]
	}
	if v.Kind() == raw.KindMap {
		inner, ok := v.Lookup(containerKeys...)
		if !ok {
			return Misc
		}
		v = inner
	}

	switch v.Kind() {
	case raw.KindNull, raw.KindMap, raw.KindList:
		return Misc
	case raw.KindString:
		s, _ := v.AsString()
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			if label, ok := fromNumber(f); ok {
				return label
			}
		}
		return fromText(s)
	default:
		n, _ := v.Number()
		if label, ok := fromNumber(n); ok {
			return label
		}
		return Misc
	}
}

func fromNumber(f float64) (Label, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	t := math.Trunc(f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return Misc, true
	}
	if label, ok := codes[int64(t)]; ok {
		return label, true
	}
	return Misc, true
}

func fromText(s string) Label {
	txt := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(txt, "elect"):
		return Electronics
	case strings.Contains(txt, "apparel"), strings.Contains(txt, "cloth"):
		return Apparel
	case strings.Contains(txt, "book"):
		return Books
	case strings.Contains(txt, "home"):
		return HomeGoods
	default:
		return Misc
	}
}
