package dataset

import (
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"customer_extract/internal/domain/raw"
)

// Dates must fit in int64 nanoseconds since the Unix epoch, roughly
// 1677-09-21 to 2262-04-11. Anything outside is treated as unparsable.
var (
	minDate = time.Unix(0, math.MinInt64).UTC()
	maxDate = time.Unix(0, math.MaxInt64).UTC()
)

// ParseDate reads a raw date-like value. Text is parsed in any common layout
// (UTC unless the text carries a zone); numbers are Unix seconds. Anything
// else, text that is not a date, or a date outside the supported range gives
// nil.
func ParseDate(v raw.Value) *time.Time {
	if v.IsNull() {
		return nil
	}

	switch v.Kind() {
	case raw.KindString:
		s, _ := v.AsString()
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return nil
		}
		return inRange(t.UTC())
	case raw.KindInt:
		sec, _ := v.AsInt()
		if sec < minDate.Unix() || sec > maxDate.Unix() {
			return nil
		}
		return inRange(time.Unix(sec, 0).UTC())
	case raw.KindFloat:
		f, _ := v.AsFloat()
		if f < float64(minDate.Unix()) || f > float64(maxDate.Unix()) {
			return nil
		}
		sec, frac := math.Modf(f)
		return inRange(time.Unix(int64(sec), int64(frac*1e9)).UTC())
	default:
		return nil
	}
}

func inRange(t time.Time) *time.Time {
	if t.Before(minDate) || t.After(maxDate) {
		return nil
	}
	return &t
}
