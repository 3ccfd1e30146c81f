// Package raw holds the loosely-typed values found in source records.
//
// A Value is a tagged variant: every coercer switches on Kind instead of
// inspecting dynamic Go types.
package raw

import (
	"math"
	"strconv"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is one raw field value. The zero Value is Null, so absent struct
// fields decode to Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	m    map[string]Value
	l    []Value
}

func Null() Value { return Value{} }

func Int(v int64) Value { return Value{kind: KindInt, i: v} }

func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

func String(v string) Value { return Value{kind: KindString, s: v} }

func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

func Map(v map[string]Value) Value { return Value{kind: KindMap, m: v} }

func List(v ...Value) Value { return Value{kind: KindList, l: v} }

func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null or a NaN float. Both mean "missing".
func (v Value) IsNull() bool {
	return v.kind == KindNull || (v.kind == KindFloat && math.IsNaN(v.f))
}

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsList() ([]Value, bool) { return v.l, v.kind == KindList }

func (v Value) AsMap() (map[string]Value, bool) { return v.m, v.kind == KindMap }

// Number returns the numeric reading of an int, float or bool value.
// Bools count as 0 and 1.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Lookup returns the value stored under the first of keys present in a map
// value. Keys are tried in the order given; the first hit wins.
func (v Value) Lookup(keys ...string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	for _, k := range keys {
		if found, ok := v.m[k]; ok {
			return found, true
		}
	}
	return Value{}, false
}

// Scalar renders int, float, bool and string values as text. Null and
// containers report false.
func (v Value) Scalar() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindInt:
		return strconv.FormatInt(v.i, 10), true
	case KindFloat:
		if math.IsNaN(v.f) {
			return "", false
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}
