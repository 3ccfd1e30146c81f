package raw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// UnmarshalJSON decodes any JSON value into the matching variant. Numbers
// without a fraction or exponent that fit in int64 become Int, all other
// numbers become Float.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var native interface{}
	if err := dec.Decode(&native); err != nil {
		return fmt.Errorf("decode raw value: %w", err)
	}

	out, err := FromNative(native)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// FromNative converts the output of encoding/json (decoded with UseNumber
// or not) into a Value.
func FromNative(native interface{}) (Value, error) {
	switch t := native.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return fromNumber(t)
	case float64:
		return Float(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case []interface{}:
		items := make([]Value, 0, len(t))
		for _, el := range t {
			item, err := FromNative(el)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return List(items...), nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for k, el := range t {
			item, err := FromNative(el)
			if err != nil {
				return Value{}, err
			}
			fields[k] = item
		}
		return Map(fields), nil
	default:
		return Value{}, fmt.Errorf("unsupported raw value type %T", native)
	}
}

func fromNumber(n json.Number) (Value, error) {
	text := n.String()
	if !strings.ContainsAny(text, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("decode number %q: %w", text, err)
	}
	return Float(f), nil
}

// MarshalJSON writes the value back as plain JSON. NaN and infinities have
// no JSON form and are written as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.f)
	case KindString:
		return json.Marshal(v.s)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.l == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.l)
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			vb, err := v.m[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown raw kind %d", v.kind)
	}
}
