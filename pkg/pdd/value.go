package pdd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind tags the representation held by a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindObject
	KindUint
)

// Value is a single request parameter.
type Value struct {
	kind Kind
	s    string
	i    int64
	u    uint64
	f    float64
	b    bool
	obj  any
}

// Params holds caller supplied business parameters.
type Params map[string]Value

func String(s string) Value    { return Value{kind: KindString, s: s} }
func Int(i int64) Value        { return Value{kind: KindInt, i: i} }
func Uint(u uint64) Value      { return Value{kind: KindUint, u: u} }
func Float(f float64) Value    { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value        { return Value{kind: KindBool, b: b} }
func Object(v any) Value       { return Value{kind: KindObject, obj: v} }
func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsObject() bool { return v.kind == KindObject }

// ValueOf maps a decoded YAML/JSON value onto the matching Value kind.
// Anything that is not a scalar becomes a structured value.
func ValueOf(raw any) Value {
	switch x := raw.(type) {
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint64:
		if x <= math.MaxInt64 {
			return Int(int64(x))
		}
		return Uint(x)
	case uint:
		return ValueOf(uint64(x))
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i)
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return Uint(u)
		}
		if f, err := x.Float64(); err == nil {
			return Float(f)
		}
		return String(x.String())
	default:
		return Object(x)
	}
}

// ParamsOf converts a generic map, as produced by a YAML or JSON decoder.
func ParamsOf(m map[string]any) Params {
	out := make(Params, len(m))
	for k, raw := range m {
		out[k] = ValueOf(raw)
	}
	return out
}

// Canonical returns the string form used both for signing and for form
// encoded bodies. Structured values are rendered as compact JSON without
// HTML escaping.
func (v Value) Canonical() (string, error) {
	switch v.kind {
	case KindString:
		return v.s, nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindUint:
		return strconv.FormatUint(v.u, 10), nil
	case KindFloat:
		return formatFloat(v.f)
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindObject:
		return marshalCompact(v.obj)
	default:
		return "", fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// MarshalJSON keeps scalars in their native JSON type. Numbers are written
// with the same digits Canonical signs.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindUint:
		return []byte(strconv.FormatUint(v.u, 10)), nil
	case KindFloat:
		s, err := formatFloat(v.f)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case KindBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.obj)
	}
}

// serialized returns v with structured values replaced by their JSON string.
func (v Value) serialized() (Value, error) {
	if v.kind != KindObject {
		return v, nil
	}
	s, err := marshalCompact(v.obj)
	if err != nil {
		return Value{}, err
	}
	return String(s), nil
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported float value %v", f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func marshalCompact(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
