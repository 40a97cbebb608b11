// Package value defines the typed values exchanged between plugins,
// transforms, and the substitution engine.
//
// Value is a closed union over the JSON value space. Substitution works on
// Value trees rather than raw interface{} so that every plugin and transform
// boundary can be matched exhaustively, and so that object key order and
// number literals survive a decode/encode round trip.
package value

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the runtime shape of a Value.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// String returns the kind name as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON-shaped value. The concrete types are Null, String, Number,
// Bool, Array, and Object; no other implementations exist.
type Value interface {
	// Kind reports the runtime shape.
	Kind() Kind

	// Text returns the string form used when a value is interpolated into
	// surrounding literal text. Objects and arrays render as compact JSON.
	Text() string

	// Interface returns the plain Go representation (map[string]any for
	// objects, []any for arrays, float64 for numbers). Object key order is
	// not preserved; use this only for interop with libraries that take
	// interface{} trees.
	Interface() any

	sealed()
}

// Null is the JSON null value.
type Null struct{}

func (Null) Kind() Kind     { return KindNull }
func (Null) Text() string   { return "null" }
func (Null) Interface() any { return nil }
func (Null) sealed() {}

// String is a string value.
type String string

func (String) Kind() Kind       { return KindString }
func (s String) Text() string   { return string(s) }
func (s String) Interface() any { return string(s) }
func (String) sealed()          {}

// Number is a numeric value. When decoded from a document it remembers the
// original literal so that encoding does not reformat it.
type Number struct {
	lit string
	f   float64
}

// Num returns a Number for the given float.
func Num(f float64) Number { return Number{f: f} }

// NumFromLiteral parses a JSON number literal into a Number, keeping the
// literal for re-encoding.
func NumFromLiteral(lit string) (Number, error) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Number{}, fmt.Errorf("not a number: %q", lit)
	}
	return Number{lit: lit, f: f}, nil
}

// Float64 returns the numeric value.
func (n Number) Float64() float64 { return n.f }

func (Number) Kind() Kind { return KindNumber }

func (n Number) Text() string {
	if n.lit != "" {
		return n.lit
	}
	return strconv.FormatFloat(n.f, 'f', -1, 64)
}

func (n Number) Interface() any { return n.f }
func (Number) sealed()          {}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

func (b Bool) Text() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) Interface() any { return bool(b) }
func (Bool) sealed()          {}

// Array is an ordered sequence of values.
type Array []Value

func (Array) Kind() Kind     { return KindArray }
func (a Array) Text() string { return Encode(a) }

func (a Array) Interface() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.Interface()
	}
	return out
}

func (Array) sealed() {}

// Member is one key/value pair of an Object.
type Member struct {
	Key string
	Val Value
}

// Object is an ordered set of key/value members. Order is the order of
// appearance in the source document and is preserved through encoding.
type Object []Member

func (Object) Kind() Kind     { return KindObject }
func (o Object) Text() string { return Encode(o) }

// Get returns the value for key, or (nil, false) when absent.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Val, true
		}
	}
	return nil, false
}

func (o Object) Interface() any {
	out := make(map[string]any, len(o))
	for _, m := range o {
		out[m.Key] = m.Val.Interface()
	}
	return out
}

func (Object) sealed() {}

// FromInterface converts a plain Go value (as produced by encoding/json,
// YAML decoding, expression evaluators, and similar) into a Value. Map keys
// are ordered lexically since the source carries no order.
func FromInterface(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Num(t), nil
	case float32:
		return Num(float64(t)), nil
	case int:
		return Num(float64(t)), nil
	case int32:
		return Num(float64(t)), nil
	case int64:
		return Num(float64(t)), nil
	case uint64:
		return Num(float64(t)), nil
	case []any:
		arr := make(Array, len(t))
		for i, el := range t {
			ev, err := FromInterface(el)
			if err != nil {
				return nil, err
			}
			arr[i] = ev
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(Object, 0, len(t))
		for _, k := range keys {
			ev, err := FromInterface(t[k])
			if err != nil {
				return nil, err
			}
			obj = append(obj, Member{Key: k, Val: ev})
		}
		return obj, nil
	case Value:
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
