// Package transform provides the standard value transforms chained onto
// placeholders via |, e.g. {{gen:string:42|toNumber}}.
package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/value"
)

// RegisterStandard registers the built-in transforms on reg.
func RegisterStandard(reg *plugin.Registry) error {
	standard := []plugin.Transform{
		toNumber{},
		toString{},
		toBoolean{},
		simple{name: "upper", fn: strings.ToUpper},
		simple{name: "lower", fn: strings.ToLower},
		simple{name: "trim", fn: strings.TrimSpace},
		defaultTransform{},
	}
	for _, t := range standard {
		if err := reg.RegisterTransform(t); err != nil {
			return err
		}
	}
	return nil
}

// toNumber coerces strings and booleans to numbers. Null, objects, arrays,
// and non-numeric strings are rejected.
type toNumber struct{}

func (toNumber) Name() string { return "toNumber" }

func (toNumber) Apply(v value.Value, _ []string) (value.Value, error) {
	switch t := v.(type) {
	case value.Number:
		return t, nil
	case value.String:
		n, err := value.NumFromLiteral(strings.TrimSpace(string(t)))
		if err != nil {
			return nil, fmt.Errorf("toNumber: %w", err)
		}
		return n, nil
	case value.Bool:
		if t {
			return value.Num(1), nil
		}
		return value.Num(0), nil
	default:
		return nil, fmt.Errorf("toNumber: cannot convert %s", v.Kind())
	}
}

// toString coerces any value to its string form. Objects and arrays render
// as their canonical JSON serialization.
type toString struct{}

func (toString) Name() string { return "toString" }

func (toString) Apply(v value.Value, _ []string) (value.Value, error) {
	return value.String(v.Text()), nil
}

// toBoolean coerces values to booleans: the words true/yes/1/on/y and
// false/no/0/off/n (case-insensitive) plus the empty string map to their
// boolean; numeric strings and numbers map zero to false; everything else
// follows generic truthiness (null false, non-empty values true).
type toBoolean struct{}

func (toBoolean) Name() string { return "toBoolean" }

func (toBoolean) Apply(v value.Value, _ []string) (value.Value, error) {
	switch t := v.(type) {
	case value.Bool:
		return t, nil
	case value.Number:
		return value.Bool(t.Float64() != 0), nil
	case value.Null:
		return value.Bool(false), nil
	case value.String:
		s := strings.ToLower(strings.TrimSpace(string(t)))
		switch s {
		case "true", "yes", "1", "on", "y":
			return value.Bool(true), nil
		case "false", "no", "0", "off", "n", "":
			return value.Bool(false), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return value.Bool(f != 0), nil
		}
		return value.Bool(true), nil
	case value.Array:
		return value.Bool(len(t) > 0), nil
	case value.Object:
		return value.Bool(len(t) > 0), nil
	default:
		return nil, fmt.Errorf("toBoolean: cannot convert %s", v.Kind())
	}
}

// simple is a string-in string-out transform like upper or lower. Non-string
// inputs are stringified first.
type simple struct {
	name string
	fn   func(string) string
}

func (s simple) Name() string { return s.name }

func (s simple) Apply(v value.Value, _ []string) (value.Value, error) {
	return value.String(s.fn(v.Text())), nil
}

// defaultTransform substitutes its first parameter when the value is empty
// (empty string or null).
type defaultTransform struct{}

func (defaultTransform) Name() string { return "default" }

func (defaultTransform) Apply(v value.Value, params []string) (value.Value, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("default: missing fallback parameter")
	}
	switch t := v.(type) {
	case value.Null:
		return value.String(params[0]), nil
	case value.String:
		if t == "" {
			return value.String(params[0]), nil
		}
	}
	return v, nil
}
