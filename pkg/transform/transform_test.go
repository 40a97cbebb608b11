package transform

import (
	"testing"

	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/value"
)

func mustTransform(t *testing.T, name string) plugin.Transform {
	t.Helper()
	reg := plugin.NewRegistry()
	if err := RegisterStandard(reg); err != nil {
		t.Fatalf("RegisterStandard() error = %v", err)
	}
	tr, err := reg.Transform(name)
	if err != nil {
		t.Fatalf("Transform(%s) error = %v", name, err)
	}
	return tr
}

func TestToNumber(t *testing.T) {
	tr := mustTransform(t, "toNumber")

	tests := []struct {
		name string
		in   value.Value
		want float64
	}{
		{"numeric string", value.String("42"), 42},
		{"float string", value.String(" 1.5 "), 1.5},
		{"number passthrough", value.Num(7), 7},
		{"bool true", value.Bool(true), 1},
		{"bool false", value.Bool(false), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Apply(tt.in, nil)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			n, ok := got.(value.Number)
			if !ok || n.Float64() != tt.want {
				t.Errorf("Apply() = %v, want number %v", got, tt.want)
			}
		})
	}

	for _, in := range []value.Value{
		value.String("abc"),
		value.Null{},
		value.Array{},
		value.Object{},
	} {
		if _, err := tr.Apply(in, nil); err == nil {
			t.Errorf("Apply(%v) expected error", in)
		}
	}
}

func TestToString(t *testing.T) {
	tr := mustTransform(t, "toString")

	tests := []struct {
		in   value.Value
		want string
	}{
		{value.Num(42), "42"},
		{value.Bool(true), "true"},
		{value.String("x"), "x"},
		{value.Null{}, "null"},
		{value.Array{value.Num(1)}, "[1]"},
		{value.Object{{Key: "a", Val: value.Num(1)}}, `{"a":1}`},
	}
	for _, tt := range tests {
		got, err := tr.Apply(tt.in, nil)
		if err != nil {
			t.Fatalf("Apply(%v) error = %v", tt.in, err)
		}
		if s, ok := got.(value.String); !ok || string(s) != tt.want {
			t.Errorf("Apply(%v) = %v, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToBoolean(t *testing.T) {
	tr := mustTransform(t, "toBoolean")

	tests := []struct {
		name string
		in   value.Value
		want bool
	}{
		{"word true", value.String("true"), true},
		{"word yes", value.String("YES"), true},
		{"word on", value.String("on"), true},
		{"word y", value.String("y"), true},
		{"digit one", value.String("1"), true},
		{"word false", value.String("False"), false},
		{"word no", value.String("no"), false},
		{"word off", value.String("off"), false},
		{"word n", value.String("n"), false},
		{"digit zero", value.String("0"), false},
		{"empty string", value.String(""), false},
		{"numeric string nonzero", value.String("2.5"), true},
		{"other string truthy", value.String("banana"), true},
		{"number zero", value.Num(0), false},
		{"number nonzero", value.Num(-3), true},
		{"null", value.Null{}, false},
		{"bool passthrough", value.Bool(true), true},
		{"empty array", value.Array{}, false},
		{"nonempty object", value.Object{{Key: "a", Val: value.Null{}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Apply(tt.in, nil)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if b, ok := got.(value.Bool); !ok || bool(b) != tt.want {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCaseAndTrim(t *testing.T) {
	if got, _ := mustTransform(t, "upper").Apply(value.String("abc"), nil); got.Text() != "ABC" {
		t.Errorf("upper = %q", got.Text())
	}
	if got, _ := mustTransform(t, "lower").Apply(value.String("AbC"), nil); got.Text() != "abc" {
		t.Errorf("lower = %q", got.Text())
	}
	if got, _ := mustTransform(t, "trim").Apply(value.String("  x  "), nil); got.Text() != "x" {
		t.Errorf("trim = %q", got.Text())
	}
	// Non-strings are stringified first.
	if got, _ := mustTransform(t, "upper").Apply(value.Bool(true), nil); got.Text() != "TRUE" {
		t.Errorf("upper(bool) = %q", got.Text())
	}
}

func TestDefault(t *testing.T) {
	tr := mustTransform(t, "default")

	if got, _ := tr.Apply(value.String(""), []string{"fallback"}); got.Text() != "fallback" {
		t.Errorf("default on empty = %q", got.Text())
	}
	if got, _ := tr.Apply(value.Null{}, []string{"fallback"}); got.Text() != "fallback" {
		t.Errorf("default on null = %q", got.Text())
	}
	if got, _ := tr.Apply(value.String("set"), []string{"fallback"}); got.Text() != "set" {
		t.Errorf("default on non-empty = %q", got.Text())
	}
	if got, _ := tr.Apply(value.Num(0), []string{"fallback"}); got.Text() != "0" {
		t.Errorf("default on number = %q", got.Text())
	}
	if _, err := tr.Apply(value.String(""), nil); err == nil {
		t.Error("default without params expected error")
	}
}
