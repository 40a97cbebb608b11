package plugin

import (
	"sort"
	"time"

	"github.com/placegen/placegen/pkg/value"
)

// Context keys the engine's standard plugins recognize. All other keys are
// opaque to the core and interpreted only by whichever plugin reads them.
const (
	// KeyBaseTime anchors time calculations. Accepted as an RFC3339 string
	// or a unix timestamp number (seconds, or milliseconds when >= 1e12).
	KeyBaseTime = "baseTime"

	// KeyTimezone is an IANA timezone name used when formatting times.
	KeyTimezone = "timezone"
)

// Context is the caller-supplied data bag passed untouched to plugins. The
// engine never interprets its contents. Values are typed so that a plugin
// returning a context entry can preserve its shape in the output document.
//
// A Context is populated before processing starts and read-only afterwards;
// all accessors tolerate a nil receiver.
type Context struct {
	values map[string]value.Value
}

// NewContext creates an empty processing context.
func NewContext() *Context {
	return &Context{values: make(map[string]value.Value)}
}

// ContextFromMap builds a context from plain Go values, e.g. a decoded YAML
// or JSON mapping.
func ContextFromMap(m map[string]any) (*Context, error) {
	c := NewContext()
	for k, v := range m {
		tv, err := value.FromInterface(v)
		if err != nil {
			return nil, err
		}
		c.values[k] = tv
	}
	return c, nil
}

// Set stores a typed value under key, replacing any previous entry.
func (c *Context) Set(key string, v value.Value) {
	c.values[key] = v
}

// SetString stores a string value under key.
func (c *Context) SetString(key, s string) {
	c.values[key] = value.String(s)
}

// SetNumber stores a numeric value under key.
func (c *Context) SetNumber(key string, f float64) {
	c.values[key] = value.Num(f)
}

// Get returns the value stored under key.
func (c *Context) Get(key string) (value.Value, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the stored keys, sorted.
func (c *Context) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface returns a plain-Go snapshot of the context, for handing to
// expression evaluators and JSONPath libraries.
func (c *Context) Interface() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v.Interface()
	}
	return out
}

// BaseTime returns the time anchor stored under KeyBaseTime. It accepts an
// RFC3339 string or a unix timestamp number; values >= 1e12 are read as
// milliseconds. Returns ok=false when the key is absent or unparseable.
func (c *Context) BaseTime() (time.Time, bool) {
	v, ok := c.Get(KeyBaseTime)
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case value.String:
		ts, err := time.Parse(time.RFC3339, string(t))
		if err != nil {
			return time.Time{}, false
		}
		return ts, true
	case value.Number:
		f := t.Float64()
		if f >= 1e12 {
			return time.UnixMilli(int64(f)), true
		}
		return time.Unix(int64(f), 0), true
	default:
		return time.Time{}, false
	}
}

// Location returns the timezone stored under KeyTimezone, or time.UTC when
// the key is absent or does not name a loadable location.
func (c *Context) Location() *time.Location {
	v, ok := c.Get(KeyTimezone)
	if !ok {
		return time.UTC
	}
	name, isStr := v.(value.String)
	if !isStr {
		return time.UTC
	}
	loc, err := time.LoadLocation(string(name))
	if err != nil {
		return time.UTC
	}
	return loc
}
