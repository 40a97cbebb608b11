package value

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Encode serializes a Value tree to compact JSON, emitting object members in
// their stored order. Strings are not HTML-escaped.
func Encode(v Value) string {
	var sb strings.Builder
	encodeTo(&sb, v)
	return sb.String()
}

func encodeTo(sb *strings.Builder, v Value) {
	switch t := v.(type) {
	case nil, Null:
		sb.WriteString("null")
	case String:
		sb.WriteString(quote(string(t)))
	case Number:
		sb.WriteString(t.Text())
	case Bool:
		sb.WriteString(t.Text())
	case Array:
		sb.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			encodeTo(sb, el)
		}
		sb.WriteByte(']')
	case Object:
		sb.WriteByte('{')
		for i, m := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quote(m.Key))
			sb.WriteByte(':')
			encodeTo(sb, m.Val)
		}
		sb.WriteByte('}')
	}
}

// quote JSON-quotes s without escaping <, >, and &.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimRight(buf.String(), "\n")
}
