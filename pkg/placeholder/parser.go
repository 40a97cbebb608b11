package placeholder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed reports a token that does not match the placeholder grammar.
var ErrMalformed = errors.New("malformed placeholder")

// TransformSpec is one element of a token's transform chain, e.g.
// "toNumber" or "round:2".
type TransformSpec struct {
	Name   string
	Params []string
}

// Parsed is the structured form of one placeholder token.
type Parsed struct {
	// Original is the exact token text including the outer braces.
	Original string

	// Module addresses the plugin that resolves the token.
	Module string

	// Action is the operation requested within the module.
	Action string

	// Args are the remaining colon-separated segments of the main part, in
	// order. Their count and meaning are validated by the plugin, not here.
	Args []string

	// Transforms is the pipe-separated transform chain in declared order.
	Transforms []TransformSpec
}

// Parse splits one placeholder token into module, action, args, and
// transform chain. It fails with ErrMalformed when the text is not a single
// complete token or the main part has fewer than two colon segments.
func Parse(token string) (*Parsed, error) {
	trimmed := strings.TrimSpace(token)
	if !IsPlaceholder(trimmed) {
		return nil, fmt.Errorf("%w: %q is not a {{...}} token", ErrMalformed, token)
	}

	interior := trimmed[2 : len(trimmed)-2]

	// Pipes split transforms off the main part. A pipe inside a nested
	// {{...}} span belongs to the inner token and must not split here.
	parts := splitTop(interior, '|', false)

	segments := splitTop(parts[0], ':', true)
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: %q needs at least module and action", ErrMalformed, token)
	}

	p := &Parsed{
		Original: trimmed,
		Module:   strings.TrimSpace(segments[0]),
		Action:   strings.TrimSpace(segments[1]),
	}
	if p.Module == "" || p.Action == "" {
		return nil, fmt.Errorf("%w: %q has an empty module or action", ErrMalformed, token)
	}
	for _, arg := range segments[2:] {
		p.Args = append(p.Args, strings.TrimSpace(arg))
	}

	for _, spec := range parts[1:] {
		segs := strings.Split(spec, ":")
		name := strings.TrimSpace(segs[0])
		if name == "" {
			return nil, fmt.Errorf("%w: %q has an empty transform name", ErrMalformed, token)
		}
		ts := TransformSpec{Name: name}
		for _, param := range segs[1:] {
			ts.Params = append(ts.Params, strings.TrimSpace(param))
		}
		p.Transforms = append(p.Transforms, ts)
	}

	return p, nil
}

// splitTop splits s on sep at brace nesting depth 0. Separators inside
// nested {{...}} spans are part of the segment. When unescape is true, the
// sequence \<sep> is un-escaped to a literal <sep> and does not split.
func splitTop(s string, sep byte, unescape bool) []string {
	var parts []string
	var current strings.Builder
	depth := 0

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case unescape && ch == '\\' && i+1 < len(s) && s[i+1] == sep:
			current.WriteByte(sep)
			i++
		case ch == '{' && i+1 < len(s) && s[i+1] == '{':
			depth++
			current.WriteString("{{")
			i++
		case ch == '}' && i+1 < len(s) && s[i+1] == '}' && depth > 0:
			depth--
			current.WriteString("}}")
			i++
		case ch == sep && depth == 0:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	parts = append(parts, current.String())
	return parts
}
