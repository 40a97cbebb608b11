package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/placegen/placegen/pkg/placeholder"
	"github.com/placegen/placegen/pkg/value"
)

// substituteJSON rewrites a JSON document, preserving host types: a string
// leaf that is exactly one placeholder takes the type of its resolved value,
// while a leaf mixing placeholders with literal text stays a string.
func (e *Engine) substituteJSON(ctx context.Context, doc string, opts Options) (string, error) {
	root, err := value.Decode(doc)
	if err != nil {
		return "", fmt.Errorf("parse json document: %w", err)
	}
	out, err := e.walk(ctx, root, "$", opts)
	if err != nil {
		return "", err
	}
	return value.Encode(out), nil
}

// walk substitutes recursively. Only string leaves can carry placeholders;
// numbers, booleans, and null pass through untouched.
func (e *Engine) walk(ctx context.Context, v value.Value, path string, opts Options) (value.Value, error) {
	switch t := v.(type) {
	case value.Array:
		out := make(value.Array, len(t))
		for i, el := range t {
			sub, err := e.walk(ctx, el, fmt.Sprintf("%s[%d]", path, i), opts)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	case value.Object:
		out := make(value.Object, len(t))
		for i, m := range t {
			sub, err := e.walk(ctx, m.Val, path+"."+m.Key, opts)
			if err != nil {
				return nil, err
			}
			out[i] = value.Member{Key: m.Key, Val: sub}
		}
		return out, nil
	case value.String:
		return e.substituteLeaf(ctx, string(t), path, opts)
	default:
		return v, nil
	}
}

// substituteLeaf applies the dual-path replacement rule to one string leaf.
//
// A pure leaf (the trimmed string is exactly one token) resolves to its
// typed value, which is how "{{gen:number:42}}" becomes the JSON number 42.
// Anything else collapses to a string via the iterative loop. A pure leaf
// whose token nests further tokens goes through the loop too, but the final
// resolution of the outermost token is kept in typed form.
func (e *Engine) substituteLeaf(ctx context.Context, s, path string, opts Options) (value.Value, error) {
	tokens := placeholder.Find(s)
	if len(tokens) == 0 {
		return value.String(s), nil
	}

	pure := placeholder.IsPlaceholder(s)

	if pure && len(tokens) == 1 {
		v, resolved, err := e.resolvePlaceholder(ctx, tokens[0], opts)
		if err != nil {
			return nil, &SubstituteError{Token: tokens[0], Path: path, Err: err}
		}
		if !resolved {
			return value.String(s), nil
		}
		return v, nil
	}

	cur, outerTyped, err := e.iterate(ctx, s, path, pure, opts)
	if err != nil {
		return nil, err
	}

	if pure {
		if outerTyped != nil {
			return outerTyped, nil
		}
		// The loop may have run out of passes while the leaf was still a
		// lone placeholder; one final resolution recovers the typed value.
		if trimmed := strings.TrimSpace(cur); placeholder.IsPlaceholder(trimmed) {
			if toks := placeholder.Find(trimmed); len(toks) == 1 && toks[0] == trimmed {
				v, resolved, err := e.resolvePlaceholder(ctx, trimmed, opts)
				if err != nil {
					return nil, &SubstituteError{Token: trimmed, Path: path, Err: err}
				}
				if resolved {
					return v, nil
				}
			}
		}
	}

	return value.String(cur), nil
}

// iterate replaces placeholders in s to a fixed point, bounded by
// Options.MaxPasses. Each pass resolves only the currently innermost tokens
// so that an outer token whose arguments are themselves placeholders is
// re-parsed after its inner tokens have been substituted. Replacement uses
// the stringified value; when pure is set and the whole working string is
// one token, its typed resolution is additionally returned.
func (e *Engine) iterate(ctx context.Context, s, path string, pure bool, opts Options) (string, value.Value, error) {
	cur := s
	var outerTyped value.Value

	for pass := 0; pass < opts.maxPasses(); pass++ {
		tokens := placeholder.Find(cur)
		if len(tokens) == 0 {
			break
		}

		changed := false
		for _, tok := range placeholder.Innermost(tokens) {
			v, resolved, err := e.resolvePlaceholder(ctx, tok, opts)
			if err != nil {
				return "", nil, &SubstituteError{Token: tok, Path: path, Err: err}
			}
			if !resolved {
				continue
			}
			if pure && strings.TrimSpace(cur) == tok {
				outerTyped = v
			}
			next := strings.ReplaceAll(cur, tok, v.Text())
			if next != cur {
				cur = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return cur, outerTyped, nil
}

// substituteText rewrites a plain-text document. Without a document tree
// there are no host types to preserve, so every placeholder is replaced by
// the string form of its resolved value.
func (e *Engine) substituteText(ctx context.Context, input string, opts Options) (string, error) {
	out, _, err := e.iterate(ctx, input, "", false, opts)
	return out, err
}
