// Package placeholder implements the {{module:action:args|transforms}} token
// grammar: discovery of balanced tokens in arbitrary text, and parsing of a
// single token into its structured parts.
package placeholder

import (
	"regexp"
	"strings"
)

// placeholderRegex matches a string that is, in its entirety, one {{...}}
// span. (?s) lets a token span multiple lines.
var placeholderRegex = regexp.MustCompile(`(?s)^\{\{.+\}\}$`)

// IsPlaceholder reports whether the trimmed text is exactly one {{...}} span
// with no surrounding literal text.
func IsPlaceholder(text string) bool {
	return placeholderRegex.MatchString(strings.TrimSpace(text))
}

// Find returns all complete placeholder tokens in text, including tokens
// nested inside other tokens' argument regions. Duplicate token strings are
// collapsed to a single entry; order follows discovery (outer before inner).
//
// An opening {{ that never closes is silently dropped: no token is emitted
// for the unterminated span. Lone { and } characters are ordinary content.
func Find(text string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	collect(text, seen, &tokens)
	return tokens
}

func collect(text string, seen map[string]struct{}, out *[]string) {
	depth := 0
	start := -1

	for i := 0; i+1 < len(text); i++ {
		switch {
		case text[i] == '{' && text[i+1] == '{':
			if depth == 0 {
				start = i
			}
			depth++
			i++
		case text[i] == '}' && text[i+1] == '}':
			if depth == 0 {
				continue
			}
			depth--
			i++
			if depth == 0 {
				token := text[start : i+1]
				if _, dup := seen[token]; !dup {
					seen[token] = struct{}{}
					*out = append(*out, token)
				}
				// The token's interior may hold complete nested tokens;
				// they must be discoverable independently of the outer one.
				collect(token[2:len(token)-2], seen, out)
				start = -1
			}
		}
	}
}

// Innermost filters tokens down to those that do not contain any other token
// from the same set as a substring. These are safe to resolve first: their
// replacement does not depend on another pending token.
func Innermost(tokens []string) []string {
	var inner []string
	for _, tok := range tokens {
		contains := false
		for _, other := range tokens {
			if other != tok && strings.Contains(tok[2:len(tok)-2], other) {
				contains = true
				break
			}
		}
		if !contains {
			inner = append(inner, tok)
		}
	}
	return inner
}
