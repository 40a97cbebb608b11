package engine

import (
	"errors"
	"fmt"
)

// ErrUnimplemented marks features the engine exposes but does not
// implement: the xml format and compare mode.
var ErrUnimplemented = errors.New("not implemented")

// SubstituteError wraps a failure during placeholder resolution with the
// offending token and, for JSON documents, the structural path at which it
// occurred.
type SubstituteError struct {
	// Token is the placeholder text that failed to resolve.
	Token string

	// Path locates the failing string leaf in dot/bracket notation rooted
	// at "$", e.g. "$.items[2].name". Empty for text-mode input.
	Path string

	// Err is the underlying parse, lookup, plugin, or transform failure.
	Err error
}

func (e *SubstituteError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("resolve %s at %s: %v", e.Token, e.Path, e.Err)
	}
	return fmt.Sprintf("resolve %s: %v", e.Token, e.Err)
}

func (e *SubstituteError) Unwrap() error { return e.Err }
