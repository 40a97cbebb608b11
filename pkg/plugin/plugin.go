// Package plugin defines the contracts between the substitution engine and
// its value-producing plugins and value transforms, the registry that binds
// names to implementations, and the processing context handed through to
// plugins.
package plugin

import (
	"context"

	"github.com/placegen/placegen/pkg/placeholder"
	"github.com/placegen/placegen/pkg/value"
)

// Plugin resolves placeholder tokens addressed to one module name.
// Implementations must be safe for concurrent use: the engine may resolve
// independent document leaves in parallel.
type Plugin interface {
	// Name is the module name tokens use to address this plugin. Unique
	// within a registry.
	Name() string

	// Resolve produces the typed value for one parsed token. The passed
	// context carries cancellation for plugins that sleep or do I/O; pctx is
	// the caller-supplied data bag and may be nil.
	Resolve(ctx context.Context, ph *placeholder.Parsed, pctx *Context) (value.Value, error)
}

// Transform is a pure post-resolution value coercion, chained via | in the
// token grammar.
type Transform interface {
	// Name is the transform name tokens use, unique within a registry.
	Name() string

	// Apply coerces v. Params are the colon-separated parameters from the
	// transform spec, possibly empty.
	Apply(v value.Value, params []string) (value.Value, error)
}

// Func adapts a function to the Plugin interface for small or test plugins.
type Func struct {
	PluginName string
	ResolveFn  func(ctx context.Context, ph *placeholder.Parsed, pctx *Context) (value.Value, error)
}

// Name implements Plugin.
func (f Func) Name() string { return f.PluginName }

// Resolve implements Plugin.
func (f Func) Resolve(ctx context.Context, ph *placeholder.Parsed, pctx *Context) (value.Value, error) {
	return f.ResolveFn(ctx, ph, pctx)
}

// TransformFunc adapts a function to the Transform interface.
type TransformFunc struct {
	TransformName string
	ApplyFn       func(v value.Value, params []string) (value.Value, error)
}

// Name implements Transform.
func (f TransformFunc) Name() string { return f.TransformName }

// Apply implements Transform.
func (f TransformFunc) Apply(v value.Value, params []string) (value.Value, error) {
	return f.ApplyFn(v, params)
}
