// Package engine is the placeholder substitution engine. It ties the token
// grammar (pkg/placeholder), the plugin/transform registry (pkg/plugin), and
// the typed value model (pkg/value) into document processing: JSON documents
// are rewritten with type preservation, plain text with string substitution.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/placegen/placegen/pkg/logging"
	"github.com/placegen/placegen/pkg/plugin"
)

// Format selects how Process interprets its input.
type Format string

// Supported input formats. FormatXML is reserved and always fails.
const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatXML  Format = "xml"
)

// DefaultMaxPasses caps the fixed-point substitution loop for string leaves
// whose placeholders produce further placeholders.
const DefaultMaxPasses = 10

// Options control one Process call.
type Options struct {
	// Format is the input grammar. Defaults to FormatJSON.
	Format Format

	// IncludePlugins, when non-nil, restricts resolution to the named
	// modules; tokens of other modules stay verbatim in the output. Checked
	// before ExcludePlugins.
	IncludePlugins []string

	// ExcludePlugins suppresses resolution of the named modules; their
	// tokens stay verbatim. A module in both lists ends up excluded.
	ExcludePlugins []string

	// Context is the opaque data bag handed to plugins. May be nil.
	Context *plugin.Context

	// MaxPasses bounds the iterative substitution loop. Zero means
	// DefaultMaxPasses. Exceeding the bound stops substitution and keeps
	// the best-effort result; it is not an error.
	MaxPasses int
}

func (o Options) format() Format {
	if o.Format == "" {
		return FormatJSON
	}
	return o.Format
}

func (o Options) maxPasses() int {
	if o.MaxPasses <= 0 {
		return DefaultMaxPasses
	}
	return o.MaxPasses
}

// moduleEnabled applies the include/exclude filter. A skipped module's
// tokens are left verbatim for a later processing phase; skipping is never
// an error.
func (o Options) moduleEnabled(module string) bool {
	if o.IncludePlugins != nil && !contains(o.IncludePlugins, module) {
		return false
	}
	return !contains(o.ExcludePlugins, module)
}

func contains(list []string, s string) bool {
	for _, el := range list {
		if el == s {
			return true
		}
	}
	return false
}

// Engine processes documents against one registry of plugins and
// transforms. An Engine is safe for concurrent use once its registrations
// are done.
type Engine struct {
	registry *plugin.Registry
	log      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry uses an existing registry instead of a fresh empty one.
func WithRegistry(reg *plugin.Registry) Option {
	return func(e *Engine) { e.registry = reg }
}

// WithLogger sets the engine's logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine with an empty registry.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: plugin.NewRegistry(),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's registry for registration and inspection.
func (e *Engine) Registry() *plugin.Registry { return e.registry }

// RegisterPlugin binds a plugin on the engine's registry.
func (e *Engine) RegisterPlugin(p plugin.Plugin) error {
	return e.registry.RegisterPlugin(p)
}

// RegisterTransform binds a transform on the engine's registry.
func (e *Engine) RegisterTransform(t plugin.Transform) error {
	return e.registry.RegisterTransform(t)
}

// Process substitutes all enabled placeholders in input and returns the
// rewritten document. JSON input must be a syntactically valid document;
// the output is a document of the same grammar. A single failing
// placeholder fails the whole call; there is no partial-result mode.
func (e *Engine) Process(ctx context.Context, input string, opts Options) (string, error) {
	switch opts.format() {
	case FormatJSON:
		return e.substituteJSON(ctx, input, opts)
	case FormatText:
		return e.substituteText(ctx, input, opts)
	case FormatXML:
		return "", fmt.Errorf("xml format: %w", ErrUnimplemented)
	default:
		return "", fmt.Errorf("unknown format %q", opts.Format)
	}
}

// ProcessPhased runs generate-mode processing restricted to the first
// module set, then to the second, and then hands the two results to compare
// mode. Compare mode is not implemented, so the call always fails after
// performing both generate phases.
func (e *Engine) ProcessPhased(ctx context.Context, input string, first, second []string, opts Options) (string, error) {
	phase1 := opts
	phase1.IncludePlugins = first
	out, err := e.Process(ctx, input, phase1)
	if err != nil {
		return "", fmt.Errorf("phase 1: %w", err)
	}

	phase2 := opts
	phase2.IncludePlugins = second
	if _, err := e.Process(ctx, out, phase2); err != nil {
		return "", fmt.Errorf("phase 2: %w", err)
	}

	return "", fmt.Errorf("compare mode: %w", ErrUnimplemented)
}
