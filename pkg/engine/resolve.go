package engine

import (
	"context"
	"fmt"

	"github.com/placegen/placegen/pkg/placeholder"
	"github.com/placegen/placegen/pkg/value"
)

// resolvePlaceholder runs one token through the full resolution pipeline:
// parse, include/exclude filter, plugin lookup and resolve, transform chain.
// resolved=false with a nil error means the token's module is filtered out
// and the literal token must stay in the document.
func (e *Engine) resolvePlaceholder(ctx context.Context, token string, opts Options) (v value.Value, resolved bool, err error) {
	ph, err := placeholder.Parse(token)
	if err != nil {
		return nil, false, err
	}

	if !opts.moduleEnabled(ph.Module) {
		e.log.Debug("module filtered, token left verbatim",
			"module", ph.Module, "token", token)
		return nil, false, nil
	}

	p, err := e.registry.Plugin(ph.Module)
	if err != nil {
		return nil, false, err
	}

	v, err = p.Resolve(ctx, ph, opts.Context)
	if err != nil {
		return nil, false, fmt.Errorf("plugin %s:%s: %w", ph.Module, ph.Action, err)
	}

	for _, spec := range ph.Transforms {
		t, err := e.registry.Transform(spec.Name)
		if err != nil {
			return nil, false, err
		}
		v, err = t.Apply(v, spec.Params)
		if err != nil {
			return nil, false, fmt.Errorf("transform %q: %w", spec.Name, err)
		}
	}

	e.log.Debug("token resolved", "token", token, "kind", v.Kind())
	return v, true, nil
}
