// Package exprval implements the "expr" module: expression evaluation over
// the processing context via expr-lang.
//
//	{{expr:eval:price * quantity}}
//	{{expr:eval:count > 10 ? "many" \: "few"}}
//
// Context entries are in scope as variables. The result keeps its evaluated
// type, so a numeric expression in a pure placeholder yields a JSON number.
package exprval

import (
	"context"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/placegen/placegen/pkg/placeholder"
	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/value"
)

// ModuleName is the module name tokens use to address this plugin.
const ModuleName = "expr"

// Plugin is the expr module.
type Plugin struct{}

// New creates the expr plugin.
func New() *Plugin { return &Plugin{} }

// Name implements plugin.Plugin.
func (*Plugin) Name() string { return ModuleName }

// Resolve implements plugin.Plugin.
func (*Plugin) Resolve(_ context.Context, ph *placeholder.Parsed, pctx *plugin.Context) (value.Value, error) {
	if ph.Action != "eval" {
		return nil, fmt.Errorf("expr: unknown action %q", ph.Action)
	}
	if len(ph.Args) == 0 {
		return nil, fmt.Errorf("expr:eval: missing expression")
	}

	// The parser split the main part on unescaped colons; everything after
	// the action is the expression source. Colons inside the expression are
	// restored here, so `a ? b \: c` survives intact via the \: escape and
	// map literals like {a: 1} survive without any escaping.
	src := strings.Join(ph.Args, ":")

	out, err := expr.Eval(src, pctx.Interface())
	if err != nil {
		return nil, fmt.Errorf("expr:eval: %w", err)
	}
	v, err := value.FromInterface(out)
	if err != nil {
		return nil, fmt.Errorf("expr:eval: result: %w", err)
	}
	return v, nil
}
