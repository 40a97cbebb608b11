// Package ctxval implements the "ctx" module: access to the caller-supplied
// processing context.
//
// Actions:
//
//	{{ctx:value:orderId}}            the context value, keeping its type
//	{{ctx:has:orderId}}              true/false (boolean)
//	{{ctx:jsonpath:order:$.items[0].sku}}  JSONPath into a context value
//
// ctx:value is the type-preserving bridge between caller data and the output
// document: an object stored under a key becomes a JSON object in the output
// when the placeholder stands alone in a string leaf.
package ctxval

import (
	"context"
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/placegen/placegen/pkg/placeholder"
	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/value"
)

// ModuleName is the module name tokens use to address this plugin.
const ModuleName = "ctx"

// Plugin is the ctx module.
type Plugin struct{}

// New creates the ctx plugin.
func New() *Plugin { return &Plugin{} }

// Name implements plugin.Plugin.
func (*Plugin) Name() string { return ModuleName }

// Resolve implements plugin.Plugin.
func (*Plugin) Resolve(_ context.Context, ph *placeholder.Parsed, pctx *plugin.Context) (value.Value, error) {
	switch ph.Action {
	case "value":
		if len(ph.Args) == 0 {
			return nil, fmt.Errorf("ctx:value: missing key argument")
		}
		v, ok := pctx.Get(ph.Args[0])
		if !ok {
			return nil, fmt.Errorf("ctx:value: no context entry %q", ph.Args[0])
		}
		return v, nil
	case "has":
		if len(ph.Args) == 0 {
			return nil, fmt.Errorf("ctx:has: missing key argument")
		}
		_, ok := pctx.Get(ph.Args[0])
		return value.Bool(ok), nil
	case "jsonpath":
		return resolveJSONPath(ph.Args, pctx)
	default:
		return nil, fmt.Errorf("ctx: unknown action %q", ph.Action)
	}
}

func resolveJSONPath(args []string, pctx *plugin.Context) (value.Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("ctx:jsonpath: needs a key and a path")
	}
	key, path := args[0], args[1]

	root, ok := pctx.Get(key)
	if !ok {
		return nil, fmt.Errorf("ctx:jsonpath: no context entry %q", key)
	}
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("ctx:jsonpath: invalid path %q: %w", path, err)
	}

	results := expr.Get(root.Interface())
	if len(results) == 0 {
		return nil, fmt.Errorf("ctx:jsonpath: %q matched nothing in %q", path, key)
	}
	if len(results) == 1 {
		return value.FromInterface(results[0])
	}
	return value.FromInterface(results)
}
