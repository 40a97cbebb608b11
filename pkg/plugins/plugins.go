// Package plugins wires the standard plugin set into a registry.
package plugins

import (
	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/plugins/ctxval"
	"github.com/placegen/placegen/pkg/plugins/exprval"
	"github.com/placegen/placegen/pkg/plugins/gen"
	"github.com/placegen/placegen/pkg/plugins/seq"
	"github.com/placegen/placegen/pkg/plugins/timegen"
	"github.com/placegen/placegen/pkg/transform"
)

// RegisterDefaults registers the standard plugins (gen, time, ctx, expr,
// seq) and the standard transforms on reg.
func RegisterDefaults(reg *plugin.Registry) error {
	standard := []plugin.Plugin{
		gen.New(),
		timegen.New(),
		ctxval.New(),
		exprval.New(),
		seq.New(),
	}
	for _, p := range standard {
		if err := reg.RegisterPlugin(p); err != nil {
			return err
		}
	}
	return transform.RegisterStandard(reg)
}
