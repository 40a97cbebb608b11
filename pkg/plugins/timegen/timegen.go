// Package timegen implements the "time" module: timestamps and formatted
// dates anchored at an optional base time from the processing context.
//
// Actions:
//
//	{{time:now}}                       current time, RFC3339
//	{{time:now:dd.MM.yyyy}}            current time, formatted
//	{{time:timestamp}}                 unix seconds (number)
//	{{time:millis}}                    unix milliseconds (number)
//	{{time:iso}}                       RFC3339 with nanoseconds, UTC
//	{{time:calc:3600}}                 base time + 3600s, RFC3339
//	{{time:calc:0:seconds}}            base time as unix seconds (number)
//	{{time:calc:0:millis}}             base time as unix milliseconds (number)
//	{{time:calc:0:iso}}                base time, RFC3339
//	{{time:calc:0:HH\:mm\:ss}}         base time, formatted
//	{{time:format:1710508545:dd.MM.yyyy}}  given unix seconds, formatted
//
// "Base time" is the context's baseTime anchor when present, the wall clock
// otherwise. Formatting patterns use the common day/month/year letters
// (dd.MM.yyyy HH:mm:ss), not Go reference layouts.
package timegen

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/placegen/placegen/pkg/placeholder"
	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/value"
)

// ModuleName is the module name tokens use to address this plugin.
const ModuleName = "time"

// Plugin is the time module.
type Plugin struct {
	// nowFn is replaceable in tests.
	nowFn func() time.Time
}

// New creates the time plugin.
func New() *Plugin { return &Plugin{nowFn: time.Now} }

// Name implements plugin.Plugin.
func (*Plugin) Name() string { return ModuleName }

// Resolve implements plugin.Plugin.
func (p *Plugin) Resolve(_ context.Context, ph *placeholder.Parsed, pctx *plugin.Context) (value.Value, error) {
	switch ph.Action {
	case "now":
		t := p.nowFn().In(pctx.Location())
		if len(ph.Args) > 0 {
			return value.String(t.Format(ToGoLayout(ph.Args[0]))), nil
		}
		return value.String(t.Format(time.RFC3339)), nil
	case "timestamp":
		return value.Num(float64(p.base(pctx).Unix())), nil
	case "millis":
		return value.Num(float64(p.base(pctx).UnixMilli())), nil
	case "iso":
		return value.String(p.base(pctx).UTC().Format(time.RFC3339Nano)), nil
	case "calc":
		return p.resolveCalc(ph.Args, pctx)
	case "format":
		return resolveFormat(ph.Args, pctx)
	default:
		return nil, fmt.Errorf("time: unknown action %q", ph.Action)
	}
}

// base returns the context's time anchor, or the current time without one.
func (p *Plugin) base(pctx *plugin.Context) time.Time {
	if t, ok := pctx.BaseTime(); ok {
		return t
	}
	return p.nowFn()
}

func (p *Plugin) resolveCalc(args []string, pctx *plugin.Context) (value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("time:calc: missing offset argument")
	}
	offset, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return nil, fmt.Errorf("time:calc: offset %q is not numeric", args[0])
	}
	t := p.base(pctx).Add(time.Duration(offset * float64(time.Second))).In(pctx.Location())

	if len(args) < 2 {
		return value.String(t.Format(time.RFC3339)), nil
	}
	switch args[1] {
	case "seconds", "unix":
		return value.Num(float64(t.Unix())), nil
	case "millis":
		return value.Num(float64(t.UnixMilli())), nil
	case "iso":
		return value.String(t.Format(time.RFC3339)), nil
	default:
		return value.String(t.Format(ToGoLayout(args[1]))), nil
	}
}

func resolveFormat(args []string, pctx *plugin.Context) (value.Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("time:format: needs a timestamp and a pattern")
	}
	secs, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return nil, fmt.Errorf("time:format: timestamp %q is not numeric", args[0])
	}
	t := time.Unix(int64(secs), 0).In(pctx.Location())
	return value.String(t.Format(ToGoLayout(args[1]))), nil
}
