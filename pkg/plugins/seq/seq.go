// Package seq implements the "seq" module: named auto-incrementing
// sequences that persist for the lifetime of the plugin instance.
//
//	{{seq:next:orderId}}        1, 2, 3, ... (number)
//	{{seq:next:orderId:100}}    100, 101, ... (start on first use)
//	{{seq:current:orderId}}     last value handed out, without advancing
//	{{seq:reset:orderId}}       restart the sequence; yields its old value
package seq

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/placegen/placegen/pkg/placeholder"
	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/value"
)

// ModuleName is the module name tokens use to address this plugin.
const ModuleName = "seq"

// Plugin is the seq module. Sequences are shared by all documents processed
// through the registry this plugin is bound to.
type Plugin struct {
	mu       sync.Mutex
	counters map[string]int64
}

// New creates the seq plugin with an empty counter set.
func New() *Plugin {
	return &Plugin{counters: make(map[string]int64)}
}

// Name implements plugin.Plugin.
func (*Plugin) Name() string { return ModuleName }

// Resolve implements plugin.Plugin.
func (p *Plugin) Resolve(_ context.Context, ph *placeholder.Parsed, _ *plugin.Context) (value.Value, error) {
	if len(ph.Args) == 0 {
		return nil, fmt.Errorf("seq:%s: missing sequence name", ph.Action)
	}
	name := ph.Args[0]

	switch ph.Action {
	case "next":
		start := int64(1)
		if len(ph.Args) > 1 {
			s, err := strconv.ParseInt(ph.Args[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("seq:next: start %q is not an integer", ph.Args[1])
			}
			start = s
		}
		return value.Num(float64(p.next(name, start))), nil
	case "current":
		return value.Num(float64(p.current(name))), nil
	case "reset":
		return value.Num(float64(p.reset(name))), nil
	default:
		return nil, fmt.Errorf("seq: unknown action %q", ph.Action)
	}
}

func (p *Plugin) next(name string, start int64) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.counters[name]; !exists {
		p.counters[name] = start
	}
	val := p.counters[name]
	p.counters[name]++
	return val
}

func (p *Plugin) current(name string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, exists := p.counters[name]; exists {
		return v - 1
	}
	return 0
}

func (p *Plugin) reset(name string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.counters[name]
	delete(p.counters, name)
	return old
}
