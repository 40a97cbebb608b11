package plugin

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Lookup errors. The full error message enumerates the registered names so
// that a typo in a template is diagnosable without consulting the code.
var (
	ErrPluginNotFound    = errors.New("plugin not found")
	ErrTransformNotFound = errors.New("transform not found")
	ErrDuplicateName     = errors.New("name already registered")
)

// Registry holds the plugin and transform bindings for one engine instance.
// Bindings are registered once at setup time; during processing the registry
// is lookup-only and safe for concurrent readers.
type Registry struct {
	mu         sync.RWMutex
	plugins    map[string]Plugin
	transforms map[string]Transform
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins:    make(map[string]Plugin),
		transforms: make(map[string]Transform),
	}
}

// RegisterPlugin binds p under its module name. Registering the same name
// twice is an error.
func (r *Registry) RegisterPlugin(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := p.Name()
	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q: %w", name, ErrDuplicateName)
	}
	r.plugins[name] = p
	return nil
}

// RegisterTransform binds t under its name. Registering the same name twice
// is an error.
func (r *Registry) RegisterTransform(t Transform) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := t.Name()
	if _, exists := r.transforms[name]; exists {
		return fmt.Errorf("transform %q: %w", name, ErrDuplicateName)
	}
	r.transforms[name] = t
	return nil
}

// Plugin returns the plugin registered under name.
func (r *Registry) Plugin(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)",
			ErrPluginNotFound, name, joinNames(r.pluginNamesLocked()))
	}
	return p, nil
}

// Transform returns the transform registered under name.
func (r *Registry) Transform(name string) (Transform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transforms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)",
			ErrTransformNotFound, name, joinNames(r.transformNamesLocked()))
	}
	return t, nil
}

// PluginNames returns the registered module names, sorted.
func (r *Registry) PluginNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pluginNamesLocked()
}

// TransformNames returns the registered transform names, sorted.
func (r *Registry) TransformNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.transformNamesLocked()
}

func (r *Registry) pluginNamesLocked() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) transformNamesLocked() []string {
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
