// Package config provides the processing profile: a file-based description of
// engine options and context values that the CLI merges with its flags.
package config

import (
	"fmt"
	"strconv"

	"github.com/placegen/placegen/pkg/engine"
	"github.com/placegen/placegen/pkg/plugin"
)

// Config is a processing profile loaded from a JSON or YAML file.
type Config struct {
	// Format selects the document format (json, text, xml). Empty means json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// Include restricts resolution to the named modules.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
	// Exclude skips the named modules; it wins over Include.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	// MaxPasses bounds the iterative replacement loop. Zero keeps the default.
	MaxPasses int `json:"maxPasses,omitempty" yaml:"maxPasses,omitempty"`
	// BaseTime anchors the time module, as RFC 3339 or a unix timestamp.
	BaseTime string `json:"baseTime,omitempty" yaml:"baseTime,omitempty"`
	// Timezone names the IANA zone used when formatting times.
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	// Context holds values exposed to the ctx and expr modules.
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`
}

// Validate checks the profile for values the engine would reject.
func (c *Config) Validate() error {
	switch engine.Format(c.Format) {
	case "", engine.FormatJSON, engine.FormatText, engine.FormatXML:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxPasses < 0 {
		return fmt.Errorf("maxPasses must not be negative, got %d", c.MaxPasses)
	}
	return nil
}

// Options converts the profile into engine options and a plugin context.
func (c *Config) Options() (engine.Options, *plugin.Context, error) {
	pctx, err := plugin.ContextFromMap(c.Context)
	if err != nil {
		return engine.Options{}, nil, fmt.Errorf("context values: %w", err)
	}
	if c.BaseTime != "" {
		if f, perr := strconv.ParseFloat(c.BaseTime, 64); perr == nil {
			pctx.SetNumber(plugin.KeyBaseTime, f)
		} else {
			pctx.SetString(plugin.KeyBaseTime, c.BaseTime)
		}
	}
	if c.Timezone != "" {
		pctx.SetString(plugin.KeyTimezone, c.Timezone)
	}
	opts := engine.Options{
		Format:         engine.Format(c.Format),
		IncludePlugins: c.Include,
		ExcludePlugins: c.Exclude,
		Context:        pctx,
		MaxPasses:      c.MaxPasses,
	}
	return opts, pctx, nil
}
