package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/placegen/placegen/pkg/config"
	"github.com/placegen/placegen/pkg/engine"
	"github.com/placegen/placegen/pkg/logging"
	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/plugins"
	"github.com/placegen/placegen/pkg/value"
)

var (
	processConfig      string
	processFormat      string
	processInclude     []string
	processExclude     []string
	processSet         []string
	processContextFile string
	processBaseTime    string
	processTimezone    string
	processOutput      string
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Substitute placeholders in a document",
	Long: `Substitute placeholders in a document read from a file or stdin.

Examples:
  # Process a JSON fixture
  placegen process fixture.json

  # Process stdin as plain text
  echo 'request {{gen:uuid}}' | placegen process --format text

  # Two-phase processing: resolve gen now, keep time tokens for later
  placegen process fixture.json --include gen

  # Supply context data for ctx/expr/time placeholders
  placegen process fixture.json --context-file ctx.yaml --base-time 2024-03-15T12:35:45Z

  # Load options and context from a profile
  placegen process fixture.json --config placegen.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args)
		if err != nil {
			return err
		}

		opts, err := buildOptions(cmd)
		if err != nil {
			return err
		}

		log := logging.New(logging.Config{
			Level:  logging.ParseLevel(logLevel),
			Format: logging.Format(logFormat),
		})

		eng := engine.New(engine.WithLogger(log))
		if err := plugins.RegisterDefaults(eng.Registry()); err != nil {
			return err
		}

		out, err := eng.Process(context.Background(), input, opts)
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), out)
	},
}

func init() {
	processCmd.Flags().StringVar(&processConfig, "config", "", "processing profile file (JSON or YAML)")
	processCmd.Flags().StringVar(&processFormat, "format", "json", "input format (json, text)")
	processCmd.Flags().StringSliceVar(&processInclude, "include", nil, "only resolve these modules; other tokens stay verbatim")
	processCmd.Flags().StringSliceVar(&processExclude, "exclude", nil, "never resolve these modules; their tokens stay verbatim")
	processCmd.Flags().StringArrayVar(&processSet, "set", nil, "context entry as key=value (repeatable)")
	processCmd.Flags().StringVar(&processContextFile, "context-file", "", "YAML file with context entries")
	processCmd.Flags().StringVar(&processBaseTime, "base-time", "", "base time anchor (RFC3339) for the time module")
	processCmd.Flags().StringVar(&processTimezone, "timezone", "", "IANA timezone for time formatting")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(processCmd)
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// buildOptions assembles engine options from the --config profile and the
// command flags. Flags win over profile values, and context entries layer in
// the order profile, --context-file, --set, time anchor flags.
func buildOptions(cmd *cobra.Command) (engine.Options, error) {
	var (
		opts engine.Options
		pctx *plugin.Context
	)

	if processConfig != "" {
		cfg, err := config.Load(processConfig)
		if err != nil {
			return opts, err
		}
		opts, pctx, err = cfg.Options()
		if err != nil {
			return opts, err
		}
	} else {
		pctx = plugin.NewContext()
	}

	if cmd.Flags().Changed("format") || opts.Format == "" {
		opts.Format = engine.Format(processFormat)
	}
	if len(processInclude) > 0 {
		opts.IncludePlugins = processInclude
	}
	if len(processExclude) > 0 {
		opts.ExcludePlugins = processExclude
	}

	if err := applyContextFlags(pctx); err != nil {
		return opts, err
	}
	opts.Context = pctx
	return opts, nil
}

func applyContextFlags(pctx *plugin.Context) error {
	if processContextFile != "" {
		data, err := os.ReadFile(processContextFile)
		if err != nil {
			return fmt.Errorf("read context file: %w", err)
		}
		entries := make(map[string]any)
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("parse context file: %w", err)
		}
		for k, v := range entries {
			tv, err := value.FromInterface(v)
			if err != nil {
				return fmt.Errorf("context file entry %q: %w", k, err)
			}
			pctx.Set(k, tv)
		}
	}

	for _, kv := range processSet {
		key, val, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return fmt.Errorf("--set %q: expected key=value", kv)
		}
		pctx.SetString(key, val)
	}

	if processBaseTime != "" {
		pctx.SetString(plugin.KeyBaseTime, processBaseTime)
	}
	if processTimezone != "" {
		pctx.SetString(plugin.KeyTimezone, processTimezone)
	}
	return nil
}

func writeOutput(stdout io.Writer, out string) error {
	if processOutput != "" {
		return os.WriteFile(processOutput, []byte(out), 0o644)
	}
	_, err := fmt.Fprintln(stdout, out)
	return err
}
