// Package cli implements the placegen command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "placegen",
	Short: "Substitute {{module:action:args|transforms}} placeholders in documents",
	Long: `placegen generates test data by substituting placeholder tokens in JSON
or plain-text documents. Placeholders use the {{module:action:args|transforms}}
grammar; in JSON documents a placeholder standing alone in a string keeps the
type of its resolved value ("{{gen:number:42}}" becomes the number 42).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

// Execute runs the CLI with the given build metadata.
func Execute(version, commit, date string) error {
	buildVersion, buildCommit, buildDate = version, commit, date
	return rootCmd.Execute()
}
