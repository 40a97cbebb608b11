package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/placegen/placegen/pkg/engine"
	"github.com/placegen/placegen/pkg/plugins"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the registered placeholder modules",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := engine.New()
		if err := plugins.RegisterDefaults(eng.Registry()); err != nil {
			return err
		}
		for _, name := range eng.Registry().PluginNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var transformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "List the registered value transforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := engine.New()
		if err := plugins.RegisterDefaults(eng.Registry()); err != nil {
			return err
		}
		for _, name := range eng.Registry().TransformNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(transformsCmd)
}
