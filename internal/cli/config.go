package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand creates the config command for inspecting the configuration.
func (c *CLI) configCommand() *cobra.Command {
	var pathOnly bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Config prints the configuration after the config file and the VIZLAYOUT_*
environment variables have been applied, in config file format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if pathOnly {
				fmt.Fprintln(w, c.configPath)
				return nil
			}
			fmt.Fprintln(w, StyleDim.Render("# "+c.configPath))
			fmt.Fprint(w, c.Config.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&pathOnly, "path", false, "print only the config file path")
	return cmd
}
