package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suiterun/suiterun/packages/core/config"
	"github.com/suiterun/suiterun/packages/manifest"
)

var listCmd = &cobra.Command{
	Use:   "list [manifest]",
	Short: "List the scripts a manifest would run",
	Long: `List every entry of a manifest in execution order.

Examples:
  suiterun list
  suiterun list tests.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	fileConfig, err := config.LoadConfig("")
	if err != nil {
		return err
	}

	manifestPath := fileConfig.Manifest
	if len(args) > 0 {
		manifestPath = args[0]
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries\n", m.Path, m.Len())
	for i, entry := range m.Entries {
		fmt.Fprintf(cmd.OutOrStdout(), "  %3d. %s\n", i+1, entry)
	}

	return nil
}
