package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suiterun/suiterun/packages/core/config"
	"github.com/suiterun/suiterun/packages/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Check that every manifest entry exists",
	Long: `Check that every script listed in a manifest resolves to an existing
file, without executing anything.

Examples:
  suiterun validate
  suiterun validate tests.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
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

	hasErrors := false
	for _, entry := range m.Entries {
		info, err := os.Stat(entry)
		switch {
		case err != nil:
			fmt.Fprintf(cmd.OutOrStderr(), "Missing: %s\n", entry)
			hasErrors = true
		case info.IsDir():
			fmt.Fprintf(cmd.OutOrStderr(), "Not a file: %s\n", entry)
			hasErrors = true
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", entry)
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	return nil
}
