package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new suiterun project",
	Long: `Initialize a new suiterun project in the current directory.

This creates:
  - suiterun.yaml  - Configuration file
  - tests.txt      - Example manifest

Examples:
  suiterun init
  suiterun init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const initConfig = `# suiterun configuration
manifest: tests.txt
interpreter: python
rootEnv: PYTHONPATH

# Uncomment to pass client credentials to every script:
# key: ~/keys/localuser.key
# cert: ~/keys/localuser.crt

# Maximum script launches per second (0 = unpaced)
pace: 0

historyFile: .suiterun/history.db
`

const initManifest = `# One script per line, executed in order. The run stops at the
# first script that exits non-zero.
scripts/test-conversation.py
scripts/test-tls-version.py
`

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, "suiterun.yaml")
	manifestFile := filepath.Join(cwd, "tests.txt")

	if !forceInit {
		for _, f := range []string{configFile, manifestFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	if err := os.WriteFile(configFile, []byte(initConfig), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}
	if err := os.WriteFile(manifestFile, []byte(initManifest), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", manifestFile, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", manifestFile)
	fmt.Fprintf(cmd.OutOrStdout(), "\nEdit tests.txt, then run: suiterun run\n")

	return nil
}
