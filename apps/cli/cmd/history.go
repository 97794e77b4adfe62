package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suiterun/suiterun/packages/core/config"
	"github.com/suiterun/suiterun/packages/history"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded runs",
	Long: `Show recent recorded runs, or the per-script breakdown of one run.

Examples:
  suiterun history
  suiterun history --limit 25
  suiterun history 6f1c2a9e-8b7d-4c3e-9f0a-1b2c3d4e5f6a`,
	Args: cobra.MaximumNArgs(1),
	RunE: historyCommand,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 10, "Number of runs to show")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	fileConfig, err := config.LoadConfig("")
	if err != nil {
		return err
	}

	store, err := history.Open(config.ExpandHome(fileConfig.HistoryFile))
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		return showRun(cmd, store, args[0])
	}

	runs, err := store.RecentRuns(historyLimitFlag)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-4s  %d/%d passed  (%dms)  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Verdict,
			r.Passed, r.Total, r.Duration.Milliseconds(), r.Manifest)
	}

	return nil
}

func showRun(cmd *cobra.Command, store *history.Store, runID string) error {
	entries, err := store.RunEntries(runID)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return fmt.Errorf("no run found with id %s", runID)
	}

	for _, e := range entries {
		status := "ok"
		if !e.Passed {
			status = fmt.Sprintf("exit %d", e.ExitCode)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %3d. %-50s %-8s (%dms)\n",
			e.Position, e.Script, status, e.Duration.Milliseconds())
	}

	return nil
}
