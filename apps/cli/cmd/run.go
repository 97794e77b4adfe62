package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/suiterun/suiterun/packages/core/config"
	"github.com/suiterun/suiterun/packages/core/runner"
	"github.com/suiterun/suiterun/packages/history"
	"github.com/suiterun/suiterun/packages/manifest"
	"github.com/suiterun/suiterun/packages/output"
	"github.com/suiterun/suiterun/packages/stats"
)

var runCmd = &cobra.Command{
	Use:   "run [manifest]",
	Short: "Run the scripts listed in a manifest",
	Long: `Run every script listed in a manifest file, in order, stopping at
the first failure.

Each entry is invoked as "<interpreter> <entry>". When a key and
certificate are configured, "-k <key> -c <cert>" is appended to every
invocation so scripts can authenticate against the server under test.

Examples:
  suiterun run
  suiterun run tests.txt
  suiterun run tests.txt -k ~/keys/localuser.key -c ~/keys/localuser.crt
  suiterun run tests.txt --pace 2 --timings
  suiterun run tests.txt --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	keyFlag         string
	certFlag        string
	interpreterFlag string
	rootEnvFlag     string
	paceFlag        float64
	verboseFlag     bool
	noColorFlag     bool
	timingsFlag     bool
	watchFlag       bool
	noHistoryFlag   bool
	configFlag      string
)

func init() {
	runCmd.Flags().StringVarP(&keyFlag, "key", "k", getEnvString("SUITERUN_KEY", ""), "Client key file passed to every script (env: SUITERUN_KEY)")
	runCmd.Flags().StringVarP(&certFlag, "cert", "c", getEnvString("SUITERUN_CERT", ""), "Client certificate file passed to every script (env: SUITERUN_CERT)")
	runCmd.Flags().StringVar(&interpreterFlag, "interpreter", getEnvString("SUITERUN_INTERPRETER", ""), "Command used to invoke each entry (env: SUITERUN_INTERPRETER)")
	runCmd.Flags().StringVar(&rootEnvFlag, "root-env", "", "Environment variable carrying the project root to scripts")
	runCmd.Flags().Float64Var(&paceFlag, "pace", 0, "Maximum script launches per second (0 = unpaced)")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("SUITERUN_VERBOSE", false), "Show script output and per-entry durations (env: SUITERUN_VERBOSE)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("SUITERUN_NO_COLOR", false), "Disable colored output (env: SUITERUN_NO_COLOR)")
	runCmd.Flags().BoolVar(&timingsFlag, "timings", false, "Print a duration summary after the verdict")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the manifest and scripts for changes and re-run")
	runCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "Skip recording this run in the history database")
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("SUITERUN_CONFIG", ""), "Path to config file (env: SUITERUN_CONFIG)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func runCommand(cmd *cobra.Command, args []string) error {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	manifestPath := fileConfig.Manifest
	if len(args) > 0 {
		manifestPath = args[0]
	}

	// Flags override config file values
	key := keyFlag
	if key == "" {
		key = fileConfig.Key
	}
	cert := certFlag
	if cert == "" {
		cert = fileConfig.Cert
	}
	key = config.ExpandHome(key)
	cert = config.ExpandHome(cert)
	if (key == "") != (cert == "") {
		return fmt.Errorf("--key and --cert must be provided together")
	}

	interpreter := interpreterFlag
	if interpreter == "" {
		interpreter = fileConfig.Interpreter
	}
	rootEnv := rootEnvFlag
	if rootEnv == "" {
		rootEnv = fileConfig.RootEnv
	}
	pace := paceFlag
	if pace == 0 {
		pace = fileConfig.Pace
	}
	verbose := verboseFlag || fileConfig.GetVerbose()
	noColor := noColorFlag || fileConfig.GetNoColor()

	reporter := output.NewConsoleReporter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(verbose),
		output.WithNoColor(noColor),
	)

	r := runner.NewRunner(&runner.Config{
		Interpreter: interpreter,
		RootEnvVar:  rootEnv,
		KeyFile:     key,
		CertFile:    cert,
		Pace:        pace,
		Verbose:     verbose,
	}, runner.WithReporter(reporter))

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt, stopping...")
		cancel()
	}()

	runOnce := func() (*runner.RunResult, error) {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			reporter.FormatError(err)
			return nil, err
		}

		result, err := r.Run(ctx, m)
		if err != nil {
			return nil, err
		}

		if timingsFlag {
			timings := stats.NewTimings()
			for _, er := range result.Results {
				timings.Record(er.Duration)
			}
			reporter.FormatTimings(timings.Summary())
		}

		if !noHistoryFlag {
			recordRun(fileConfig, result)
		}

		return result, nil
	}

	result, err := runOnce()
	if err != nil {
		return err
	}

	// If watch mode is not enabled, exit normally
	if !watchFlag {
		if result.Failed > 0 {
			os.Exit(ExitTestFailure)
		}
		return nil
	}

	// Watch mode: re-run when the manifest or a listed script changes
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	addDir := func(dir string) {
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				reporter.FormatError(fmt.Errorf("failed to watch %s: %w", dir, err))
			}
			watchedDirs[dir] = true
		}
	}

	addDir(filepath.Dir(manifestPath))
	if m, err := manifest.Load(manifestPath); err == nil {
		for _, entry := range m.Entries {
			addDir(filepath.Dir(entry))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	// Debounce timer for rapid file changes
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\nRe-running suite...\n\n", event.Name)
					_, _ = runOnce()
					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			reporter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}

// recordRun stores the run in the history database. Recording problems are
// warnings; they never fail the run.
func recordRun(cfg *config.Config, result *runner.RunResult) {
	path := config.ExpandHome(cfg.HistoryFile)
	if path == "" {
		return
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open history database: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(result); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record run: %v\n", err)
	}
}
