package runner

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/suiterun/suiterun/packages/manifest"
	"golang.org/x/time/rate"
)

const (
	// DefaultInterpreter is the command prefix used to invoke each entry.
	DefaultInterpreter = "python"
	// DefaultRootEnvVar is the environment variable that carries the
	// project root into each invoked script.
	DefaultRootEnvVar = "PYTHONPATH"
)

type Runner struct {
	config   *Config
	limiter  *rate.Limiter
	reporter Reporter
}

type Config struct {
	Interpreter string
	BaseDir     string
	RootEnvVar  string
	KeyFile     string
	CertFile    string
	Pace        float64
	Verbose     bool
}

// Reporter receives execution progress. Implementations must print the
// announcement from EntryStarted before the subprocess runs, since a
// failing entry aborts the run immediately afterwards.
type Reporter interface {
	EntryStarted(entry string)
	EntryFinished(result *EntryResult)
	RunFinished(result *RunResult)
}

type Option func(*Runner)

func WithReporter(rep Reporter) Option {
	return func(r *Runner) {
		if rep != nil {
			r.reporter = rep
		}
	}
}

func NewRunner(cfg *Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Interpreter == "" {
		cfg.Interpreter = DefaultInterpreter
	}
	if cfg.RootEnvVar == "" {
		cfg.RootEnvVar = DefaultRootEnvVar
	}

	r := &Runner{
		config:   cfg,
		reporter: nopReporter{},
	}
	if cfg.Pace > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Pace), 1)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type RunResult struct {
	Manifest  string
	Results   []*EntryResult
	StartedAt time.Time
	Duration  time.Duration
	Passed    int
	Failed    int
}

type EntryResult struct {
	Entry    string
	Command  []string
	ExitCode int
	Duration time.Duration
	Passed   bool
	Err      error
}

// CommandLine returns the attempted invocation joined for display. Execution
// always uses the discrete argument vector in Command.
func (e *EntryResult) CommandLine() string {
	return strings.Join(e.Command, " ")
}

// Verdict returns the overall result as printed to the console.
func (r *RunResult) Verdict() string {
	if r.Failed > 0 {
		return "FAIL"
	}
	return "PASS"
}

// Run executes every manifest entry in order, stopping at the first failure.
// The returned error reports only runner-level problems (such as a cancelled
// context); a failing script is a failed EntryResult, not an error.
func (r *Runner) Run(ctx context.Context, m *manifest.Manifest) (*RunResult, error) {
	result := &RunResult{
		Manifest:  m.Path,
		StartedAt: time.Now(),
	}

	for _, entry := range m.Entries {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}

		r.reporter.EntryStarted(entry)

		res := r.runEntry(ctx, entry)
		result.Results = append(result.Results, res)
		r.reporter.EntryFinished(res)

		if !res.Passed {
			result.Failed++
			break
		}
		result.Passed++
	}

	result.Duration = time.Since(result.StartedAt)
	r.reporter.RunFinished(result)
	return result, nil
}

func (r *Runner) runEntry(ctx context.Context, entry string) *EntryResult {
	res := &EntryResult{
		Entry:   entry,
		Command: r.commandFor(entry),
	}

	cmd := exec.CommandContext(ctx, res.Command[0], res.Command[1:]...)
	if r.config.BaseDir != "" {
		cmd.Dir = r.config.BaseDir
	}
	cmd.Env = append(os.Environ(), r.config.RootEnvVar+"="+r.rootDir())
	if r.config.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)

	if err == nil {
		res.Passed = true
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	} else {
		// The process never started (missing interpreter, unreadable path).
		res.ExitCode = -1
		res.Err = err
	}
	return res
}

// commandFor builds the argument vector for one entry. Credentials are
// appended as discrete arguments, never interpolated into a shell string.
func (r *Runner) commandFor(entry string) []string {
	argv := []string{r.config.Interpreter, entry}
	if r.config.KeyFile != "" && r.config.CertFile != "" {
		argv = append(argv, "-k", r.config.KeyFile, "-c", r.config.CertFile)
	}
	return argv
}

func (r *Runner) rootDir() string {
	if r.config.BaseDir != "" {
		return r.config.BaseDir
	}
	return "."
}

type nopReporter struct{}

func (nopReporter) EntryStarted(string)        {}
func (nopReporter) EntryFinished(*EntryResult) {}
func (nopReporter) RunFinished(*RunResult)     {}
