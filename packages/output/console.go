package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/suiterun/suiterun/packages/core/runner"
	"github.com/suiterun/suiterun/packages/stats"
)

type ConsoleReporter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleReporter)

func NewConsoleReporter(opts ...ConsoleOption) *ConsoleReporter {
	f := &ConsoleReporter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleReporter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleReporter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleReporter) {
		f.noColor = nc
	}
}

func (f *ConsoleReporter) EntryStarted(entry string) {
	fmt.Fprintf(f.writer, "%s...\n", entry)
}

func (f *ConsoleReporter) EntryFinished(res *runner.EntryResult) {
	if res.Passed {
		if f.verbose {
			cyan := color.New(color.FgCyan).SprintFunc()
			fmt.Fprintf(f.writer, "%s...done %s\n", res.Entry, cyan(fmt.Sprintf("(%dms)", res.Duration.Milliseconds())))
			return
		}
		fmt.Fprintf(f.writer, "%s...done\n", res.Entry)
		return
	}

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s\n", red("FAIL!"))
	fmt.Fprintf(f.writer, "%s\n", res.CommandLine())
	if f.verbose && res.Err != nil {
		fmt.Fprintf(f.writer, "%v\n", res.Err)
	}
}

func (f *ConsoleReporter) RunFinished(res *runner.RunResult) {
	if res.Failed > 0 {
		return
	}
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s\n", green("PASS"))
}

func (f *ConsoleReporter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

// FormatTimings prints the per-run duration summary shown under --timings.
func (f *ConsoleReporter) FormatTimings(s *stats.Summary) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "\n%s\n", bold("Timings"))
	fmt.Fprintf(f.writer, "  scripts: %d\n", s.Count)
	fmt.Fprintf(f.writer, "  min:     %s\n", s.Min)
	fmt.Fprintf(f.writer, "  mean:    %s\n", s.Mean)
	fmt.Fprintf(f.writer, "  p50:     %s\n", s.P50)
	fmt.Fprintf(f.writer, "  p95:     %s\n", s.P95)
	fmt.Fprintf(f.writer, "  p99:     %s\n", s.P99)
	fmt.Fprintf(f.writer, "  max:     %s\n", s.Max)
}
