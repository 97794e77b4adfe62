package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/suiterun/suiterun/packages/core/runner"
	"github.com/suiterun/suiterun/packages/stats"
)

func newTestReporter() (*ConsoleReporter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewConsoleReporter(WithWriter(buf), WithNoColor(true)), buf
}

func TestConsoleReporter_EntryStarted(t *testing.T) {
	f, buf := newTestReporter()

	f.EntryStarted("scripts/test-conversation.py")

	assert.Equal(t, "scripts/test-conversation.py...\n", buf.String())
}

func TestConsoleReporter_EntryFinished(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		f, buf := newTestReporter()

		f.EntryFinished(&runner.EntryResult{
			Entry:  "scripts/ok.py",
			Passed: true,
		})

		assert.Equal(t, "scripts/ok.py...done\n", buf.String())
	})

	t.Run("failed prints FAIL and the command line", func(t *testing.T) {
		f, buf := newTestReporter()

		f.EntryFinished(&runner.EntryResult{
			Entry:    "scripts/bad.py",
			Command:  []string{"python", "scripts/bad.py", "-k", "/home/u/k.key", "-c", "/home/u/c.crt"},
			ExitCode: 1,
		})

		assert.Equal(t, "FAIL!\npython scripts/bad.py -k /home/u/k.key -c /home/u/c.crt\n", buf.String())
	})

	t.Run("verbose shows duration", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := NewConsoleReporter(WithWriter(buf), WithNoColor(true), WithVerbose(true))

		f.EntryFinished(&runner.EntryResult{
			Entry:    "scripts/ok.py",
			Passed:   true,
			Duration: 1500 * time.Millisecond,
		})

		assert.Equal(t, "scripts/ok.py...done (1500ms)\n", buf.String())
	})
}

func TestConsoleReporter_RunFinished(t *testing.T) {
	t.Run("clean run prints PASS", func(t *testing.T) {
		f, buf := newTestReporter()

		f.RunFinished(&runner.RunResult{Passed: 3})

		assert.Equal(t, "PASS\n", buf.String())
	})

	t.Run("failed run prints nothing more", func(t *testing.T) {
		f, buf := newTestReporter()

		f.RunFinished(&runner.RunResult{Passed: 2, Failed: 1})

		assert.Empty(t, buf.String())
	})
}

func TestConsoleReporter_FormatError(t *testing.T) {
	f, buf := newTestReporter()

	f.FormatError(assert.AnError)

	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), assert.AnError.Error())
}

func TestConsoleReporter_FormatTimings(t *testing.T) {
	f, buf := newTestReporter()

	timings := stats.NewTimings()
	timings.Record(10 * time.Millisecond)
	timings.Record(20 * time.Millisecond)
	f.FormatTimings(timings.Summary())

	out := buf.String()
	assert.Contains(t, out, "Timings")
	assert.Contains(t, out, "scripts: 2")
	assert.Contains(t, out, "p95:")
}
