// Package stats aggregates script durations into a latency summary.
package stats

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Timings accumulates script wall-clock durations.
type Timings struct {
	hist  *hdrhistogram.Histogram
	total time.Duration
}

// Summary is a point-in-time snapshot of recorded durations.
type Summary struct {
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

func NewTimings() *Timings {
	return &Timings{
		// Histogram: 1us to 60s range, 3 significant digits
		hist: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Record adds one script duration. Durations outside the histogram range
// are clamped by RecordValue; the returned error only flags values below
// the minimum, which cannot happen for non-negative durations.
func (t *Timings) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	_ = t.hist.RecordValue(us)
	t.total += d
}

func (t *Timings) Summary() *Summary {
	return &Summary{
		Count: t.hist.TotalCount(),
		Total: t.total,
		Min:   time.Duration(t.hist.Min()) * time.Microsecond,
		Max:   time.Duration(t.hist.Max()) * time.Microsecond,
		Mean:  time.Duration(t.hist.Mean()) * time.Microsecond,
		P50:   time.Duration(t.hist.ValueAtQuantile(50)) * time.Microsecond,
		P95:   time.Duration(t.hist.ValueAtQuantile(95)) * time.Microsecond,
		P99:   time.Duration(t.hist.ValueAtQuantile(99)) * time.Microsecond,
	}
}
