// Package progress adapts the solver package's ProgressSink interface onto
// a console spinner, so long searches give live feedback without flooding
// the terminal with one line per iteration.
package progress

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/tracklog"
)

// SpinnerSink adapts github.com/briandowns/spinner into a solver.ProgressSink,
// refreshing the spinner's suffix every ReportInterval iterations and, when
// verbose logging is on, emitting a structured progress line instead (the
// spinner itself is suppressed in that mode to avoid interleaving with log
// output).
type SpinnerSink struct {
	s        *spinner.Spinner
	algo     string
	interval uint64
}

// NewSpinnerSink creates a sink for the named algorithm ("cb", "pb", "as"),
// reporting every interval iterations (0 is treated as 1, the most frequent
// schedule). The spinner starts immediately unless verbose logging is
// enabled; the two are not shown together.
func NewSpinnerSink(algo string, interval uint64) *SpinnerSink {
	if interval == 0 {
		interval = 1
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + algo
	_ = s.Color("cyan", "bold")

	sink := &SpinnerSink{s: s, algo: algo, interval: interval}
	if !tracklog.VerboseEnabled {
		s.Start()
	}
	return sink
}

// ReportInterval implements solver.ProgressSink.
func (s *SpinnerSink) ReportInterval() uint64 { return s.interval }

// Report implements solver.ProgressSink. It refreshes the spinner's suffix
// with the iteration count and the grid's current fill ratio, and, in
// verbose mode (where the spinner itself is suppressed), logs the same
// numbers as a structured tracklog.SolveProgress line instead.
func (s *SpinnerSink) Report(iterations uint64, g *grid.Grid) {
	filled := 0
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.IsFilled(r, c) {
				filled++
			}
		}
	}
	total := g.Rows() * g.Cols()
	if tracklog.VerboseEnabled {
		tracklog.SolveProgress(s.algo, iterations, filled, total)
		return
	}
	s.s.Suffix = fmt.Sprintf(" %s: %d iterations, %d/%d cells filled", s.algo, iterations, filled, total)
}

// Stop halts the spinner. Call once the solve finishes, success or failure.
func (s *SpinnerSink) Stop() {
	s.s.Stop()
}

// LogInfo stops the spinner, logs an info message, and restarts the
// spinner, so the message doesn't tear mid-render.
func (s *SpinnerSink) LogInfo(format string, args ...interface{}) {
	wasRunning := s.s.Active()
	if wasRunning {
		s.s.Stop()
	}
	tracklog.Info(format, args...)
	if wasRunning && !tracklog.VerboseEnabled {
		s.s.Start()
	}
}

// LogWarning stops the spinner, logs a warning, and restarts the spinner.
func (s *SpinnerSink) LogWarning(format string, args ...interface{}) {
	wasRunning := s.s.Active()
	if wasRunning {
		s.s.Stop()
	}
	tracklog.Warning(format, args...)
	if wasRunning && !tracklog.VerboseEnabled {
		s.s.Start()
	}
}
