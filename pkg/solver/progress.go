// Package solver implements the three cooperating Train Tracks search
// strategies: a constrained backtracker (CB), a single-chain path builder
// (PB), and an A* path solver (AS), plus the progress surface they share.
package solver

import "github.com/ninelives/traintracks/pkg/grid"

// ProgressSink receives periodic iteration reports from a running solver.
// Report is invoked when iterations%ReportInterval()==0. Implementations
// may read the current Grid but must not mutate it, and must be cheap:
// solvers call it synchronously on the hot path.
type ProgressSink interface {
	ReportInterval() uint64
	Report(iterations uint64, g *grid.Grid)
}

// NullSink is a no-op sink with an effectively unbounded report interval.
type NullSink struct{}

func (NullSink) ReportInterval() uint64    { return ^uint64(0) }
func (NullSink) Report(uint64, *grid.Grid) {}

// iterationCounter is embedded by each solver to provide the monotonically
// increasing 64-bit iteration count described by the progress surface.
type iterationCounter struct {
	count uint64
	sink  ProgressSink
}

func newIterationCounter(sink ProgressSink) iterationCounter {
	if sink == nil {
		sink = NullSink{}
	}
	return iterationCounter{sink: sink}
}

func (ic *iterationCounter) tick(g *grid.Grid) {
	ic.count++
	interval := ic.sink.ReportInterval()
	if interval > 0 && ic.count%interval == 0 {
		ic.sink.Report(ic.count, g)
	}
}

// Iterations reports the counter's current value.
func (ic *iterationCounter) Iterations() uint64 { return ic.count }
