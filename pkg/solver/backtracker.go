package solver

import (
	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
)

// Backtracker is the constrained backtracker (CB): a DFS over the empty
// cell with the fewest legal pieces (minimum-remaining-values selection),
// mutating g in place and undoing placements on failure.
type Backtracker struct {
	iterationCounter
}

// NewBacktracker creates a CB reporting progress through sink (nil is a
// valid no-op sink).
func NewBacktracker(sink ProgressSink) *Backtracker {
	return &Backtracker{iterationCounter: newIterationCounter(sink)}
}

// Solve attempts to complete g into a solution in place. Returns true and
// leaves g solved on success; returns false and leaves g in its original
// state on failure (every Place is undone by a matching Remove).
func (b *Backtracker) Solve(g *grid.Grid) bool {
	return b.step(g)
}

func (b *Backtracker) step(g *grid.Grid) bool {
	b.tick(g)

	if !g.CanStillSatisfy() {
		return false
	}
	if g.TrackCountsMatch() && g.IsSingleConnectedPath() {
		return true
	}

	candidates := candidateCells(g)
	if len(candidates) == 0 {
		candidates = allEmptyCells(g)
	}

	type option struct {
		r, c   int
		pieces []piece.Type
	}
	var options []option
	for _, p := range candidates {
		legal := g.GetLegalPieces(p.Row, p.Col)
		if len(legal) == 0 {
			continue
		}
		options = append(options, option{r: p.Row, c: p.Col, pieces: legal})
	}
	if len(options) == 0 {
		return false
	}

	best := options[0]
	for _, o := range options[1:] {
		if len(o.pieces) < len(best.pieces) {
			best = o
		}
	}

	for _, t := range best.pieces {
		g.Place(best.r, best.c, t)
		if b.step(g) {
			return true
		}
		g.Remove(best.r, best.c)
	}
	return false
}

// candidateCells returns the empty cells that are 4-neighbours of some
// non-Empty cell.
func candidateCells(g *grid.Grid) []grid.Point {
	var out []grid.Point
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if !g.IsEmpty(r, c) {
				continue
			}
			if hasFilledNeighbour(g, r, c) {
				out = append(out, grid.Point{Row: r, Col: c})
			}
		}
	}
	return out
}

func hasFilledNeighbour(g *grid.Grid, r, c int) bool {
	for _, d := range piece.AllDirections {
		nr, nc := r+d.DR, c+d.DC
		if g.InBounds(nr, nc) && g.IsFilled(nr, nc) {
			return true
		}
	}
	return false
}

func allEmptyCells(g *grid.Grid) []grid.Point {
	var out []grid.Point
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.IsEmpty(r, c) {
				out = append(out, grid.Point{Row: r, Col: c})
			}
		}
	}
	return out
}
