package solver

import (
	"sort"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
)

// PathBuilder is the path builder (PB): a DFS that grows a single directed
// chain from the grid's entry cell, placing or confirming pieces
// cell-by-cell along outgoing connections.
type PathBuilder struct {
	iterationCounter
}

// NewPathBuilder creates a PB reporting progress through sink.
func NewPathBuilder(sink ProgressSink) *PathBuilder {
	return &PathBuilder{iterationCounter: newIterationCounter(sink)}
}

// reversePieceOrder tries corners before straights, favouring branching, as
// specified for PB's candidate ordering.
var reversePieceOrder = reversed(piece.AllPieces)

func reversed(in []piece.Type) []piece.Type {
	out := make([]piece.Type, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// Solve attempts to walk a single chain from g's entry to a valid
// termination. Returns true and leaves g solved on success; false and g
// restored to its initial state on failure.
func (pb *PathBuilder) Solve(g *grid.Grid) bool {
	entry, ok := g.Entry()
	if !ok {
		return false
	}
	existing := g.At(entry.Row, entry.Col)
	offGrid := offGridDirection(g, entry, existing)
	if offGrid == nil {
		return false
	}

	fixedPositions := g.FixedPoints()
	visited := make(map[grid.Point]bool)

	// incoming is defined so that -incoming equals the direction the
	// walker must find already connected at pos (see step 3 below); for
	// the entry cell that is its off-grid connection, so incoming is the
	// opposite of that.
	return pb.step(g, entry, offGrid.Opposite(), visited, 0, fixedPositions)
}

// offGridDirection returns the connection direction of the piece at p that
// leaves the grid, or nil if p holds no such piece.
func offGridDirection(g *grid.Grid, p grid.Point, t piece.Type) *piece.Dir {
	for _, d := range piece.Connections(t) {
		if !g.InBounds(p.Row+d.DR, p.Col+d.DC) {
			dd := d
			return &dd
		}
	}
	return nil
}

func (pb *PathBuilder) step(
	g *grid.Grid,
	pos grid.Point,
	incoming piece.Dir,
	visited map[grid.Point]bool,
	fixedHit int,
	fixedPositions []grid.Point,
) bool {
	pb.tick(g)

	if !g.InBounds(pos.Row, pos.Col) || visited[pos] || len(visited) >= g.TotalCount() {
		return false
	}

	existing := g.At(pos.Row, pos.Col)
	if existing != piece.Empty {
		if !piece.ConnectsTo(existing, incoming.Opposite()) {
			return false
		}
		fixedHit++
	}

	visited[pos] = true
	defer delete(visited, pos)

	if fixedHit == len(fixedPositions) && g.TrackCountsMatch() {
		if g.IsSingleConnectedPath() {
			return true
		}
	}

	remaining := remainingFixed(fixedPositions, visited)

	var candidates []piece.Type
	if existing != piece.Empty {
		candidates = []piece.Type{existing}
	} else {
		for _, t := range reversePieceOrder {
			if g.CanPlace(pos.Row, pos.Col, t) && piece.ConnectsTo(t, incoming.Opposite()) {
				candidates = append(candidates, t)
			}
		}
	}

	for _, t := range candidates {
		placed := false
		if existing == piece.Empty {
			g.Place(pos.Row, pos.Col, t)
			placed = true
		}

		outgoing := outgoingDirections(t, incoming.Opposite())
		sortByNearestRemaining(outgoing, pos, remaining)

		succeeded := false
		for _, d := range outgoing {
			next := grid.Point{Row: pos.Row + d.DR, Col: pos.Col + d.DC}
			if pb.step(g, next, d, visited, fixedHit, fixedPositions) {
				succeeded = true
				break
			}
		}

		if succeeded {
			return true
		}
		if placed {
			g.Remove(pos.Row, pos.Col)
		}
	}

	return false
}

// outgoingDirections returns a piece's connection directions excluding the
// direction the walk arrived from.
func outgoingDirections(t piece.Type, exclude piece.Dir) []piece.Dir {
	var out []piece.Dir
	for _, d := range piece.Connections(t) {
		if d != exclude {
			out = append(out, d)
		}
	}
	return out
}

// remainingFixed returns the fixed clue positions not yet visited.
func remainingFixed(fixedPositions []grid.Point, visited map[grid.Point]bool) []grid.Point {
	var out []grid.Point
	for _, p := range fixedPositions {
		if !visited[p] {
			out = append(out, p)
		}
	}
	return out
}

// sortByNearestRemaining orders directions by ascending Manhattan distance
// from pos+d to the nearest point in remaining (0 if remaining is empty).
func sortByNearestRemaining(dirs []piece.Dir, pos grid.Point, remaining []grid.Point) {
	dist := func(d piece.Dir) int {
		if len(remaining) == 0 {
			return 0
		}
		next := grid.Point{Row: pos.Row + d.DR, Col: pos.Col + d.DC}
		best := next.ManhattanDistance(remaining[0])
		for _, r := range remaining[1:] {
			if dd := next.ManhattanDistance(r); dd < best {
				best = dd
			}
		}
		return best
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return dist(dirs[i]) < dist(dirs[j])
	})
}
