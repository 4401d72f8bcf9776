// Package generator produces random, solver-validated Train Tracks puzzles:
// it carves a single random path across the grid, derives row/column clues
// from that hidden solution, and reveals a subset of the path as fixed
// clues before handing the candidate to the path builder for confirmation.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
	"github.com/ninelives/traintracks/pkg/solver"
	"github.com/ninelives/traintracks/pkg/tracklog"
)

const (
	defaultMaxAttempts    = 25
	defaultRevealFraction = 0.3
	exitProbability       = 0.15
)

// Options configures random puzzle generation.
type Options struct {
	Width, Height int
	Seed          int64

	// RevealFraction is the probability, in [0,1], that an interior path
	// cell (excluding entry and exit, which are always revealed) is kept
	// as a fixed clue. Zero defaults to 0.3.
	RevealFraction float64

	// MaxAttempts bounds retries after a dead-end walk or a candidate that
	// fails solver validation. Zero defaults to 25.
	MaxAttempts int
}

// Generate produces a puzzle whose hidden solution is a single random path
// from one grid edge to another, honoring Train Tracks adjacency rules.
// The returned puzzle is confirmed solvable by the path builder before it
// is returned.
func Generate(opts Options) (grid.Puzzle, error) {
	if opts.Width < 2 || opts.Height < 2 || (opts.Width < 3 && opts.Height < 3) {
		return grid.Puzzle{}, fmt.Errorf("generator: need at least one dimension >= 3 and both >= 2, got %dx%d", opts.Width, opts.Height)
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		p, err := tryGenerate(opts, rng)
		if err == nil {
			return p, nil
		}
		lastErr = err
		tracklog.Verbose("generator: attempt %d/%d failed: %v", attempt+1, maxAttempts, err)
	}
	return grid.Puzzle{}, fmt.Errorf("generator: exhausted %d attempts: %w", maxAttempts, lastErr)
}

func tryGenerate(opts Options, rng *rand.Rand) (grid.Puzzle, error) {
	path, dirs, err := walkRandomPath(opts.Width, opts.Height, rng)
	if err != nil {
		return grid.Puzzle{}, err
	}

	pieces, err := piecesAlongPath(path, dirs, opts.Width, opts.Height)
	if err != nil {
		return grid.Puzzle{}, err
	}

	rowCounts := make([]int, opts.Height)
	colCounts := make([]int, opts.Width)
	for _, p := range path {
		rowCounts[p.Row]++
		colCounts[p.Col]++
	}

	starting := make([]piece.Type, opts.Width*opts.Height)
	for _, idx := range chooseRevealed(path, opts.RevealFraction, rng) {
		p := path[idx]
		starting[p.Row*opts.Width+p.Col] = pieces[idx]
	}

	puzzle := grid.Puzzle{
		GridWidth:       opts.Width,
		GridHeight:      opts.Height,
		HorizontalClues: rowCounts,
		VerticalClues:   colCounts,
		StartingGrid:    starting,
	}

	g, err := grid.NewFromPuzzle(puzzle)
	if err != nil {
		return grid.Puzzle{}, fmt.Errorf("generator: constructing candidate grid: %w", err)
	}
	if !solver.NewPathBuilder(nil).Solve(g) {
		return grid.Puzzle{}, fmt.Errorf("generator: candidate puzzle was not solvable after reveal")
	}
	return puzzle, nil
}

// walkRandomPath carves a random simple path from a non-corner edge cell to
// another, moving one cell at a time with no immediate reversal, and with a
// fixed chance (exitProbability) of stopping at each valid edge cell once a
// minimum length is reached.
func walkRandomPath(w, h int, rng *rand.Rand) ([]grid.Point, []piece.Dir, error) {
	minLen := (w + h) / 2
	if minLen < 3 {
		minLen = 3
	}
	maxLen := w * h

	entry, err := randomEdgeCell(w, h, rng)
	if err != nil {
		return nil, nil, err
	}

	pos := entry
	path := []grid.Point{pos}
	var dirs []piece.Dir
	visited := map[grid.Point]bool{pos: true}
	var lastMove piece.Dir
	haveLastMove := false

	for len(path) < maxLen {
		if len(path) > 1 && len(path) >= minLen && canBeExit(pos, w, h) && rng.Float64() < exitProbability {
			return path, dirs, nil
		}

		candidates := shuffledDirections(rng)
		moved := false
		for _, d := range candidates {
			if haveLastMove && d == lastMove.Opposite() {
				continue
			}
			next := grid.Point{Row: pos.Row + d.DR, Col: pos.Col + d.DC}
			if next.Row < 0 || next.Row >= h || next.Col < 0 || next.Col >= w || visited[next] {
				continue
			}
			pos = next
			path = append(path, pos)
			dirs = append(dirs, d)
			visited[pos] = true
			lastMove = d
			haveLastMove = true
			moved = true
			break
		}
		if !moved {
			break
		}
	}

	if len(path) > 1 && len(path) >= minLen && canBeExit(pos, w, h) {
		return path, dirs, nil
	}
	return nil, nil, fmt.Errorf("walk of length %d did not end on a usable exit cell", len(path))
}

func randomEdgeCell(w, h int, rng *rand.Rand) (grid.Point, error) {
	var candidates []grid.Point
	for c := 0; c < w; c++ {
		for _, r := range []int{0, h - 1} {
			p := grid.Point{Row: r, Col: c}
			if !isCorner(p, w, h) {
				candidates = append(candidates, p)
			}
		}
	}
	for r := 0; r < h; r++ {
		for _, c := range []int{0, w - 1} {
			p := grid.Point{Row: r, Col: c}
			if !isCorner(p, w, h) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return grid.Point{}, fmt.Errorf("generator: no non-corner edge cell available for a %dx%d grid", w, h)
	}
	return candidates[rng.Intn(len(candidates))], nil
}

func shuffledDirections(rng *rand.Rand) []piece.Dir {
	out := append([]piece.Dir(nil), piece.AllDirections...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func isCorner(p grid.Point, w, h int) bool {
	return (p.Row == 0 || p.Row == h-1) && (p.Col == 0 || p.Col == w-1)
}

func isEdgeCell(p grid.Point, w, h int) bool {
	return p.Row == 0 || p.Row == h-1 || p.Col == 0 || p.Col == w-1
}

func canBeExit(p grid.Point, w, h int) bool {
	return isEdgeCell(p, w, h) && !isCorner(p, w, h)
}

// offGridDirection returns the single direction that leaves the grid from a
// non-corner edge cell.
func offGridDirection(p grid.Point, w, h int) piece.Dir {
	switch {
	case p.Row == 0:
		return piece.North
	case p.Row == h-1:
		return piece.South
	case p.Col == 0:
		return piece.West
	default:
		return piece.East
	}
}

// piecesAlongPath assigns a piece type to every cell of path given the
// sequence of move directions between consecutive cells.
func piecesAlongPath(path []grid.Point, dirs []piece.Dir, w, h int) ([]piece.Type, error) {
	n := len(path)
	if n < 2 || len(dirs) != n-1 {
		return nil, fmt.Errorf("generator: malformed path of %d cells and %d moves", n, len(dirs))
	}

	pieces := make([]piece.Type, n)

	entryOff := offGridDirection(path[0], w, h)
	p0, err := piece.PieceForDirs(entryOff, dirs[0])
	if err != nil {
		return nil, fmt.Errorf("generator: entry piece: %w", err)
	}
	pieces[0] = p0

	for i := 1; i < n-1; i++ {
		incoming := dirs[i-1].Opposite()
		p, err := piece.PieceForDirs(incoming, dirs[i])
		if err != nil {
			return nil, fmt.Errorf("generator: piece at step %d: %w", i, err)
		}
		pieces[i] = p
	}

	exitOff := offGridDirection(path[n-1], w, h)
	incomingLast := dirs[n-2].Opposite()
	pLast, err := piece.PieceForDirs(incomingLast, exitOff)
	if err != nil {
		return nil, fmt.Errorf("generator: exit piece: %w", err)
	}
	pieces[n-1] = pLast

	return pieces, nil
}

// chooseRevealed returns the indices of path cells to expose as fixed
// clues: entry and exit always, interior cells independently with
// probability fraction (default 0.3 when fraction is not in (0,1]).
func chooseRevealed(path []grid.Point, fraction float64, rng *rand.Rand) []int {
	if fraction <= 0 || fraction > 1 {
		fraction = defaultRevealFraction
	}
	revealed := []int{0}
	for i := 1; i < len(path)-1; i++ {
		if rng.Float64() < fraction {
			revealed = append(revealed, i)
		}
	}
	revealed = append(revealed, len(path)-1)
	return revealed
}
