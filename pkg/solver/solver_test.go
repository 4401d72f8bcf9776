package solver

import (
	"testing"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
)

func mustGrid(t *testing.T, p grid.Puzzle) *grid.Grid {
	t.Helper()
	g, err := grid.NewFromPuzzle(p)
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	return g
}

func straightVerticalPuzzle() grid.Puzzle {
	start := make([]piece.Type, 9)
	start[0*3+1] = piece.Vertical
	start[2*3+1] = piece.Vertical
	return grid.Puzzle{
		GridWidth: 3, GridHeight: 3,
		HorizontalClues: []int{1, 1, 1},
		VerticalClues:   []int{0, 3, 0},
		StartingGrid:    start,
	}
}

func outerLPuzzle() grid.Puzzle {
	w, h := 5, 5
	start := make([]piece.Type, w*h)
	start[0*w+0] = piece.CornerNE
	start[4*w+4] = piece.CornerNE
	return grid.Puzzle{
		GridWidth: w, GridHeight: h,
		HorizontalClues: []int{5, 1, 1, 1, 1},
		VerticalClues:   []int{1, 1, 1, 1, 5},
		StartingGrid:    start,
	}
}

func horizontalLinePuzzle() grid.Puzzle {
	w, h := 10, 10
	start := make([]piece.Type, w*h)
	start[5*w+0] = piece.Horizontal
	start[5*w+9] = piece.Horizontal
	rows := []int{0, 0, 0, 0, 0, 10, 0, 0, 0, 0}
	cols := make([]int, 10)
	for i := range cols {
		cols[i] = 1
	}
	return grid.Puzzle{
		GridWidth: w, GridHeight: h,
		HorizontalClues: rows,
		VerticalClues:   cols,
		StartingGrid:    start,
	}
}

func asymmetricPuzzle() grid.Puzzle {
	w, h := 9, 7
	start := make([]piece.Type, w*h)
	set := func(r, c int, t piece.Type) { start[r*w+c] = t }
	set(0, 6, piece.CornerSW)
	set(3, 4, piece.CornerSW)
	set(4, 4, piece.Vertical)
	set(4, 0, piece.Horizontal)
	set(6, 2, piece.CornerSE)
	return grid.Puzzle{
		GridWidth:       w,
		GridHeight:      h,
		HorizontalClues: []int{2, 7, 5, 4, 8, 3, 2},
		VerticalClues:   []int{1, 1, 5, 6, 5, 4, 3, 4, 2},
		StartingGrid:    start,
	}
}

func unsolvablePuzzle() grid.Puzzle {
	start := make([]piece.Type, 9)
	start[0*3+0] = piece.Horizontal
	start[2*3+2] = piece.Horizontal
	return grid.Puzzle{
		GridWidth: 3, GridHeight: 3,
		HorizontalClues: []int{1, 1, 1},
		VerticalClues:   []int{1, 1, 1},
		StartingGrid:    start,
	}
}

func TestBacktrackerSolvesStraightVertical(t *testing.T) {
	g := mustGrid(t, straightVerticalPuzzle())
	if !NewBacktracker(nil).Solve(g) {
		t.Fatalf("expected CB to solve the straight-vertical puzzle")
	}
	assertSolved(t, g)
	if g.At(1, 1) != piece.Vertical {
		t.Fatalf("expected (1,1) to be Vertical, got %v", g.At(1, 1))
	}
}

func TestPathBuilderSolvesStraightVertical(t *testing.T) {
	g := mustGrid(t, straightVerticalPuzzle())
	if !NewPathBuilder(nil).Solve(g) {
		t.Fatalf("expected PB to solve the straight-vertical puzzle")
	}
	assertSolved(t, g)
}

func TestAStarSolvesStraightVertical(t *testing.T) {
	g := mustGrid(t, straightVerticalPuzzle())
	if !NewAStar(nil).Solve(g) {
		t.Fatalf("expected AS to solve the straight-vertical puzzle")
	}
	assertSolved(t, g)
}

func TestBacktrackerSolvesOuterL(t *testing.T) {
	g := mustGrid(t, outerLPuzzle())
	if !NewBacktracker(nil).Solve(g) {
		t.Fatalf("expected CB to solve the outer-L puzzle")
	}
	assertSolved(t, g)
}

func TestPathBuilderSolvesOuterL(t *testing.T) {
	g := mustGrid(t, outerLPuzzle())
	if !NewPathBuilder(nil).Solve(g) {
		t.Fatalf("expected PB to solve the outer-L puzzle")
	}
	assertSolved(t, g)
}

func TestAStarSolvesOuterL(t *testing.T) {
	g := mustGrid(t, outerLPuzzle())
	if !NewAStar(nil).Solve(g) {
		t.Fatalf("expected AS to solve the outer-L puzzle")
	}
	assertSolved(t, g)
}

func TestBacktrackerSolvesHorizontalLine(t *testing.T) {
	g := mustGrid(t, horizontalLinePuzzle())
	if !NewBacktracker(nil).Solve(g) {
		t.Fatalf("expected CB to solve the horizontal-line puzzle")
	}
	assertSolved(t, g)
	for c := 0; c < 10; c++ {
		if g.At(5, c) != piece.Horizontal {
			t.Fatalf("expected row 5 all Horizontal, (5,%d)=%v", c, g.At(5, c))
		}
	}
}

func TestPathBuilderSolvesHorizontalLine(t *testing.T) {
	g := mustGrid(t, horizontalLinePuzzle())
	if !NewPathBuilder(nil).Solve(g) {
		t.Fatalf("expected PB to solve the horizontal-line puzzle")
	}
	assertSolved(t, g)
}

func TestAStarSolvesHorizontalLine(t *testing.T) {
	g := mustGrid(t, horizontalLinePuzzle())
	if !NewAStar(nil).Solve(g) {
		t.Fatalf("expected AS to solve the horizontal-line puzzle")
	}
	assertSolved(t, g)
}

func TestAllSolversSolveAsymmetricPuzzle(t *testing.T) {
	for name, makeSolver := range map[string]func() interface{ Solve(*grid.Grid) bool }{
		"CB": func() interface{ Solve(*grid.Grid) bool } { return NewBacktracker(nil) },
		"PB": func() interface{ Solve(*grid.Grid) bool } { return NewPathBuilder(nil) },
		"AS": func() interface{ Solve(*grid.Grid) bool } { return NewAStar(nil) },
	} {
		t.Run(name, func(t *testing.T) {
			g := mustGrid(t, asymmetricPuzzle())
			if !makeSolver().Solve(g) {
				t.Fatalf("%s: expected the asymmetric puzzle to be solved", name)
			}
			assertSolved(t, g)
		})
	}
}

func TestAllSolversFailOnUnsolvablePuzzleAndRestoreState(t *testing.T) {
	for name, makeSolver := range map[string]func() interface{ Solve(*grid.Grid) bool }{
		"CB": func() interface{ Solve(*grid.Grid) bool } { return NewBacktracker(nil) },
		"PB": func() interface{ Solve(*grid.Grid) bool } { return NewPathBuilder(nil) },
		"AS": func() interface{ Solve(*grid.Grid) bool } { return NewAStar(nil) },
	} {
		t.Run(name, func(t *testing.T) {
			g := mustGrid(t, unsolvablePuzzle())
			before := g.Clone()
			if makeSolver().Solve(g) {
				t.Fatalf("%s: expected failure on unsolvable puzzle", name)
			}
			if !gridStateEqual(g, before) {
				t.Fatalf("%s: grid state was not restored after failed solve", name)
			}
		})
	}
}

func TestPieceForDirsRoundTrip(t *testing.T) {
	pairs := [][2]piece.Dir{
		{piece.North, piece.East},
		{piece.North, piece.West},
		{piece.South, piece.East},
		{piece.South, piece.West},
		{piece.North, piece.South},
		{piece.West, piece.East},
	}
	for _, pr := range pairs {
		p, err := piece.PieceForDirs(pr[0], pr[1])
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", pr, err)
		}
		if !piece.ConnectsTo(p, pr[0]) || !piece.ConnectsTo(p, pr[1]) {
			t.Fatalf("piece %v does not connect to both %v", p, pr)
		}
	}
}

func TestPieceForDirsRejectsDegenerate(t *testing.T) {
	if _, err := piece.PieceForDirs(piece.North, piece.North); err == nil {
		t.Fatalf("expected error for identical directions")
	}
}

func assertSolved(t *testing.T, g *grid.Grid) {
	t.Helper()
	if !g.TrackCountsMatch() {
		t.Fatalf("solved grid should have matching track counts")
	}
	if !g.IsSingleConnectedPath() {
		t.Fatalf("solved grid should be a single connected path")
	}
}

func gridStateEqual(a, b *grid.Grid) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	for r := 0; r < a.Rows(); r++ {
		for c := 0; c < a.Cols(); c++ {
			if a.At(r, c) != b.At(r, c) {
				return false
			}
		}
	}
	return true
}
