package bench

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
	"github.com/ninelives/traintracks/pkg/solver"
	"github.com/ninelives/traintracks/pkg/tracklog"
)

var maxStatesFlag int

// benchCmd runs all three solvers against the corpus's fixed scenarios and
// prints per-solver iteration counts and wall-clock time. It mirrors the
// measurements root-level benchmark_test.go makes under `go test -bench`,
// but as a standalone command that needs no test harness to run.
var benchCmd = &cobra.Command{
	Use:     "bench",
	Aliases: []string{"b"},
	Short:   "Benchmark the three solvers against fixed scenarios",
	Long: `Benchmark the constrained backtracker (CB), path builder (PB), and
A* path solver (AS) against the built-in set of Train Tracks scenarios,
printing iterations and wall-clock time for each.

Examples:
  traintracks bench
  traintracks bench --max-states 200000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, sc := range scenarios() {
			fmt.Fprintf(w, "%s (%dx%d):\n", sc.name, sc.puzzle.GridWidth, sc.puzzle.GridHeight)
			for _, algo := range []string{"cb", "pb", "as"} {
				g, err := grid.NewFromPuzzle(sc.puzzle)
				if err != nil {
					return fmt.Errorf("%s: constructing grid: %w", sc.name, err)
				}

				s, iterations := newCountingSolver(algo)
				start := time.Now()
				solved := s.Solve(g)
				elapsed := time.Since(start)

				tracklog.Verbose("%s/%s: solved=%v elapsed=%s", sc.name, algo, solved, elapsed)
				fmt.Fprintf(w, "  %-3s solved=%-5v iterations=%-8d elapsed=%s\n", algo, solved, iterations(), elapsed)
			}
		}
		return nil
	},
}

// newCountingSolver returns a solver and a closure reading back its
// iteration count once Solve has run.
func newCountingSolver(algo string) (interface{ Solve(*grid.Grid) bool }, func() uint64) {
	switch algo {
	case "pb":
		s := solver.NewPathBuilder(nil)
		return s, s.Iterations
	case "as":
		s := solver.NewAStar(nil)
		s.MaxStates = maxStatesFlag
		return s, s.Iterations
	default:
		s := solver.NewBacktracker(nil)
		return s, s.Iterations
	}
}

type scenario struct {
	name   string
	puzzle grid.Puzzle
}

// scenarios returns the fixed worked examples: straight vertical, outer-L,
// a long horizontal line, and the asymmetric 9x7 puzzle.
func scenarios() []scenario {
	return []scenario{
		{name: "straight-vertical", puzzle: straightVerticalPuzzle()},
		{name: "outer-L", puzzle: outerLPuzzle()},
		{name: "horizontal-line", puzzle: horizontalLinePuzzle()},
		{name: "asymmetric", puzzle: asymmetricPuzzle()},
	}
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
		GridWidth: w, GridHeight: h,
		HorizontalClues: []int{2, 7, 5, 4, 8, 3, 2},
		VerticalClues:   []int{1, 1, 5, 6, 5, 4, 3, 4, 2},
		StartingGrid:    start,
	}
}

func init() {
	benchCmd.Flags().IntVar(&maxStatesFlag, "max-states", 0, "bound on A* explored states (0 = unbounded)")
}

// GetCommand returns the bench command for registration with root.
func GetCommand() *cobra.Command {
	return benchCmd
}
