package solve

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/loader"
	"github.com/ninelives/traintracks/pkg/progress"
	"github.com/ninelives/traintracks/pkg/render"
	"github.com/ninelives/traintracks/pkg/solver"
	"github.com/ninelives/traintracks/pkg/tracklog"
)

var (
	fileFlag           string
	formatFlag         string
	algoFlag           string
	maxStatesFlag      int
	reportIntervalFlag uint64
	quietFlag          bool
	coordsFlag         bool
)

// solveCmd loads a puzzle and runs one of the three search strategies
// against it.
var solveCmd = &cobra.Command{
	Use:     "solve",
	Aliases: []string{"s"},
	Short:   "Solve a Train Tracks puzzle",
	Long: `Solve a Train Tracks puzzle file with the constrained backtracker
(cb), the path builder (pb), or the A* path solver (as).

Examples:
  traintracks solve --file puzzle.txt
  traintracks solve --file puzzle.json --algo as --max-states 200000
  traintracks solve -f puzzle.txt --algo cb -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if fileFlag == "" {
			return fmt.Errorf("please provide --file")
		}

		p, err := loadPuzzle(fileFlag, formatFlag)
		if err != nil {
			return fmt.Errorf("loading puzzle: %w", err)
		}

		g, err := grid.NewFromPuzzle(p)
		if err != nil {
			return fmt.Errorf("constructing grid: %w", err)
		}

		var sink solver.ProgressSink
		var spin *progress.SpinnerSink
		if !quietFlag {
			spin = progress.NewSpinnerSink(algoFlag, reportIntervalFlag)
			sink = spin
		}

		s, err := newSolver(algoFlag, sink)
		if err != nil {
			return err
		}

		start := time.Now()
		solved := s.Solve(g)
		elapsed := time.Since(start)

		if spin != nil {
			spin.Stop()
		}

		if !solved {
			tracklog.Info("no solution found after %s", elapsed)
			return fmt.Errorf("puzzle is unsolvable by %s", algoFlag)
		}

		tracklog.Info("solved in %s", elapsed)
		render.Grid(cmd.OutOrStdout(), g, coordsFlag)
		return nil
	},
}

func loadPuzzle(path, format string) (grid.Puzzle, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(path), ".json") {
			format = "json"
		} else {
			format = "text"
		}
	}
	switch strings.ToLower(format) {
	case "json":
		return loader.LoadJSONFile(path)
	case "text":
		return loader.LoadTextFile(path)
	default:
		return grid.Puzzle{}, fmt.Errorf("unknown format %q (want \"text\" or \"json\")", format)
	}
}

func newSolver(algo string, sink solver.ProgressSink) (interface {
	Solve(*grid.Grid) bool
}, error) {
	switch strings.ToLower(algo) {
	case "cb", "backtracker", "":
		return solver.NewBacktracker(sink), nil
	case "pb", "pathbuilder":
		return solver.NewPathBuilder(sink), nil
	case "as", "astar":
		as := solver.NewAStar(sink)
		as.MaxStates = maxStatesFlag
		return as, nil
	default:
		return nil, fmt.Errorf("unknown --algo %q (want cb, pb, or as)", algo)
	}
}

func init() {
	solveCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "path to a puzzle file (text or JSON)")
	solveCmd.Flags().StringVar(&formatFlag, "format", "", "input format: text or json (default: inferred from file extension)")
	solveCmd.Flags().StringVarP(&algoFlag, "algo", "a", "pb", "solver to use: cb (backtracker), pb (path builder), as (A*)")
	solveCmd.Flags().IntVar(&maxStatesFlag, "max-states", 0, "bound on A* explored states (0 = unbounded)")
	solveCmd.Flags().Uint64Var(&reportIntervalFlag, "report-interval", 1000, "iterations between progress reports")
	solveCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress the progress spinner")
	solveCmd.Flags().BoolVarP(&coordsFlag, "coords", "c", false, "show row coordinates in the rendered solution")
}

// GetCommand returns the solve command for registration with root.
func GetCommand() *cobra.Command {
	return solveCmd
}
