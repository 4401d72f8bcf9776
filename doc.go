// Package main provides the traintracks CLI: a solver, generator, and
// benchmark tool for the Train Tracks logic puzzle.
//
// # Overview
//
// Train Tracks is a grid puzzle: complete a single continuous track from
// one edge of the grid to another, placing straight and corner pieces so
// that every row and column holds exactly as many track cells as its clue
// says, and every fixed clue already on the board is honored.
//
// traintracks provides three independent search strategies over the same
// grid model (pkg/grid, pkg/piece):
//
//   - cb — a constrained backtracker choosing the empty cell with the
//     fewest legal pieces at each step (minimum-remaining-values).
//   - pb — a path builder that grows a single chain outward from the
//     grid's entry cell, one connection at a time.
//   - as — an A* best-first search over cloned grid/path states, guided by
//     a minimum-spanning-tree-plus-distance heuristic.
//
// All three implement the same pkg/solver.Solve(*grid.Grid) bool contract
// and report progress through the same ProgressSink interface.
//
// # Commands
//
// ## solve
//
//	traintracks solve --file puzzle.txt --algo pb
//	traintracks solve --file puzzle.json --algo as --max-states 200000
//
// Loads a puzzle (text or JSON, inferred from the file extension unless
// --format is given), runs the chosen solver, and prints the solved board.
//
// ## generate
//
//	traintracks generate --width 10 --height 10 --seed 42 --out puzzle.json
//
// Carves a random single path across the grid, derives row/column clues
// from it, reveals a subset of it as fixed clues, and confirms the result
// is solvable by the path builder before writing it out.
//
// ## bench
//
//	traintracks bench --max-states 200000
//
// Runs all three solvers against the fixed worked examples (straight
// vertical, outer L, long horizontal line, and an asymmetric puzzle),
// printing iteration counts and wall-clock time for each.
//
// # Global flags
//
//	-v, --verbose     enable verbose logging
//	    --log-file     append log output to this file as well as stdout/stderr
//
// # Package layout
//
//	pkg/piece      - the six track piece shapes and their connections
//	pkg/grid       - the puzzle board: placement legality and path checks
//	pkg/solver     - the three search strategies and the progress surface
//	pkg/loader     - text and JSON puzzle file formats
//	pkg/generator  - random solver-validated puzzle generation
//	pkg/render     - terminal board rendering
//	pkg/progress   - a spinner-backed ProgressSink
//	pkg/tracklog   - the logging helpers the rest of the tree calls through
//	cmd/           - the cobra command tree (solve, generate, bench)
package main
