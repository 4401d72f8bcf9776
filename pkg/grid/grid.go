// Package grid implements the Train Tracks board model: placement
// legality, constraint propagation, connectivity, and state cloning.
package grid

import (
	"fmt"

	"github.com/ninelives/traintracks/pkg/piece"
)

// Point is an immutable (row, col) coordinate.
type Point struct {
	Row, Col int
}

// ManhattanDistance returns |p.Row-o.Row| + |p.Col-o.Col|.
func (p Point) ManhattanDistance(o Point) int {
	return absInt(p.Row-o.Row) + absInt(p.Col-o.Col)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Puzzle is the external input shape: dimensions, per-row/column clue
// counts, and an optional starting board of fixed pieces.
type Puzzle struct {
	GridWidth       int
	GridHeight      int
	HorizontalClues []int // length GridHeight, row piece counts
	VerticalClues   []int // length GridWidth, column piece counts
	StartingGrid    []piece.Type
}

// Grid is the mutable board plus derived counters.
type Grid struct {
	rows, cols int
	board      [][]piece.Type
	rowCounts  []int
	colCounts  []int
	placedRow  []int
	placedCol  []int
	totalCount int
	entry      *Point
	exit       *Point
}

// NewFromPuzzle constructs a Grid from a Puzzle, placing every non-Empty
// starting piece, then derives entry/exit and totalCount.
func NewFromPuzzle(p Puzzle) (*Grid, error) {
	if len(p.HorizontalClues) != p.GridHeight {
		return nil, fmt.Errorf("grid: horizontalClues length %d != gridHeight %d", len(p.HorizontalClues), p.GridHeight)
	}
	if len(p.VerticalClues) != p.GridWidth {
		return nil, fmt.Errorf("grid: verticalClues length %d != gridWidth %d", len(p.VerticalClues), p.GridWidth)
	}
	sumRows, sumCols := 0, 0
	for _, v := range p.HorizontalClues {
		if v < 0 {
			return nil, fmt.Errorf("grid: negative row count %d", v)
		}
		sumRows += v
	}
	for _, v := range p.VerticalClues {
		if v < 0 {
			return nil, fmt.Errorf("grid: negative column count %d", v)
		}
		sumCols += v
	}
	if sumRows != sumCols {
		return nil, fmt.Errorf("grid: sum of row counts (%d) != sum of column counts (%d)", sumRows, sumCols)
	}

	g := &Grid{
		rows:      p.GridHeight,
		cols:      p.GridWidth,
		rowCounts: append([]int(nil), p.HorizontalClues...),
		colCounts: append([]int(nil), p.VerticalClues...),
		placedRow: make([]int, p.GridHeight),
		placedCol: make([]int, p.GridWidth),
	}
	g.board = make([][]piece.Type, g.rows)
	for r := range g.board {
		g.board[r] = make([]piece.Type, g.cols)
	}
	g.totalCount = sumRows

	if p.StartingGrid != nil {
		if len(p.StartingGrid) != g.rows*g.cols {
			return nil, fmt.Errorf("grid: startingGrid length %d != %d*%d", len(p.StartingGrid), g.rows, g.cols)
		}
		for r := 0; r < g.rows; r++ {
			for c := 0; c < g.cols; c++ {
				t := p.StartingGrid[r*g.cols+c]
				if t != piece.Empty {
					g.place(r, c, t)
				}
			}
		}
	}

	entry, exit, err := g.findEntryExit()
	if err != nil {
		return nil, err
	}
	g.entry = entry
	g.exit = exit

	return g, nil
}

// Rows and Cols report the grid dimensions.
func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Entry and Exit report the identified edge cells, if any.
func (g *Grid) Entry() (Point, bool) {
	if g.entry == nil {
		return Point{}, false
	}
	return *g.entry, true
}

func (g *Grid) Exit() (Point, bool) {
	if g.exit == nil {
		return Point{}, false
	}
	return *g.exit, true
}

// TotalCount returns the cached sum of row (== column) counts.
func (g *Grid) TotalCount() int { return g.totalCount }

// RowCount and ColCount return the required piece count for a row/column.
func (g *Grid) RowCount(r int) int { return g.rowCounts[r] }
func (g *Grid) ColCount(c int) int { return g.colCounts[c] }

// At returns the piece currently at (r,c). Callers must ensure in-bounds.
func (g *Grid) At(r, c int) piece.Type { return g.board[r][c] }

// InBounds reports whether (r,c) is within the grid.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// OnEdge reports whether (r,c) lies on the outer border of the grid.
func (g *Grid) OnEdge(r, c int) bool {
	return r == 0 || r == g.rows-1 || c == 0 || c == g.cols-1
}

// IsEmpty and IsFilled query cell occupancy.
func (g *Grid) IsEmpty(r, c int) bool  { return g.board[r][c] == piece.Empty }
func (g *Grid) IsFilled(r, c int) bool { return g.board[r][c] != piece.Empty }

// TrackCountInRow / TrackCountInCol read the placed counters in O(1).
func (g *Grid) TrackCountInRow(r int) int { return g.placedRow[r] }
func (g *Grid) TrackCountInCol(c int) int { return g.placedCol[c] }

// CanPlace reports whether piece t may legally be placed at (r,c).
func (g *Grid) CanPlace(r, c int, t piece.Type) bool {
	if t == piece.Empty {
		return false
	}
	if !g.InBounds(r, c) || !g.IsEmpty(r, c) {
		return false
	}
	if g.placedRow[r] >= g.rowCounts[r] || g.placedCol[c] >= g.colCounts[c] {
		return false
	}
	if !edgeRuleOK(r, c, g.rows, g.cols, t) {
		return false
	}

	hasNeighbour := false
	hasMatch := false
	for _, d := range piece.AllDirections {
		nr, nc := r+d.DR, c+d.DC
		if !g.InBounds(nr, nc) {
			continue
		}
		neighbourPiece := g.board[nr][nc]
		if neighbourPiece == piece.Empty {
			continue
		}
		hasNeighbour = true
		candidateConnects := piece.ConnectsTo(t, d)
		neighbourConnects := piece.ConnectsTo(neighbourPiece, d.Opposite())
		if candidateConnects != neighbourConnects {
			return false
		}
		if candidateConnects && neighbourConnects {
			hasMatch = true
		}
	}
	if hasNeighbour && !hasMatch {
		return false
	}

	for _, d := range piece.Connections(t) {
		nr, nc := r+d.DR, c+d.DC
		if !g.InBounds(nr, nc) {
			return false
		}
		if g.IsEmpty(nr, nc) {
			if d.DR == 0 {
				if g.placedCol[nc]+1 > g.colCounts[nc] {
					return false
				}
			} else {
				if g.placedRow[nr]+1 > g.rowCounts[nr] {
					return false
				}
			}
		}
	}

	return true
}

// edgeRuleOK rejects pieces that would connect off-grid on a border cell.
func edgeRuleOK(r, c, rows, cols int, t piece.Type) bool {
	if r == 0 && (t == piece.Vertical || t == piece.CornerNW || t == piece.CornerNE) {
		return false
	}
	if r == rows-1 && (t == piece.Vertical || t == piece.CornerSW || t == piece.CornerSE) {
		return false
	}
	if c == 0 && (t == piece.Horizontal || t == piece.CornerNW || t == piece.CornerSW) {
		return false
	}
	if c == cols-1 && (t == piece.Horizontal || t == piece.CornerNE || t == piece.CornerSE) {
		return false
	}
	return true
}

// Place writes a non-Empty piece into an empty cell and updates counters.
// Panics on misuse (Empty piece, out of bounds, or already filled) since
// these conditions must never occur during correct search.
func (g *Grid) Place(r, c int, t piece.Type) {
	if t == piece.Empty {
		panic("grid: Place called with Empty piece")
	}
	if !g.InBounds(r, c) {
		panic(fmt.Sprintf("grid: Place(%d,%d) out of bounds", r, c))
	}
	if g.IsFilled(r, c) {
		panic(fmt.Sprintf("grid: Place(%d,%d) on already-filled cell", r, c))
	}
	g.place(r, c, t)
}

// place is the unchecked internal write used by NewFromPuzzle and Place.
func (g *Grid) place(r, c int, t piece.Type) {
	g.board[r][c] = t
	g.placedRow[r]++
	g.placedCol[c]++
}

// Remove clears a cell if non-Empty and decrements counters. A no-op on an
// already-Empty cell.
func (g *Grid) Remove(r, c int) {
	if g.board[r][c] == piece.Empty {
		return
	}
	g.board[r][c] = piece.Empty
	g.placedRow[r]--
	g.placedCol[c]--
}

// GetLegalPieces returns the non-Empty pieces that CanPlace accepts at
// (r,c), in enum order (deterministic for a given grid state).
func (g *Grid) GetLegalPieces(r, c int) []piece.Type {
	var out []piece.Type
	for _, t := range piece.AllPieces {
		if g.CanPlace(r, c, t) {
			out = append(out, t)
		}
	}
	return out
}

// CanStillSatisfy is a feasibility prune: true iff every row/column can
// still reach its required count given currently-empty cells.
func (g *Grid) CanStillSatisfy() bool {
	for r := 0; r < g.rows; r++ {
		if g.placedRow[r] > g.rowCounts[r] {
			return false
		}
		emptyInRow := 0
		for c := 0; c < g.cols; c++ {
			if g.IsEmpty(r, c) {
				emptyInRow++
			}
		}
		if g.rowCounts[r] > g.placedRow[r]+emptyInRow {
			return false
		}
	}
	for c := 0; c < g.cols; c++ {
		if g.placedCol[c] > g.colCounts[c] {
			return false
		}
		emptyInCol := 0
		for r := 0; r < g.rows; r++ {
			if g.IsEmpty(r, c) {
				emptyInCol++
			}
		}
		if g.colCounts[c] > g.placedCol[c]+emptyInCol {
			return false
		}
	}
	return true
}

// TrackCountsMatch is true iff every row and column has placed == required.
func (g *Grid) TrackCountsMatch() bool {
	for r := 0; r < g.rows; r++ {
		if g.placedRow[r] != g.rowCounts[r] {
			return false
		}
	}
	for c := 0; c < g.cols; c++ {
		if g.placedCol[c] != g.colCounts[c] {
			return false
		}
	}
	return true
}

// IsSingleConnectedPath reports whether the non-Empty cells form exactly one
// connected component under the "both cells connect to each other" relation.
func (g *Grid) IsSingleConnectedPath() bool {
	var start *Point
	total := 0
	for r := 0; r < g.rows && start == nil; r++ {
		for c := 0; c < g.cols; c++ {
			if g.IsFilled(r, c) {
				p := Point{Row: r, Col: c}
				start = &p
				break
			}
		}
	}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.IsFilled(r, c) {
				total++
			}
		}
	}
	if start == nil {
		return false
	}

	visited := map[Point]bool{*start: true}
	stack := []Point{*start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t := g.board[cur.Row][cur.Col]
		for _, d := range piece.Connections(t) {
			nr, nc := cur.Row+d.DR, cur.Col+d.DC
			if !g.InBounds(nr, nc) || g.IsEmpty(nr, nc) {
				continue
			}
			np := Point{Row: nr, Col: nc}
			if visited[np] {
				continue
			}
			neighbourPiece := g.board[nr][nc]
			if !piece.ConnectsTo(neighbourPiece, d.Opposite()) {
				continue
			}
			visited[np] = true
			stack = append(stack, np)
		}
	}
	return len(visited) == total
}

// Clone returns a deep copy of the grid, including entry/exit/totalCount.
func (g *Grid) Clone() *Grid {
	n := &Grid{
		rows:       g.rows,
		cols:       g.cols,
		rowCounts:  append([]int(nil), g.rowCounts...),
		colCounts:  append([]int(nil), g.colCounts...),
		placedRow:  append([]int(nil), g.placedRow...),
		placedCol:  append([]int(nil), g.placedCol...),
		totalCount: g.totalCount,
	}
	n.board = make([][]piece.Type, g.rows)
	for r := range g.board {
		n.board[r] = append([]piece.Type(nil), g.board[r]...)
	}
	if g.entry != nil {
		e := *g.entry
		n.entry = &e
	}
	if g.exit != nil {
		e := *g.exit
		n.exit = &e
	}
	return n
}

// CopyTo overwrites other's board and counters in place with g's state.
// Requires identical dimensions.
func (g *Grid) CopyTo(other *Grid) {
	if g.rows != other.rows || g.cols != other.cols {
		panic("grid: CopyTo dimension mismatch")
	}
	for r := 0; r < g.rows; r++ {
		copy(other.board[r], g.board[r])
	}
	copy(other.rowCounts, g.rowCounts)
	copy(other.colCounts, g.colCounts)
	copy(other.placedRow, g.placedRow)
	copy(other.placedCol, g.placedCol)
	other.totalCount = g.totalCount
	if g.entry != nil {
		e := *g.entry
		other.entry = &e
	} else {
		other.entry = nil
	}
	if g.exit != nil {
		e := *g.exit
		other.exit = &e
	} else {
		other.exit = nil
	}
}

// FixedPoints returns all currently non-Empty cells in row-major order.
func (g *Grid) FixedPoints() []Point {
	var out []Point
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.IsFilled(r, c) {
				out = append(out, Point{Row: r, Col: c})
			}
		}
	}
	return out
}

// FindEntryExit re-scans the current board for entry/exit candidate cells.
// Exposed so callers (e.g. loaders reconstructing a puzzle from a solved
// board) can re-derive entry/exit without reconstructing the Grid.
func (g *Grid) FindEntryExit() (Point, Point, error) {
	e, x, err := g.findEntryExit()
	if err != nil {
		return Point{}, Point{}, err
	}
	if e == nil || x == nil {
		return Point{}, Point{}, fmt.Errorf("grid: no entry/exit candidates found")
	}
	return *e, *x, nil
}

// findEntryExit scans the border for cells whose single connection leaves
// the grid. Two such cells yield entry and exit; a board with none is
// accepted and leaves both unset; any other count is an error.
func (g *Grid) findEntryExit() (*Point, *Point, error) {
	var found []Point
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if !g.OnEdge(r, c) || g.IsEmpty(r, c) {
				continue
			}
			t := g.board[r][c]
			offGrid := 0
			for _, d := range piece.Connections(t) {
				if !g.InBounds(r+d.DR, c+d.DC) {
					offGrid++
				}
			}
			if offGrid == 1 {
				found = append(found, Point{Row: r, Col: c})
			}
		}
	}
	if len(found) == 0 {
		return nil, nil, nil
	}
	if len(found) != 2 {
		return nil, nil, fmt.Errorf("grid: puzzle not well-formed: found %d entry/exit candidate cells, want 2", len(found))
	}
	return &found[0], &found[1], nil
}
