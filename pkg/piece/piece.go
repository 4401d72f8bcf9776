// Package piece defines the six non-empty Train Tracks piece shapes and the
// static table of unit directions each connects to.
package piece

import "fmt"

// Type is a tagged value drawn from the closed set of track pieces.
type Type int

const (
	Empty Type = iota
	Horizontal
	Vertical
	CornerNE
	CornerNW
	CornerSE
	CornerSW
)

// String returns the canonical piece name, matching the text-format keyword.
func (t Type) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case CornerNE:
		return "CornerNE"
	case CornerNW:
		return "CornerNW"
	case CornerSE:
		return "CornerSE"
	case CornerSW:
		return "CornerSW"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Dir is a unit direction expressed as (row-delta, col-delta).
type Dir struct {
	DR, DC int
}

func (d Dir) Opposite() Dir {
	return Dir{DR: -d.DR, DC: -d.DC}
}

// The four unit directions, named for their row/col delta.
var (
	North = Dir{DR: -1, DC: 0}
	South = Dir{DR: 1, DC: 0}
	West  = Dir{DR: 0, DC: -1}
	East  = Dir{DR: 0, DC: 1}
)

// AllDirections lists the four cardinal unit directions.
var AllDirections = []Dir{North, South, West, East}

// connections maps each non-Empty piece to its exactly-two connection directions.
var connections = map[Type][2]Dir{
	Horizontal: {West, East},
	Vertical:   {North, South},
	CornerNE:   {North, East},
	CornerNW:   {North, West},
	CornerSE:   {South, East},
	CornerSW:   {South, West},
}

// AllPieces lists the six non-Empty piece values, in enum order.
var AllPieces = []Type{Horizontal, Vertical, CornerNE, CornerNW, CornerSE, CornerSW}

// Connections returns the two connection directions for a non-Empty piece.
// Empty returns a nil slice.
func Connections(t Type) []Dir {
	pair, ok := connections[t]
	if !ok {
		return nil
	}
	return []Dir{pair[0], pair[1]}
}

// ConnectsTo reports whether piece t connects in direction dir.
func ConnectsTo(t Type, dir Dir) bool {
	pair, ok := connections[t]
	if !ok {
		return false
	}
	return pair[0] == dir || pair[1] == dir
}

// ByName parses a piece's canonical name, case-insensitively. Used by the
// text loader.
func ByName(name string) (Type, error) {
	for _, t := range append([]Type{Empty}, AllPieces...) {
		if equalFold(t.String(), name) {
			return t, nil
		}
	}
	return Empty, fmt.Errorf("unknown piece name %q", name)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// pieceForDirsTable is the reverse lookup from an unordered direction pair to
// the unique piece connecting exactly those two directions.
var pieceForDirsTable = buildReverseTable()

func buildReverseTable() map[[2]Dir]Type {
	m := make(map[[2]Dir]Type, len(connections)*2)
	for t, pair := range connections {
		m[pair] = t
		m[[2]Dir{pair[1], pair[0]}] = t
	}
	return m
}

// PieceForDirs returns the unique non-Empty piece whose connection set
// equals the unordered pair {d1, d2}. Every pair of distinct unit directions
// maps to a piece; an error is returned when d1 == d2 or when either
// argument is not one of the four unit directions.
func PieceForDirs(d1, d2 Dir) (Type, error) {
	if d1 == d2 {
		return Empty, fmt.Errorf("piece: invalid argument: directions %v and %v are identical", d1, d2)
	}
	if t, ok := pieceForDirsTable[[2]Dir{d1, d2}]; ok {
		return t, nil
	}
	return Empty, fmt.Errorf("piece: invalid argument: no piece connects %v and %v", d1, d2)
}
