package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
)

func samplePuzzle() grid.Puzzle {
	start := make([]piece.Type, 9)
	start[0*3+1] = piece.Vertical
	start[2*3+1] = piece.Vertical
	return grid.Puzzle{
		GridWidth:       3,
		GridHeight:      3,
		HorizontalClues: []int{1, 1, 1},
		VerticalClues:   []int{0, 3, 0},
		StartingGrid:    start,
	}
}

func TestParseTextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, samplePuzzle()); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	got, err := ParseText(&buf)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	assertPuzzleEqual(t, got, samplePuzzle())
}

func TestParseTextIgnoresCommentsAndBlankLines(t *testing.T) {
	src := `
# a train tracks puzzle
WIDTH: 3
HEIGHT: 3

ROWS: 1 1 1
COLS: 0 3 0
FIXED: 0,1 Vertical
FIXED: 2,1 Vertical
`
	got, err := ParseText(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	assertPuzzleEqual(t, got, samplePuzzle())
}

func TestParseTextRejectsMissingDirective(t *testing.T) {
	src := "WIDTH: 3\nHEIGHT: 3\nROWS: 1 1 1\n"
	if _, err := ParseText(strings.NewReader(src)); err == nil {
		t.Fatalf("expected error for missing COLS")
	}
}

func TestParseTextRejectsOutOfBoundsFixed(t *testing.T) {
	src := "WIDTH: 3\nHEIGHT: 3\nROWS: 1 1 1\nCOLS: 0 3 0\nFIXED: 9,9 Vertical\n"
	if _, err := ParseText(strings.NewReader(src)); err == nil {
		t.Fatalf("expected error for out-of-bounds FIXED cell")
	}
}

func TestParseTextRejectsUnknownPieceName(t *testing.T) {
	src := "WIDTH: 3\nHEIGHT: 3\nROWS: 1 1 1\nCOLS: 0 3 0\nFIXED: 0,1 Diagonal\n"
	if _, err := ParseText(strings.NewReader(src)); err == nil {
		t.Fatalf("expected error for unknown piece name")
	}
}

func TestParseJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, samplePuzzle()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ParseJSON(&buf)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	assertPuzzleEqual(t, got, samplePuzzle())
}

func TestParseJSONRejectsOutOfBoundsFixed(t *testing.T) {
	src := `{"width":3,"height":3,"rows":[1,1,1],"cols":[0,3,0],"fixed":[{"row":9,"col":9,"piece":"Vertical"}]}`
	if _, err := ParseJSON(strings.NewReader(src)); err == nil {
		t.Fatalf("expected error for out-of-bounds fixed cell")
	}
}

func assertPuzzleEqual(t *testing.T, got, want grid.Puzzle) {
	t.Helper()
	if got.GridWidth != want.GridWidth || got.GridHeight != want.GridHeight {
		t.Fatalf("dimensions = %dx%d, want %dx%d", got.GridWidth, got.GridHeight, want.GridWidth, want.GridHeight)
	}
	if !intSliceEqual(got.HorizontalClues, want.HorizontalClues) {
		t.Fatalf("HorizontalClues = %v, want %v", got.HorizontalClues, want.HorizontalClues)
	}
	if !intSliceEqual(got.VerticalClues, want.VerticalClues) {
		t.Fatalf("VerticalClues = %v, want %v", got.VerticalClues, want.VerticalClues)
	}
	if len(got.StartingGrid) != len(want.StartingGrid) {
		t.Fatalf("StartingGrid length = %d, want %d", len(got.StartingGrid), len(want.StartingGrid))
	}
	for i := range want.StartingGrid {
		if got.StartingGrid[i] != want.StartingGrid[i] {
			t.Fatalf("StartingGrid[%d] = %v, want %v", i, got.StartingGrid[i], want.StartingGrid[i])
		}
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
