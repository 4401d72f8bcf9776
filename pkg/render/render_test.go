package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
)

func TestGridRendersBorderedBoard(t *testing.T) {
	start := make([]piece.Type, 9)
	start[0*3+1] = piece.Vertical
	start[2*3+1] = piece.Vertical
	g, err := grid.NewFromPuzzle(grid.Puzzle{
		GridWidth: 3, GridHeight: 3,
		HorizontalClues: []int{1, 1, 1},
		VerticalClues:   []int{0, 3, 0},
		StartingGrid:    start,
	})
	if err != nil {
		t.Fatalf("NewFromPuzzle: %v", err)
	}

	var buf bytes.Buffer
	Grid(&buf, g, true)
	out := buf.String()

	if !strings.Contains(out, "│") {
		t.Fatalf("expected rendered board to contain a Vertical glyph, got:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != g.Rows()+2 {
		t.Fatalf("expected %d lines (border + rows), got %d", g.Rows()+2, len(lines))
	}
}
