// Package render prints a Grid to the terminal as a bordered glyph board,
// for quick visual inspection from the CLI.
package render

import (
	"fmt"
	"io"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
)

var glyphs = map[piece.Type]string{
	piece.Empty:      "·",
	piece.Horizontal: "─",
	piece.Vertical:   "│",
	piece.CornerNE:   "╰",
	piece.CornerNW:   "╯",
	piece.CornerSE:   "╭",
	piece.CornerSW:   "╮",
}

// Grid writes a bordered glyph rendering of g to w. When showCoords is
// true, row indices are printed down the left margin.
func Grid(w io.Writer, g *grid.Grid, showCoords bool) {
	rows, cols := g.Rows(), g.Cols()

	border := func() {
		fmt.Fprint(w, "   +")
		for c := 0; c < cols; c++ {
			fmt.Fprint(w, "--")
		}
		fmt.Fprint(w, "-+\n")
	}

	border()
	for r := 0; r < rows; r++ {
		if showCoords {
			fmt.Fprintf(w, "%2d ", r)
		} else {
			fmt.Fprint(w, "   ")
		}
		fmt.Fprint(w, "| ")
		for c := 0; c < cols; c++ {
			fmt.Fprintf(w, "%s ", glyphs[g.At(r, c)])
		}
		fmt.Fprint(w, "|\n")
	}
	border()
}
