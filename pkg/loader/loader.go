// Package loader reads and writes Train Tracks puzzles in the two formats
// consumed by the CLI: a line-oriented text format meant for hand-authoring,
// and a structured JSON form meant for generator output and round-tripping.
package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
)

// ParseText reads the line-oriented puzzle format:
//
//	WIDTH: 9
//	HEIGHT: 7
//	ROWS: 2 7 5 4 8 3 2
//	COLS: 1 1 5 6 5 4 3 4 2
//	FIXED: 0,6 CornerSW
//	FIXED: 6,2 CornerSE
//
// Blank lines and lines starting with # are ignored. WIDTH/HEIGHT/ROWS/COLS
// must each appear exactly once; FIXED may repeat.
func ParseText(r io.Reader) (grid.Puzzle, error) {
	var p grid.Puzzle
	var haveWidth, haveHeight, haveRows, haveCols bool
	var fixed []fixedCell
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			return grid.Puzzle{}, fmt.Errorf("loader: line %d: missing ':' separator", lineNo)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		rest = strings.TrimSpace(rest)

		if key != "FIXED" && seen[key] {
			return grid.Puzzle{}, fmt.Errorf("loader: line %d: duplicate %s directive", lineNo, key)
		}
		seen[key] = true

		switch key {
		case "WIDTH":
			n, err := strconv.Atoi(rest)
			if err != nil {
				return grid.Puzzle{}, fmt.Errorf("loader: line %d: invalid WIDTH: %w", lineNo, err)
			}
			p.GridWidth = n
			haveWidth = true
		case "HEIGHT":
			n, err := strconv.Atoi(rest)
			if err != nil {
				return grid.Puzzle{}, fmt.Errorf("loader: line %d: invalid HEIGHT: %w", lineNo, err)
			}
			p.GridHeight = n
			haveHeight = true
		case "ROWS":
			ns, err := parseInts(rest)
			if err != nil {
				return grid.Puzzle{}, fmt.Errorf("loader: line %d: invalid ROWS: %w", lineNo, err)
			}
			p.HorizontalClues = ns
			haveRows = true
		case "COLS":
			ns, err := parseInts(rest)
			if err != nil {
				return grid.Puzzle{}, fmt.Errorf("loader: line %d: invalid COLS: %w", lineNo, err)
			}
			p.VerticalClues = ns
			haveCols = true
		case "FIXED":
			fc, err := parseFixedLine(rest)
			if err != nil {
				return grid.Puzzle{}, fmt.Errorf("loader: line %d: invalid FIXED: %w", lineNo, err)
			}
			fixed = append(fixed, fc)
		default:
			return grid.Puzzle{}, fmt.Errorf("loader: line %d: unknown directive %q", lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return grid.Puzzle{}, fmt.Errorf("loader: reading text puzzle: %w", err)
	}

	if !haveWidth || !haveHeight || !haveRows || !haveCols {
		return grid.Puzzle{}, fmt.Errorf("loader: text puzzle missing one of WIDTH/HEIGHT/ROWS/COLS")
	}

	p.StartingGrid = make([]piece.Type, p.GridWidth*p.GridHeight)
	for _, fc := range fixed {
		if fc.row < 0 || fc.row >= p.GridHeight || fc.col < 0 || fc.col >= p.GridWidth {
			return grid.Puzzle{}, fmt.Errorf("loader: FIXED cell (%d,%d) out of bounds for %dx%d grid", fc.row, fc.col, p.GridWidth, p.GridHeight)
		}
		p.StartingGrid[fc.row*p.GridWidth+fc.col] = fc.piece
	}
	return p, nil
}

// LoadTextFile reads and parses a text-format puzzle file.
func LoadTextFile(path string) (grid.Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return grid.Puzzle{}, fmt.Errorf("loader: opening %s: %w", path, err)
	}
	defer f.Close()
	return ParseText(f)
}

// WriteText serializes p in the text format ParseText accepts.
func WriteText(w io.Writer, p grid.Puzzle) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "WIDTH: %d\n", p.GridWidth)
	fmt.Fprintf(bw, "HEIGHT: %d\n", p.GridHeight)
	fmt.Fprintf(bw, "ROWS: %s\n", joinInts(p.HorizontalClues))
	fmt.Fprintf(bw, "COLS: %s\n", joinInts(p.VerticalClues))
	for r := 0; r < p.GridHeight; r++ {
		for c := 0; c < p.GridWidth; c++ {
			t := p.StartingGrid[r*p.GridWidth+c]
			if t == piece.Empty {
				continue
			}
			fmt.Fprintf(bw, "FIXED: %d,%d %s\n", r, c, t)
		}
	}
	return bw.Flush()
}

type fixedCell struct {
	row, col int
	piece    piece.Type
}

func parseFixedLine(rest string) (fixedCell, error) {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return fixedCell{}, fmt.Errorf("expected \"row,col PieceName\", got %q", rest)
	}
	rc := strings.Split(fields[0], ",")
	if len(rc) != 2 {
		return fixedCell{}, fmt.Errorf("expected \"row,col\", got %q", fields[0])
	}
	row, err := strconv.Atoi(strings.TrimSpace(rc[0]))
	if err != nil {
		return fixedCell{}, fmt.Errorf("invalid row %q: %w", rc[0], err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(rc[1]))
	if err != nil {
		return fixedCell{}, fmt.Errorf("invalid col %q: %w", rc[1], err)
	}
	t, err := piece.ByName(fields[1])
	if err != nil {
		return fixedCell{}, err
	}
	return fixedCell{row: row, col: col, piece: t}, nil
}

func parseInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", f, err)
		}
		out[i] = n
	}
	return out, nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

// jsonPuzzle is the structured on-disk form: sparse fixed cells rather than
// a dense board, so hand-edited or generator-emitted files stay small.
type jsonPuzzle struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Rows   []int           `json:"rows"`
	Cols   []int           `json:"cols"`
	Fixed  []jsonFixedCell `json:"fixed"`
}

type jsonFixedCell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Piece string `json:"piece"`
}

// ParseJSON reads the structured JSON puzzle form.
func ParseJSON(r io.Reader) (grid.Puzzle, error) {
	var jp jsonPuzzle
	if err := json.NewDecoder(r).Decode(&jp); err != nil {
		return grid.Puzzle{}, fmt.Errorf("loader: decoding JSON puzzle: %w", err)
	}

	p := grid.Puzzle{
		GridWidth:       jp.Width,
		GridHeight:      jp.Height,
		HorizontalClues: jp.Rows,
		VerticalClues:   jp.Cols,
		StartingGrid:    make([]piece.Type, jp.Width*jp.Height),
	}
	for _, fc := range jp.Fixed {
		if fc.Row < 0 || fc.Row >= jp.Height || fc.Col < 0 || fc.Col >= jp.Width {
			return grid.Puzzle{}, fmt.Errorf("loader: fixed cell (%d,%d) out of bounds for %dx%d grid", fc.Row, fc.Col, jp.Width, jp.Height)
		}
		t, err := piece.ByName(fc.Piece)
		if err != nil {
			return grid.Puzzle{}, fmt.Errorf("loader: fixed cell (%d,%d): %w", fc.Row, fc.Col, err)
		}
		p.StartingGrid[fc.Row*jp.Width+fc.Col] = t
	}
	return p, nil
}

// LoadJSONFile reads and parses a JSON-format puzzle file.
func LoadJSONFile(path string) (grid.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grid.Puzzle{}, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	p, err := ParseJSON(strings.NewReader(string(data)))
	if err != nil {
		return grid.Puzzle{}, fmt.Errorf("loader: parsing %s: %w", path, err)
	}
	return p, nil
}

// WriteJSON serializes p in the structured JSON form, sparse over fixed
// cells, with two-space indentation for readability.
func WriteJSON(w io.Writer, p grid.Puzzle) error {
	jp := jsonPuzzle{
		Width:  p.GridWidth,
		Height: p.GridHeight,
		Rows:   p.HorizontalClues,
		Cols:   p.VerticalClues,
	}
	for r := 0; r < p.GridHeight; r++ {
		for c := 0; c < p.GridWidth; c++ {
			t := p.StartingGrid[r*p.GridWidth+c]
			if t == piece.Empty {
				continue
			}
			jp.Fixed = append(jp.Fixed, jsonFixedCell{Row: r, Col: c, Piece: t.String()})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jp); err != nil {
		return fmt.Errorf("loader: encoding JSON puzzle: %w", err)
	}
	return nil
}

// SaveJSONFile writes p to path in the structured JSON form.
func SaveJSONFile(path string, p grid.Puzzle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("loader: creating %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, p)
}
