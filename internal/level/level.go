// Package level parses block layouts and turns them into positioned blocks.
//
// A layout is a list of rows. Each character is one grid cell: a digit from
// 1 to 7 places a block with that much health, a space or '.' leaves the cell
// empty. Anything else is rejected before any block is built.
package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/entity"
)

// ErrMalformedLayout is returned for a layout cell that is neither blank nor a
// health digit, and for layouts with no rows.
var ErrMalformedLayout = errors.New("malformed layout")

// Level is a parsed layout.
type Level struct {
	ID     string
	Name   string
	Width  int     // Number of columns
	Height int     // Number of rows
	Cells  [][]int // Health per cell, 0 = empty
}

// Parse validates rows and builds a Level. Short rows are padded with empty
// cells up to the longest row.
func Parse(id, name string, rows []string) (*Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("level %q: %w: no rows", id, ErrMalformedLayout)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}

	l := &Level{
		ID:     id,
		Name:   name,
		Width:  width,
		Height: len(rows),
		Cells:  make([][]int, len(rows)),
	}
	for r, row := range rows {
		l.Cells[r] = make([]int, width)
		for c, ch := range []rune(row) {
			switch {
			case ch == ' ' || ch == '.':
			case ch >= '0'+entity.MinHealth && ch <= '0'+entity.MaxHealth:
				l.Cells[r][c] = int(ch - '0')
			default:
				return nil, fmt.Errorf("level %q: %w: row %d col %d: %q", id, ErrMalformedLayout, r, c, ch)
			}
		}
	}
	return l, nil
}

// MustParse is like Parse but panics on error. It is meant for built-in layouts.
func MustParse(id, name string, rows []string) *Level {
	l, err := Parse(id, name, rows)
	if err != nil {
		panic(err)
	}
	return l
}

// Clone creates a deep copy of the level.
func (l *Level) Clone() *Level {
	clone := *l
	clone.Cells = make([][]int, len(l.Cells))
	for i, row := range l.Cells {
		clone.Cells[i] = append([]int(nil), row...)
	}
	return &clone
}

// BlockCount returns the number of non-empty cells.
func (l *Level) BlockCount() int {
	n := 0
	for _, row := range l.Cells {
		for _, h := range row {
			if h > 0 {
				n++
			}
		}
	}
	return n
}

// Rows renders the level back to layout rows, using spaces for empty cells.
func (l *Level) Rows() []string {
	out := make([]string, len(l.Cells))
	for i, row := range l.Cells {
		runes := make([]rune, len(row))
		for j, h := range row {
			if h == 0 {
				runes[j] = ' '
			} else {
				runes[j] = rune('0' + h)
			}
		}
		out[i] = string(runes)
	}
	return out
}

// Grid describes how layout cells map onto the field.
type Grid struct {
	FieldWidth  float64
	FieldHeight float64
	Gap         float64 // Space between neighbouring blocks
	MinRows     int     // Rows the field height is divided into, at least
}

// CellSize returns the block size for a layout of cols x rows.
func (g Grid) CellSize(cols, rows int) (w, h float64) {
	rows = max(rows, g.MinRows, 1)
	cols = max(cols, 1)
	return g.FieldWidth/float64(cols) - g.Gap, g.FieldHeight/float64(rows) - g.Gap
}

// Build creates one block per non-empty cell. Block (r, c) sits at
// c*(w+gap)+gap/2, r*(h+gap)+gap/2.
func (g Grid) Build(l *Level) []*entity.Block {
	w, h := g.CellSize(l.Width, l.Height)
	offset := float64(int(g.Gap) / 2)

	blocks := make([]*entity.Block, 0, l.BlockCount())
	for r, row := range l.Cells {
		for c, health := range row {
			if health == 0 {
				continue
			}
			x := float64(c)*(w+g.Gap) + offset
			y := float64(r)*(h+g.Gap) + offset
			b := entity.NewBlock(x, y, w, h, health)
			b.Row, b.Col = r, c
			blocks = append(blocks, b)
		}
	}
	return blocks
}
