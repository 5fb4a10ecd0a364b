package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDimensions is returned when a board would have no cells.
var ErrInvalidDimensions = errors.New("engine: invalid board dimensions")

// Playfield is the fixed-size grid of landed cells.
// Row 0 is the top of the well; rows grow downwards.
type Playfield struct {
	columns int
	rows    int
	cells   [][]Color
}

// NewPlayfield creates an empty playfield.
func NewPlayfield(columns, rows int) (*Playfield, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, columns, rows)
	}
	f := &Playfield{columns: columns, rows: rows, cells: make([][]Color, rows)}
	for y := range f.cells {
		f.cells[y] = make([]Color, columns)
	}
	return f, nil
}

// Columns returns the board width in cells.
func (f *Playfield) Columns() int { return f.columns }

// Rows returns the board height in cells.
func (f *Playfield) Rows() int { return f.rows }

func (f *Playfield) inBounds(col, row int) bool {
	return col >= 0 && col < f.columns && row >= 0 && row < f.rows
}

// At returns the colour stored at (col, row), or ColorNone when out of bounds.
func (f *Playfield) At(col, row int) Color {
	if !f.inBounds(col, row) {
		return ColorNone
	}
	return f.cells[row][col]
}

// Occupied reports whether the cell at (col, row) holds a block.
func (f *Playfield) Occupied(col, row int) bool {
	return f.At(col, row) != ColorNone
}

// Set stores a colour at (col, row). Out-of-bounds writes are ignored.
func (f *Playfield) Set(col, row int, c Color) {
	if f.inBounds(col, row) {
		f.cells[row][col] = c
	}
}

// Collides reports whether the piece overlaps a wall, the floor or a landed
// block. Cells above the top edge only collide with the side walls.
func (f *Playfield) Collides(p *Piece) bool {
	for y, line := range p.mask {
		for x, set := range line {
			if !set {
				continue
			}
			col, row := p.col+x, p.row+y
			if col < 0 || col >= f.columns || row >= f.rows {
				return true
			}
			if row >= 0 && f.cells[row][col] != ColorNone {
				return true
			}
		}
	}
	return false
}

// Merge writes the piece into the grid. The caller must have checked Collides.
// Cells above the top edge have nowhere to go and are dropped.
func (f *Playfield) Merge(p *Piece) {
	for _, c := range p.Cells() {
		f.Set(c.Col, c.Row, p.color)
	}
}

// IsFull reports whether every cell of the row is occupied.
func (f *Playfield) IsFull(row int) bool {
	if row < 0 || row >= f.rows {
		return false
	}
	for _, c := range f.cells[row] {
		if c == ColorNone {
			return false
		}
	}
	return true
}

// ClearFullLines removes every full row, shifting the rows above it down and
// inserting empty rows at the top. It returns the number of rows removed.
func (f *Playfield) ClearFullLines() int {
	kept := make([][]Color, 0, f.rows)
	for y := range f.rows {
		if !f.IsFull(y) {
			kept = append(kept, f.cells[y])
		}
	}

	cleared := f.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	grid := make([][]Color, 0, f.rows)
	for range cleared {
		grid = append(grid, make([]Color, f.columns))
	}
	f.cells = append(grid, kept...)
	return cleared
}

// Filled returns the number of occupied cells.
func (f *Playfield) Filled() int {
	n := 0
	for _, row := range f.cells {
		for _, c := range row {
			if c != ColorNone {
				n++
			}
		}
	}
	return n
}

// Grid returns a deep copy of the cells, indexed [row][col].
func (f *Playfield) Grid() [][]Color {
	out := make([][]Color, f.rows)
	for y, row := range f.cells {
		out[y] = append([]Color(nil), row...)
	}
	return out
}

// Clone returns an independent copy of the playfield.
func (f *Playfield) Clone() *Playfield {
	return &Playfield{columns: f.columns, rows: f.rows, cells: f.Grid()}
}

// String dumps the grid with '#' for occupied and '.' for empty cells.
func (f *Playfield) String() string {
	var sb strings.Builder
	sb.Grow((f.columns + 1) * f.rows)
	for y, row := range f.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if c == ColorNone {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}
