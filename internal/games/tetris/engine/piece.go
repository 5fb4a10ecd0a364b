package engine

// Point is an absolute (column, row) position in playfield coordinates.
type Point struct {
	Col, Row int
}

// Piece is a shape instance at a rotation and position.
// The anchor (col, row) is where the mask's top-left cell sits on the playfield.
type Piece struct {
	shape Shape
	mask  Mask
	color Color
	col   int
	row   int
}

// NewPiece creates a piece from the catalog, centred horizontally on a board
// of the given width and anchored at row 0.
func NewPiece(shape Shape, color Color, columns int) *Piece {
	mask := shape.Mask()
	return &Piece{
		shape: shape,
		mask:  mask,
		color: color,
		col:   columns/2 - mask.Width()/2,
		row:   0,
	}
}

// Rotate turns the mask 90° clockwise times times. Negative values rotate
// counter-clockwise. The anchor is left untouched; callers decide whether the
// new orientation fits.
func (p *Piece) Rotate(times int) {
	times %= 4
	if times < 0 {
		times += 4
	}
	for range times {
		p.mask = p.mask.Rotate()
	}
}

// Shift moves the anchor by the given column and row deltas.
func (p *Piece) Shift(dcol, drow int) {
	p.col += dcol
	p.row += drow
}

// Shape returns the catalog shape this piece was built from.
func (p *Piece) Shape() Shape { return p.shape }

// Color returns the piece colour.
func (p *Piece) Color() Color { return p.color }

// Column returns the anchor column.
func (p *Piece) Column() int { return p.col }

// Row returns the anchor row.
func (p *Piece) Row() int { return p.row }

// Width returns the width of the current mask.
func (p *Piece) Width() int { return p.mask.Width() }

// Height returns the height of the current mask.
func (p *Piece) Height() int { return p.mask.Height() }

// Mask returns a copy of the current mask.
func (p *Piece) Mask() Mask { return p.mask.Clone() }

// Cells returns the absolute coordinates of every set mask cell in row-major order.
func (p *Piece) Cells() []Point {
	cells := make([]Point, 0, 4)
	for y, row := range p.mask {
		for x, set := range row {
			if set {
				cells = append(cells, Point{Col: p.col + x, Row: p.row + y})
			}
		}
	}
	return cells
}

// View returns a read-only copy of the piece for renderers.
func (p *Piece) View() PieceView {
	return PieceView{
		Shape:  p.shape,
		Color:  p.color,
		Mask:   p.mask.Clone(),
		Column: p.col,
		Row:    p.row,
	}
}

// PieceView is a detached snapshot of a piece.
type PieceView struct {
	Shape  Shape
	Color  Color
	Mask   Mask
	Column int
	Row    int
}

// Cells returns the absolute coordinates of the set cells.
func (v PieceView) Cells() []Point {
	var cells []Point
	for y, row := range v.Mask {
		for x, set := range row {
			if set {
				cells = append(cells, Point{Col: v.Column + x, Row: v.Row + y})
			}
		}
	}
	return cells
}
