// Package engine implements the falling-block game state: the shape catalog,
// pieces, the playfield grid and the tick state machine that ties them together.
// It has no dependencies on the platform layer and never blocks, so every
// operation can be driven directly from tests.
package engine

import "strings"

// Color is an opaque tag stored in occupied playfield cells.
// ColorNone marks an empty cell.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorOrange
	ColorPurple
)

// DefaultPalette is the set of colours new pieces are painted with.
var DefaultPalette = []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorCyan, ColorMagenta}

var colorNames = map[Color]string{
	ColorNone:    "none",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorBlue:    "blue",
	ColorYellow:  "yellow",
	ColorCyan:    "cyan",
	ColorMagenta: "magenta",
	ColorOrange:  "orange",
	ColorPurple:  "purple",
}

// String returns the lower-case colour name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor resolves a colour name as used in configuration files.
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name && c != ColorNone {
			return c, true
		}
	}
	return ColorNone, false
}

// Shape identifies one of the seven catalog polyominoes.
type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeJ
	ShapeL
	ShapeS
	ShapeZ
)

// ShapeCount is the size of the catalog.
const ShapeCount = 7

// catalog holds the canonical orientation of every shape.
var catalog = [ShapeCount]Mask{
	ShapeI: parseMask("####"),
	ShapeO: parseMask("##", "##"),
	ShapeT: parseMask(".#.", "###"),
	ShapeJ: parseMask("#..", "###"),
	ShapeL: parseMask("..#", "###"),
	ShapeS: parseMask("##.", ".##"),
	ShapeZ: parseMask(".##", "##."),
}

// Shapes returns every shape in catalog order.
func Shapes() []Shape {
	return []Shape{ShapeI, ShapeO, ShapeT, ShapeJ, ShapeL, ShapeS, ShapeZ}
}

// MaxShapeWidth returns the width of the widest catalog shape in its spawn
// orientation. Narrower boards cannot hold every piece.
func MaxShapeWidth() int {
	widest := 0
	for _, m := range catalog {
		widest = max(widest, m.Width())
	}
	return widest
}

// Valid reports whether s is part of the catalog.
func (s Shape) Valid() bool {
	return s >= 0 && s < ShapeCount
}

// Mask returns a copy of the shape's canonical mask.
func (s Shape) Mask() Mask {
	if !s.Valid() {
		return nil
	}
	return catalog[s].Clone()
}

// String returns the single-letter shape name.
func (s Shape) String() string {
	if !s.Valid() {
		return "?"
	}
	return string("IOTJLSZ"[s])
}

// Mask is a rectangular boolean grid: rows of cells, true meaning set.
type Mask [][]bool

// parseMask builds a mask from rows of '#' (set) and '.' (clear).
func parseMask(rows ...string) Mask {
	m := make(Mask, len(rows))
	for y, row := range rows {
		m[y] = make([]bool, len(row))
		for x, ch := range row {
			m[y][x] = ch == '#'
		}
	}
	return m
}

// Width returns the number of columns.
func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height returns the number of rows.
func (m Mask) Height() int {
	return len(m)
}

// Clone returns a deep copy.
func (m Mask) Clone() Mask {
	out := make(Mask, len(m))
	for y, row := range m {
		out[y] = append([]bool(nil), row...)
	}
	return out
}

// Rotate returns the mask turned 90° clockwise.
// For an n-row mask of width w the result has w rows of length n with
// rotated[i][j] = m[n-1-j][i].
func (m Mask) Rotate() Mask {
	n := m.Height()
	w := m.Width()
	out := make(Mask, w)
	for i := range w {
		out[i] = make([]bool, n)
		for j := range n {
			out[i][j] = m[n-1-j][i]
		}
	}
	return out
}

// Equal reports whether both masks have the same dimensions and cells.
func (m Mask) Equal(other Mask) bool {
	if m.Height() != other.Height() || m.Width() != other.Width() {
		return false
	}
	for y := range m {
		for x := range m[y] {
			if m[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Count returns the number of set cells.
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, set := range row {
			if set {
				n++
			}
		}
	}
	return n
}

// String renders the mask with '#' and '.', one line per row.
func (m Mask) String() string {
	var sb strings.Builder
	for y, row := range m {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, set := range row {
			if set {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
