package termart

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Glyph selects which block character a cell is drawn with
type Glyph rune

const (
	// GlyphBlank is a plain space, drawn with no colors
	GlyphBlank Glyph = ' '
	// GlyphUpperHalf is U+2580 UPPER HALF BLOCK, ink covers the top half of the cell
	GlyphUpperHalf Glyph = '▀'
	// GlyphLowerHalf is U+2584 LOWER HALF BLOCK, ink covers the bottom half of the cell
	GlyphLowerHalf Glyph = '▄'
)

func (g Glyph) String() string {
	return string(rune(g))
}

// RGB is a 24-bit terminal color
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color. RGB values are always fully opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = 0xffff
	return
}

// Hex returns the color as "#rrggbb"
func (c RGB) Hex() string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// Color is an optional RGB value. The zero value means "no color".
type Color struct {
	RGB
	Valid bool
}

// NoColor is the absent color
var NoColor = Color{}

// NewColor returns a set color
func NewColor(r, g, b uint8) Color {
	return Color{RGB: RGB{R: r, G: g, B: b}, Valid: true}
}

func (c Color) String() string {
	if !c.Valid {
		return "none"
	}
	return c.Hex()
}

// Cell is one character position of the output grid
type Cell struct {
	Glyph Glyph
	FG    Color
	BG    Color
}

// style returns the SGR style for the cell colors
func (c Cell) style() ansi.Style {
	var s ansi.Style
	if c.FG.Valid {
		s = s.ForegroundColor(c.FG.RGB)
	}
	if c.BG.Valid {
		s = s.BackgroundColor(c.BG.RGB)
	}
	return s
}

// String returns the cell as a self contained styled string
func (c Cell) String() string {
	return c.style().Styled(c.Glyph.String())
}

// Grid is the rendered image: rows of cells, fixed at render time
type Grid struct {
	cols  int
	cells [][]Cell
}

// Rows returns the number of character rows
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the number of character columns per row
func (g *Grid) Cols() int {
	return g.cols
}

// At returns the cell at column x, row y
func (g *Grid) At(x, y int) Cell {
	return g.cells[y][x]
}

// Row returns a copy of row y
func (g *Grid) Row(y int) []Cell {
	row := make([]Cell, len(g.cells[y]))
	copy(row, g.cells[y])
	return row
}

// Lines returns each row as a styled string
func (g *Grid) Lines() []string {
	lines := make([]string, len(g.cells))
	var sb strings.Builder
	for y, row := range g.cells {
		sb.Reset()
		writeRow(&sb, row)
		lines[y] = sb.String()
	}
	return lines
}

// String returns the styled grid, rows separated by "\n" with no trailing separator
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// WriteTo writes the styled grid to w
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}

// writeRow emits a row, only switching SGR state when the colors change
func writeRow(sb *strings.Builder, row []Cell) {
	var last Cell
	styled := false
	for i, c := range row {
		if i == 0 || c.FG != last.FG || c.BG != last.BG {
			if styled {
				sb.WriteString(ansi.ResetStyle)
				styled = false
			}
			if c.FG.Valid || c.BG.Valid {
				sb.WriteString(c.style().String())
				styled = true
			}
			last = c
		}
		sb.WriteRune(rune(c.Glyph))
	}
	if styled {
		sb.WriteString(ansi.ResetStyle)
	}
}
