package termart

import (
	"image"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// CellAspect corrects for the roughly 1:2 width:height shape of a
	// monospace cell. Changing it changes every rendered grid height.
	CellAspect = 0.48
	// OpacityThreshold is the alpha a sample must exceed to be drawn
	OpacityThreshold = 128
)

// transparent stands in for the missing lower sample of an odd final row
var transparent = color.NRGBA{}

// Render converts img into a grid of half-block cells width characters wide.
// Each character row covers two resampled pixel rows: the upper one is the
// background sample, the lower one the foreground sample.
//
// Render is a pure function of its inputs and is safe for concurrent use.
func Render(img image.Image, width int) (*Grid, error) {
	if img == nil {
		return nil, ErrInvalidImage
	}
	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, ErrInvalidImage
	}
	if width < 1 {
		return nil, ErrInvalidWidth
	}

	w, h := ResampledSize(bounds.Dx(), bounds.Dy(), width)
	if h == 0 {
		return &Grid{cols: width}, nil
	}

	return gridFromPixels(ResizeImage(img, w, h)), nil
}

// gridHeight returns the number of character rows for a srcW x srcH raster
func gridHeight(srcW, srcH, width int) int {
	aspect := float64(srcH) / float64(srcW)
	return int(float64(width) * aspect * CellAspect)
}

// gridFromPixels pairs the rows of an already resampled image into cells.
// An odd final row is paired with a fully transparent pixel.
func gridFromPixels(img *image.NRGBA) *Grid {
	bounds := img.Bounds()
	cols := bounds.Dx()
	rows := (bounds.Dy() + 1) / 2

	cells := make([][]Cell, rows)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for row := range rows {
		g.Go(func() error {
			y := bounds.Min.Y + row*2
			line := make([]Cell, cols)
			for x := range cols {
				px := bounds.Min.X + x
				upper := img.NRGBAAt(px, y)
				lower := transparent
				if y+1 < bounds.Max.Y {
					lower = img.NRGBAAt(px, y+1)
				}
				line[x] = halfBlock(upper, lower)
			}
			cells[row] = line
			return nil
		})
	}
	_ = g.Wait()

	return &Grid{cols: cols, cells: cells}
}

// halfBlock picks the glyph and colors for one upper/lower sample pair
func halfBlock(upper, lower color.NRGBA) Cell {
	bg := opaque(upper.A)
	fg := opaque(lower.A)

	switch {
	case fg && bg:
		return Cell{Glyph: GlyphLowerHalf, FG: rgbOf(lower), BG: rgbOf(upper)}
	case fg:
		return Cell{Glyph: GlyphLowerHalf, FG: rgbOf(lower)}
	case bg:
		// the upper sample is drawn as ink, the rest of the cell stays clear
		return Cell{Glyph: GlyphUpperHalf, FG: rgbOf(upper)}
	default:
		return Cell{Glyph: GlyphBlank}
	}
}

func rgbOf(c color.NRGBA) Color {
	return NewColor(c.R, c.G, c.B)
}

func opaque(a uint8) bool {
	return a > OpacityThreshold
}
