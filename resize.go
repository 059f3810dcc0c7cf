package termart

import (
	"image"

	"github.com/disintegration/imaging"
)

// resampleFilter is the kernel used for every resize. Alpha is resampled with
// the same weights as the color channels.
var resampleFilter = imaging.Lanczos

// ResizeImage resamples img to exactly width x height pixels and returns a
// non-premultiplied RGBA copy. The source is never modified.
func ResizeImage(img image.Image, width, height int) *image.NRGBA {
	if width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, width, height, resampleFilter)
}

// ResampledSize returns the pixel size the renderer resamples a srcW x srcH
// raster to for a grid of width characters
func ResampledSize(srcW, srcH, width int) (w, h int) {
	return width, gridHeight(srcW, srcH, width) * 2
}
