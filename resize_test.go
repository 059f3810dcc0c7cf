package termart

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResizeImage(t *testing.T) {
	tests := []struct {
		name           string
		sourceWidth    int
		sourceHeight   int
		targetWidth    int
		targetHeight   int
		expectedWidth  int
		expectedHeight int
	}{
		{
			name:           "Downscale square image",
			sourceWidth:    100,
			sourceHeight:   100,
			targetWidth:    50,
			targetHeight:   48,
			expectedWidth:  50,
			expectedHeight: 48,
		},
		{
			name:           "Upscale small image",
			sourceWidth:    10,
			sourceHeight:   10,
			targetWidth:    20,
			targetHeight:   18,
			expectedWidth:  20,
			expectedHeight: 18,
		},
		{
			name:           "Same size returns a copy",
			sourceWidth:    30,
			sourceHeight:   20,
			targetWidth:    30,
			targetHeight:   20,
			expectedWidth:  30,
			expectedHeight: 20,
		},
		{
			name:           "Zero height",
			sourceWidth:    30,
			sourceHeight:   20,
			targetWidth:    30,
			targetHeight:   0,
			expectedWidth:  0,
			expectedHeight: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createTestImage(tt.sourceWidth, tt.sourceHeight)

			result := ResizeImage(img, tt.targetWidth, tt.targetHeight)
			bounds := result.Bounds()

			assert.Equal(t, tt.expectedWidth, bounds.Dx(), "Width mismatch")
			assert.Equal(t, tt.expectedHeight, bounds.Dy(), "Height mismatch")
			assert.Equal(t, image.Point{}, bounds.Min)
		})
	}
}

func TestResizeImageSameSizeIsCopy(t *testing.T) {
	img := createTestImage(8, 8)
	result := ResizeImage(img, 8, 8)

	assert.Equal(t, img.Pix, result.Pix)
	result.Pix[0] = ^result.Pix[0]
	assert.NotEqual(t, img.Pix[0], result.Pix[0], "resize must never alias the source")
}

func TestResizeImageResamplesAlpha(t *testing.T) {
	// left half opaque, right half transparent
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := range 40 {
		for x := range 20 {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	result := ResizeImage(img, 10, 10)

	assert.Equal(t, uint8(255), result.NRGBAAt(0, 5).A)
	assert.Equal(t, uint8(0), result.NRGBAAt(9, 5).A)
	// color is not darkened by the transparent neighbours
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, result.NRGBAAt(0, 5))
}

func TestResampledSize(t *testing.T) {
	tests := []struct {
		srcW, srcH, width int
		wantW, wantH      int
	}{
		{srcW: 100, srcH: 100, width: 40, wantW: 40, wantH: 38},
		{srcW: 10, srcH: 30, width: 7, wantW: 7, wantH: 20},
		{srcW: 2, srcH: 2, width: 2, wantW: 2, wantH: 0},
	}

	for _, tt := range tests {
		w, h := ResampledSize(tt.srcW, tt.srcH, tt.width)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
		assert.Zero(t, h%2, "resampled height is always even")
	}
}
