package inference

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visionml/godetect/images"
)

// solidImage builds a single-color RGBA test image.
func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFillInputExactFit(t *testing.T) {
	// A white 8x8 image on an 8x8 plane: every pixel is 1.0 in all
	// channels, no padding anywhere.
	img := solidImage(8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	lb := images.FitLetterbox(8, 8, 8, 8)

	data := make([]float32, 8*8*3)
	require.NoError(t, fillInput(img, lb, data))

	for i, v := range data {
		assert.InDelta(t, 1.0, v, 1e-3, "index %d", i)
	}
}

func TestFillInputLetterboxPadding(t *testing.T) {
	// A white 8x4 image on an 8x8 plane leaves two padded rows above and
	// below the scaled image.
	img := solidImage(8, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	lb := images.FitLetterbox(8, 4, 8, 8)

	data := make([]float32, 8*8*3)
	require.NoError(t, fillInput(img, lb, data))

	red := data[:64]
	// Top padded row.
	assert.InDelta(t, float64(padValue), red[0*8+0], 1e-3)
	// Center row holds image content.
	assert.InDelta(t, 1.0, red[4*8+4], 1e-3)
	// Bottom padded row.
	assert.InDelta(t, float64(padValue), red[7*8+7], 1e-3)
}

func TestFillInputChannelOrder(t *testing.T) {
	// A pure red image fills the first plane with ones and the other two
	// with zeros.
	img := solidImage(4, 4, color.RGBA{R: 255, A: 255})
	lb := images.FitLetterbox(4, 4, 4, 4)

	data := make([]float32, 4*4*3)
	require.NoError(t, fillInput(img, lb, data))

	assert.InDelta(t, 1.0, data[0], 1e-3)
	assert.InDelta(t, 0.0, data[16], 1e-3)
	assert.InDelta(t, 0.0, data[32], 1e-3)
}

func TestFillInputRejectsShortTensor(t *testing.T) {
	img := solidImage(4, 4, color.RGBA{A: 255})
	lb := images.FitLetterbox(4, 4, 4, 4)

	err := fillInput(img, lb, make([]float32, 10))
	assert.Error(t, err)
}
