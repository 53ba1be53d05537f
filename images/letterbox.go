// Package images - Letterbox geometry for model input preparation.
package images

import "github.com/chewxy/math32"

// Letterbox describes the aspect-preserving mapping of a source image
// onto the model input plane: the image is scaled by a single factor and
// centered, and the remainder of the plane is padding.
type Letterbox struct {
	// Scale is the factor applied to both source dimensions.
	Scale float32
	// PadX, PadY are the padding offsets on the left and top, in input
	// plane pixels.
	PadX, PadY float32
	// InputWidth, InputHeight are the dimensions of the input plane.
	InputWidth, InputHeight int
}

// FitLetterbox computes the letterbox mapping for a source image of the
// given size onto an input plane of the given size.
//
// Arguments:
//   - srcWidth: Source image width in pixels.
//   - srcHeight: Source image height in pixels.
//   - inputWidth: Model input plane width in pixels.
//   - inputHeight: Model input plane height in pixels.
//
// Returns:
//   - Letterbox: The computed mapping.
func FitLetterbox(srcWidth, srcHeight, inputWidth, inputHeight int) Letterbox {
	scale := math32.Min(
		float32(inputWidth)/float32(srcWidth),
		float32(inputHeight)/float32(srcHeight),
	)
	scaledW := float32(srcWidth) * scale
	scaledH := float32(srcHeight) * scale

	return Letterbox{
		Scale:       scale,
		PadX:        (float32(inputWidth) - scaledW) / 2,
		PadY:        (float32(inputHeight) - scaledH) / 2,
		InputWidth:  inputWidth,
		InputHeight: inputHeight,
	}
}

// ScaledWidth returns the width of the source image after scaling.
func (l Letterbox) ScaledWidth() int {
	return int(math32.Round(float32(l.InputWidth) - 2*l.PadX))
}

// ScaledHeight returns the height of the source image after scaling.
func (l Letterbox) ScaledHeight() int {
	return int(math32.Round(float32(l.InputHeight) - 2*l.PadY))
}

// Undo maps a box from input plane coordinates back to source image
// coordinates.
//
// Arguments:
//   - r: A box in input plane coordinates.
//
// Returns:
//   - Rect: The box in source image coordinates.
func (l Letterbox) Undo(r Rect) Rect {
	return Rect{
		X1: (r.X1 - l.PadX) / l.Scale,
		Y1: (r.Y1 - l.PadY) / l.Scale,
		X2: (r.X2 - l.PadX) / l.Scale,
		Y2: (r.Y2 - l.PadY) / l.Scale,
	}
}
