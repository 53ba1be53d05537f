// Package inference - Input tensor preparation.
package inference

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/visionml/godetect/images"
)

// padValue is the gray used for letterbox padding, normalized.
const padValue = float32(114) / 255.0

// PrepareInput letterboxes an image into the session's input tensor as
// normalized NCHW float32 planes.
//
// Arguments:
//   - img: The image to prepare.
//   - letterbox: The mapping computed for this image.
//   - dst: The destination tensor to populate.
//
// Returns:
//   - error: An error if the tensor does not match the mapping.
func PrepareInput(img image.Image, letterbox images.Letterbox, dst *ort.Tensor[float32]) error {
	return fillInput(img, letterbox, dst.GetData())
}

// fillInput does the pixel work of PrepareInput on a raw float32 slice.
func fillInput(img image.Image, letterbox images.Letterbox, data []float32) error {
	width := letterbox.InputWidth
	height := letterbox.InputHeight
	channelSize := width * height
	if len(data) < channelSize*3 {
		return errors.Errorf(
			"input tensor holds %d floats, needs %d for a %dx%d plane",
			len(data), channelSize*3, width, height)
	}

	red := data[0:channelSize]
	green := data[channelSize : channelSize*2]
	blue := data[channelSize*2 : channelSize*3]

	scaledW := letterbox.ScaledWidth()
	scaledH := letterbox.ScaledHeight()
	scaled := resize.Resize(uint(scaledW), uint(scaledH), img, resize.Lanczos3)

	padX := int(letterbox.PadX)
	padY := int(letterbox.PadY)

	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx := x - padX
			sy := y - padY
			if sx < 0 || sy < 0 || sx >= scaledW || sy >= scaledH {
				red[i] = padValue
				green[i] = padValue
				blue[i] = padValue
			} else {
				r, g, b, _ := scaled.At(sx, sy).RGBA()
				red[i] = float32(r>>8) / 255.0
				green[i] = float32(g>>8) / 255.0
				blue[i] = float32(b>>8) / 255.0
			}
			i++
		}
	}
	return nil
}
