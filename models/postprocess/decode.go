// Package postprocess - Decoding of raw detection tensors.
package postprocess

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/visionml/godetect/images"
)

// DecodeDetections decodes a YOLO-style [1, 4+C, N] output tensor into
// detection results in source image coordinates.
//
// The raw layout is channel-major: one row per box attribute (cx, cy, w,
// h, then C class scores), one column per candidate box. The tensor is
// transposed to box-major form, each row is reduced to its best class,
// and surviving boxes are mapped back through the letterbox to the
// source image and clamped to its bounds.
//
// Arguments:
//   - raw: The flattened output tensor data.
//   - numClasses: Number of classes C in the model head.
//   - letterbox: The mapping used when preparing the input.
//   - srcWidth: Source image width in pixels.
//   - srcHeight: Source image height in pixels.
//   - scoreThreshold: Minimum score; lower candidates are dropped.
//
// Returns:
//   - []Result: Decoded detections, unsuppressed and unordered.
//   - error: An error if the tensor shape does not match the model head.
func DecodeDetections(
	raw []float32,
	numClasses int,
	letterbox images.Letterbox,
	srcWidth, srcHeight int,
	scoreThreshold float32,
) ([]Result, error) {
	if numClasses <= 0 {
		return nil, errors.Errorf("invalid class count %d", numClasses)
	}
	cols := 4 + numClasses
	if len(raw) == 0 || len(raw)%cols != 0 {
		return nil, errors.Errorf(
			"output tensor holds %d floats, not divisible by %d attributes",
			len(raw), cols)
	}
	numBoxes := len(raw) / cols

	// Transpose [4+C, N] to [N, 4+C] so each candidate box is contiguous.
	channelMajor := tensor.New(
		tensor.WithShape(cols, numBoxes),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(raw),
	)
	boxMajor, err := tensor.Transpose(channelMajor, 1, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to transpose output tensor")
	}
	dense, ok := boxMajor.(*tensor.Dense)
	if !ok {
		return nil, errors.Errorf("unexpected transposed tensor type %T", boxMajor)
	}
	rows := dense.Data().([]float32)

	var results []Result
	for i := 0; i < numBoxes; i++ {
		row := rows[i*cols : (i+1)*cols]

		classID := 0
		maxScore := float32(0)
		for j := 4; j < cols; j++ {
			if row[j] > maxScore {
				maxScore = row[j]
				classID = j - 4
			}
		}
		if maxScore < scoreThreshold {
			continue
		}

		cx, cy, w, h := row[0], row[1], row[2], row[3]
		box := letterbox.Undo(images.Rect{
			X1: cx - w/2,
			Y1: cy - h/2,
			X2: cx + w/2,
			Y2: cy + h/2,
		}).Clamp(float32(srcWidth), float32(srcHeight))

		if box.Width() <= 0 || box.Height() <= 0 {
			continue
		}

		results = append(results, Result{
			Box:   box,
			Score: maxScore,
			Class: classID,
		})
	}

	return results, nil
}
