// Package postprocess - Postprocessing of raw detection outputs.
package postprocess

import "github.com/visionml/godetect/images"

// Result represents a single detection.
type Result struct {
	// The bounding box of the result in source image coordinates.
	Box images.Rect
	// The confidence score of the result.
	Score float32
	// The predicted class index of the result.
	Class int
}
