// Package models - Model configuration and class sets.
package models

import (
	"strings"

	"github.com/pkg/errors"
)

// COCOClasses are the 80 COCO class names, in model output order. They
// are the packaged default for configurations that do not name their own
// classes.
var COCOClasses = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
	"traffic light", "fire hydrant", "stop sign", "parking meter", "bench", "bird", "cat", "dog", "horse",
	"sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack", "umbrella", "handbag", "tie",
	"suitcase", "frisbee", "skis", "snowboard", "sports ball", "kite", "baseball bat", "baseball glove",
	"skateboard", "surfboard", "tennis racket", "bottle", "wine glass", "cup", "fork", "knife", "spoon",
	"bowl", "banana", "apple", "sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut",
	"cake", "chair", "couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
	"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink", "refrigerator", "book",
	"clock", "vase", "scissors", "teddy bear", "hair drier", "toothbrush",
}

// FormatClasses renders a class list for terminal output, one indexed
// name per line.
func FormatClasses(classes []string) string {
	var b strings.Builder
	for i, name := range classes {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(name)
	}
	return b.String()
}

// ValidateClassFilter checks that every requested class name is one of
// the model's classes.
//
// Arguments:
//   - classes: The model's class names.
//   - filter: The requested allow-list.
//
// Returns:
//   - error: An error naming the first unknown class and listing the
//     valid classes, or nil.
func ValidateClassFilter(classes, filter []string) error {
	known := make(map[string]struct{}, len(classes))
	for _, name := range classes {
		known[name] = struct{}{}
	}

	for _, name := range filter {
		if _, ok := known[name]; !ok {
			return errors.Errorf(
				"unknown class name %q, valid classes are:\n%s",
				name, FormatClasses(classes))
		}
	}
	return nil
}
