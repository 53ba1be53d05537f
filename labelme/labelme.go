// Package labelme - Export of detection results as labelme annotations.
//
// The output matches the JSON documents the labelme labeling tool
// produces: one document per image, rectangle shapes with two corner
// points, imageData left null so the annotation references the image by
// path.
package labelme

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/visionml/godetect/models/postprocess"
)

// Version is the labelme schema version written into documents.
const Version = "5.1.1"

// Shape is a single annotated region.
type Shape struct {
	Label     string         `json:"label"`
	Points    [][]float32    `json:"points"`
	GroupID   *int           `json:"group_id"`
	ShapeType string         `json:"shape_type"`
	Flags     map[string]any `json:"flags"`
}

// Document is a labelme annotation file for one image.
type Document struct {
	Version     string         `json:"version"`
	Flags       map[string]any `json:"flags"`
	Shapes      []Shape        `json:"shapes"`
	ImagePath   string         `json:"imagePath"`
	ImageData   *string        `json:"imageData"`
	ImageHeight int            `json:"imageHeight"`
	ImageWidth  int            `json:"imageWidth"`
}

// FromResults builds the annotation document for one image.
//
// Arguments:
//   - imagePath: The image path recorded in the document.
//   - width: Image width in pixels.
//   - height: Image height in pixels.
//   - results: The detections to export.
//   - classes: Class names in model output order.
//   - allowed: Optional class allow-list; nil exports every class.
//
// Returns:
//   - Document: The annotation document, boxes clamped to the image.
func FromResults(
	imagePath string,
	width, height int,
	results []postprocess.Result,
	classes []string,
	allowed []string,
) Document {
	var allow map[string]struct{}
	if allowed != nil {
		allow = make(map[string]struct{}, len(allowed))
		for _, name := range allowed {
			allow[name] = struct{}{}
		}
	}

	shapes := make([]Shape, 0, len(results))
	for _, r := range results {
		if r.Class < 0 || r.Class >= len(classes) {
			continue
		}
		label := classes[r.Class]
		if allow != nil {
			if _, ok := allow[label]; !ok {
				continue
			}
		}

		box := r.Box.Clamp(float32(width), float32(height))
		shapes = append(shapes, Shape{
			Label: label,
			Points: [][]float32{
				{box.X1, box.Y1},
				{box.X2, box.Y2},
			},
			ShapeType: "rectangle",
			Flags:     map[string]any{},
		})
	}

	return Document{
		Version:     Version,
		Flags:       map[string]any{},
		Shapes:      shapes,
		ImagePath:   imagePath,
		ImageHeight: height,
		ImageWidth:  width,
	}
}

// Save writes the document as indented JSON.
func (d Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal labelme document")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
