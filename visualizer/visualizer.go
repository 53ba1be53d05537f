// Package visualizer - Rendering of detection results with OpenCV.
package visualizer

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/visionml/godetect/models/postprocess"
)

// Visualizer draws detection results onto images.
type Visualizer struct {
	classes []string
	window  *gocv.Window
}

// New creates a visualizer for the given class names.
func New(classes []string) *Visualizer {
	return &Visualizer{classes: classes}
}

// Label formats the text drawn next to a detection, e.g. "person 0.87".
func (v *Visualizer) Label(r postprocess.Result) string {
	name := fmt.Sprintf("class %d", r.Class)
	if r.Class >= 0 && r.Class < len(v.classes) {
		name = v.classes[r.Class]
	}
	return fmt.Sprintf("%s %.2f", name, r.Score)
}

// Draw renders boxes and labels for all results onto the Mat in place.
//
// Arguments:
//   - mat: The image to draw on.
//   - results: The detections to render.
func (v *Visualizer) Draw(mat *gocv.Mat, results []postprocess.Result) {
	for _, r := range results {
		rect := image.Rect(
			int(r.Box.X1), int(r.Box.Y1),
			int(r.Box.X2), int(r.Box.Y2),
		)
		c := ClassColor(r.Class)

		gocv.Rectangle(mat, rect, c, 2)

		// Keep the label inside the image when the box touches the top.
		origin := image.Pt(rect.Min.X, rect.Min.Y-6)
		if origin.Y < 12 {
			origin.Y = rect.Min.Y + 16
		}
		gocv.PutText(mat, v.Label(r), origin, gocv.FontHersheyPlain, 1.2, c, 2)
	}
}

// Save writes the rendered image to disk.
func (v *Visualizer) Save(mat gocv.Mat, path string) error {
	if ok := gocv.IMWrite(path, mat); !ok {
		return errors.Errorf("failed to write image %s", path)
	}
	return nil
}

// Show displays the rendered image in a window and blocks until a key is
// pressed. The window is created lazily and reused across images.
func (v *Visualizer) Show(title string, mat gocv.Mat) {
	if v.window == nil {
		v.window = gocv.NewWindow("godetect")
	}
	v.window.SetWindowTitle(title)
	v.window.IMShow(mat)
	v.window.WaitKey(0)
}

// Close releases the display window if one was opened.
func (v *Visualizer) Close() error {
	if v.window != nil {
		err := v.window.Close()
		v.window = nil
		return err
	}
	return nil
}
