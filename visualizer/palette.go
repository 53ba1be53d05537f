// Package visualizer - Deterministic per-class colors.
package visualizer

import "image/color"

// palette holds visually distinct colors; classes beyond its length wrap
// around.
var palette = []color.RGBA{
	{R: 56, G: 56, B: 255, A: 255},
	{R: 151, G: 157, B: 255, A: 255},
	{R: 31, G: 112, B: 255, A: 255},
	{R: 29, G: 178, B: 255, A: 255},
	{R: 49, G: 210, B: 207, A: 255},
	{R: 10, G: 249, B: 72, A: 255},
	{R: 23, G: 204, B: 146, A: 255},
	{R: 134, G: 219, B: 61, A: 255},
	{R: 52, G: 147, B: 26, A: 255},
	{R: 187, G: 212, B: 0, A: 255},
	{R: 168, G: 153, B: 44, A: 255},
	{R: 255, G: 194, B: 0, A: 255},
	{R: 147, G: 69, B: 52, A: 255},
	{R: 255, G: 115, B: 100, A: 255},
	{R: 236, G: 24, B: 0, A: 255},
	{R: 255, G: 56, B: 132, A: 255},
	{R: 133, G: 0, B: 82, A: 255},
	{R: 255, G: 56, B: 203, A: 255},
	{R: 200, G: 149, B: 255, A: 255},
	{R: 199, G: 55, B: 255, A: 255},
}

// ClassColor returns the color assigned to a class index. The mapping is
// stable across runs.
func ClassColor(classID int) color.RGBA {
	if classID < 0 {
		classID = -classID
	}
	return palette[classID%len(palette)]
}
