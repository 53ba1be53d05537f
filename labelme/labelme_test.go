package labelme

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visionml/godetect/images"
	"github.com/visionml/godetect/models/postprocess"
)

var classes = []string{"person", "car", "dog"}

func TestFromResults(t *testing.T) {
	results := []postprocess.Result{
		{Box: images.Rect{X1: 10, Y1: 20, X2: 110, Y2: 220}, Score: 0.9, Class: 0},
		{Box: images.Rect{X1: 50, Y1: 60, X2: 150, Y2: 160}, Score: 0.8, Class: 1},
	}

	doc := FromResults("frames_0001.jpg", 640, 480, results, classes, nil)

	assert.Equal(t, Version, doc.Version)
	assert.Equal(t, "frames_0001.jpg", doc.ImagePath)
	assert.Equal(t, 640, doc.ImageWidth)
	assert.Equal(t, 480, doc.ImageHeight)
	assert.Nil(t, doc.ImageData)

	require.Len(t, doc.Shapes, 2)
	assert.Equal(t, "person", doc.Shapes[0].Label)
	assert.Equal(t, "rectangle", doc.Shapes[0].ShapeType)
	assert.Equal(t, [][]float32{{10, 20}, {110, 220}}, doc.Shapes[0].Points)
	assert.Equal(t, "car", doc.Shapes[1].Label)
}

func TestFromResultsAppliesAllowList(t *testing.T) {
	results := []postprocess.Result{
		{Box: images.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}, Score: 0.9, Class: 0},
		{Box: images.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}, Score: 0.9, Class: 1},
		{Box: images.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}, Score: 0.9, Class: 2},
	}

	doc := FromResults("a.jpg", 100, 100, results, classes, []string{"car", "dog"})

	require.Len(t, doc.Shapes, 2)
	assert.Equal(t, "car", doc.Shapes[0].Label)
	assert.Equal(t, "dog", doc.Shapes[1].Label)
}

func TestFromResultsClampsBoxes(t *testing.T) {
	results := []postprocess.Result{
		{Box: images.Rect{X1: -10, Y1: -5, X2: 700, Y2: 500}, Score: 0.9, Class: 0},
	}

	doc := FromResults("a.jpg", 640, 480, results, classes, nil)

	require.Len(t, doc.Shapes, 1)
	assert.Equal(t, [][]float32{{0, 0}, {640, 480}}, doc.Shapes[0].Points)
}

func TestFromResultsSkipsUnknownClassIndex(t *testing.T) {
	results := []postprocess.Result{
		{Box: images.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}, Score: 0.9, Class: 7},
	}

	doc := FromResults("a.jpg", 100, 100, results, classes, nil)
	assert.Empty(t, doc.Shapes)
}

func TestDocumentSave(t *testing.T) {
	results := []postprocess.Result{
		{Box: images.Rect{X1: 1, Y1: 2, X2: 3, Y2: 4}, Score: 0.9, Class: 2},
	}
	doc := FromResults("dog.jpg", 100, 100, results, classes, nil)

	path := filepath.Join(t.TempDir(), "dog.json")
	require.NoError(t, doc.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Version, decoded.Version)
	require.Len(t, decoded.Shapes, 1)
	assert.Equal(t, "dog", decoded.Shapes[0].Label)

	// Null fields must be present in the serialized form, the way the
	// labeling tool writes them.
	assert.Contains(t, string(data), `"imageData": null`)
	assert.Contains(t, string(data), `"group_id": null`)
}
