package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visionml/godetect/images"
)

func TestApplyGreedyNMSSuppressesOverlaps(t *testing.T) {
	config := &NMSConfig{IoUThreshold: 0.5}

	detections := []Result{
		{Box: images.Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}, Score: 0.9, Class: 0},
		{Box: images.Rect{X1: 5, Y1: 5, X2: 105, Y2: 105}, Score: 0.8, Class: 0},
		{Box: images.Rect{X1: 200, Y1: 200, X2: 300, Y2: 300}, Score: 0.7, Class: 0},
	}

	filtered := ApplyGreedyNMS(detections, config)

	require.Len(t, filtered, 2)
	assert.Equal(t, float32(0.9), filtered[0].Score)
	assert.Equal(t, float32(0.7), filtered[1].Score)
}

func TestApplyGreedyNMSSortsByScore(t *testing.T) {
	config := &NMSConfig{IoUThreshold: 0.5}

	// Input deliberately unordered; the lower-scored overlap must be the
	// one suppressed.
	detections := []Result{
		{Box: images.Rect{X1: 5, Y1: 5, X2: 105, Y2: 105}, Score: 0.6, Class: 0},
		{Box: images.Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}, Score: 0.95, Class: 0},
	}

	filtered := ApplyGreedyNMS(detections, config)

	require.Len(t, filtered, 1)
	assert.Equal(t, float32(0.95), filtered[0].Score)
}

func TestApplyGreedyNMSClassAware(t *testing.T) {
	config := &NMSConfig{IoUThreshold: 0.5, ClassAware: true}

	// Same location, different classes: both survive with class-aware
	// suppression.
	detections := []Result{
		{Box: images.Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}, Score: 0.9, Class: 0},
		{Box: images.Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}, Score: 0.8, Class: 1},
	}

	filtered := ApplyGreedyNMS(detections, config)
	assert.Len(t, filtered, 2)

	config.ClassAware = false
	filtered = ApplyGreedyNMS(detections, config)
	assert.Len(t, filtered, 1)
}

func TestApplyGreedyNMSMaxDetections(t *testing.T) {
	config := &NMSConfig{IoUThreshold: 0.5, MaxDetections: 2}

	detections := []Result{
		{Box: images.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}, Score: 0.9, Class: 0},
		{Box: images.Rect{X1: 100, Y1: 100, X2: 110, Y2: 110}, Score: 0.8, Class: 0},
		{Box: images.Rect{X1: 200, Y1: 200, X2: 210, Y2: 210}, Score: 0.7, Class: 0},
	}

	filtered := ApplyGreedyNMS(detections, config)
	assert.Len(t, filtered, 2)
}

func TestApplyGreedyNMSEmptyInput(t *testing.T) {
	assert.Nil(t, ApplyGreedyNMS(nil, &NMSConfig{IoUThreshold: 0.5}))
}
