// Package postprocess - Non-Maximum Suppression for detection results.
package postprocess

import (
	"sort"

	"github.com/visionml/godetect/images"
)

// NMSConfig defines parameters for Non-Maximum Suppression.
type NMSConfig struct {
	// Overlap threshold above which a lower-scored box is suppressed.
	IoUThreshold float32 `json:"iouThreshold"  yaml:"iouThreshold"`
	// If true, suppress only within the same class.
	ClassAware bool `json:"classAware"    yaml:"classAware"`
	// Upper bound on the number of results kept. Zero means no limit.
	MaxDetections int `json:"maxDetections" yaml:"maxDetections"`
}

// ApplyGreedyNMS performs standard greedy Non-Maximum Suppression.
//
// Detections are sorted by descending score before suppression, so the
// input does not need to be ordered.
//
// Arguments:
//   - detections: Slice of candidate detections.
//   - config: NMS configuration.
//
// Returns:
//   - Filtered slice of detections, highest score first.
func ApplyGreedyNMS(detections []Result, config *NMSConfig) []Result {
	n := len(detections)
	if n == 0 {
		return nil
	}

	sort.Slice(detections, func(i, j int) bool {
		return detections[i].Score > detections[j].Score
	})

	filtered := make([]Result, 0, n)
	used := make([]bool, n)

	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}

		anchor := detections[i]
		filtered = append(filtered, anchor)
		used[i] = true

		if config.MaxDetections > 0 && len(filtered) >= config.MaxDetections {
			break
		}

		for j := i + 1; j < n; j++ {
			if used[j] {
				continue
			}
			if config.ClassAware && anchor.Class != detections[j].Class {
				continue
			}

			// Suppress if IoU exceeds threshold.
			if images.CalculateIoU(anchor.Box, detections[j].Box) > config.IoUThreshold {
				used[j] = true
			}
		}
	}

	return filtered
}
