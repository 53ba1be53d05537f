// Package models - Model configuration loading.
package models

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/visionml/godetect/models/postprocess"
)

// Defaults applied to fields a configuration leaves unset.
const (
	DefaultInputWidth  = 640
	DefaultInputHeight = 640

	defaultIoUThreshold  = 0.65
	defaultMaxDetections = 300
)

var (
	defaultInputs  = []string{"images"}
	defaultOutputs = []string{"output0"}
)

// Config describes a detection model: where its tensors are named, how
// large its input plane is, and which classes it predicts.
type Config struct {
	// Arch is a free-form architecture label, recorded for diagnostics.
	Arch string `json:"arch"        yaml:"arch"`
	// InputWidth, InputHeight are the model input plane dimensions.
	InputWidth  int `json:"inputWidth"  yaml:"inputWidth"`
	InputHeight int `json:"inputHeight" yaml:"inputHeight"`
	// Inputs, Outputs name the model's input and output tensors.
	Inputs  []string `json:"inputs"      yaml:"inputs"`
	Outputs []string `json:"outputs"     yaml:"outputs"`
	// Classes are the class names in model output order.
	Classes []string `json:"classes"     yaml:"classes"`
	// NMS configures suppression of overlapping detections.
	NMS *postprocess.NMSConfig `json:"nms"         yaml:"nms"`
}

// LoadConfig reads a YAML model configuration and fills in defaults:
// a 640x640 input plane, YOLO tensor names, the COCO-80 class set, and
// class-aware NMS.
//
// Arguments:
//   - path: Path to the YAML configuration file.
//
// Returns:
//   - *Config: The parsed configuration.
//   - error: An error if the file cannot be read or parsed, or if the
//     configuration is invalid.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model config %s", path)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse model config %s", path)
	}

	if cfg.InputWidth == 0 {
		cfg.InputWidth = DefaultInputWidth
	}
	if cfg.InputHeight == 0 {
		cfg.InputHeight = DefaultInputHeight
	}
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = defaultInputs
	}
	if len(cfg.Outputs) == 0 {
		cfg.Outputs = defaultOutputs
	}
	if len(cfg.Classes) == 0 {
		cfg.Classes = COCOClasses
	}
	if cfg.NMS == nil {
		cfg.NMS = &postprocess.NMSConfig{
			IoUThreshold:  defaultIoUThreshold,
			ClassAware:    true,
			MaxDetections: defaultMaxDetections,
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid model config %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.InputWidth <= 0 || c.InputHeight <= 0 {
		return errors.Errorf("input plane %dx%d is not positive", c.InputWidth, c.InputHeight)
	}
	if len(c.Inputs) != 1 || len(c.Outputs) != 1 {
		return errors.Errorf(
			"expected exactly one input and one output tensor, got %d and %d",
			len(c.Inputs), len(c.Outputs))
	}
	if c.NMS.IoUThreshold <= 0 || c.NMS.IoUThreshold > 1 {
		return errors.Errorf("NMS IoU threshold %v out of range (0, 1]", c.NMS.IoUThreshold)
	}
	seen := make(map[string]struct{}, len(c.Classes))
	for _, name := range c.Classes {
		if name == "" {
			return errors.New("empty class name")
		}
		if _, dup := seen[name]; dup {
			return errors.Errorf("duplicate class name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
