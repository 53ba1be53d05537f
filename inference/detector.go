// Package inference - Object detector built on ONNX Runtime.
package inference

import (
	"context"
	"image"
	"os"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/visionml/godetect/images"
	"github.com/visionml/godetect/models"
	"github.com/visionml/godetect/models/postprocess"
)

// strides are the feature map strides of the detection head, used to
// size the output tensor.
var strides = []int{8, 16, 32}

// Options configures detector construction.
type Options struct {
	// Device is the device identifier, e.g. "cpu" or "cuda:0".
	Device string
	// Deploy switches the session to deployment mode: full graph
	// optimization, sequential execution.
	Deploy bool
}

// Detector runs a detection model over single images, filters the
// predictions by score, and returns results in source image coordinates.
type Detector struct {
	cfg     *models.Config
	session *Session
}

// NewDetector loads a checkpoint and builds an inference session for it.
//
// Arguments:
//   - cfg: The model configuration.
//   - checkpoint: Path to the ONNX checkpoint file.
//   - opts: Device and deployment options.
//
// Returns:
//   - *Detector: The ready detector.
//   - error: An error if the checkpoint or session cannot be set up.
func NewDetector(cfg *models.Config, checkpoint string, opts Options) (*Detector, error) {
	if _, err := os.Stat(checkpoint); err != nil {
		return nil, errors.Wrapf(err, "checkpoint not found: %s", checkpoint)
	}
	if err := initEnvironment(); err != nil {
		return nil, err
	}

	device, err := ParseDevice(opts.Device)
	if err != nil {
		return nil, err
	}

	inputTensor, err := ort.NewEmptyTensor[float32](
		ort.NewShape(1, 3, int64(cfg.InputHeight), int64(cfg.InputWidth)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create input tensor")
	}

	outputTensor, err := ort.NewEmptyTensor[float32](
		ort.NewShape(1, int64(4+len(cfg.Classes)), int64(numPredictions(cfg))))
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrap(err, "failed to create output tensor")
	}

	options, err := sessionOptions(device, opts.Deploy)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, err
	}
	defer options.Destroy()

	session, err := ort.NewAdvancedSession(
		checkpoint,
		cfg.Inputs,
		cfg.Outputs,
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(err, "failed to load checkpoint %s", checkpoint)
	}

	return &Detector{
		cfg: cfg,
		session: &Session{
			Session: session,
			Input:   inputTensor,
			Output:  outputTensor,
		},
	}, nil
}

// numPredictions is the candidate box count of an anchor-free head over
// the configured input plane.
func numPredictions(cfg *models.Config) int {
	n := 0
	for _, s := range strides {
		n += (cfg.InputWidth / s) * (cfg.InputHeight / s)
	}
	return n
}

// Classes returns the model's class names in output order.
func (d *Detector) Classes() []string {
	return d.cfg.Classes
}

// Detect runs the model on one image and returns the detections whose
// score is at or above the threshold, suppressed and mapped back to
// source image coordinates.
//
// Arguments:
//   - ctx: Context checked at the call boundary.
//   - img: The image to run detection on.
//   - scoreThreshold: Minimum confidence score.
//
// Returns:
//   - []postprocess.Result: The surviving detections.
//   - error: An error if inference or decoding fails.
func (d *Detector) Detect(
	ctx context.Context,
	img image.Image,
	scoreThreshold float32,
) ([]postprocess.Result, error) {
	if d.session == nil {
		return nil, errors.New("detector is closed")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, errors.New("empty input image")
	}

	letterbox := images.FitLetterbox(srcW, srcH, d.cfg.InputWidth, d.cfg.InputHeight)
	if err := PrepareInput(img, letterbox, d.session.Input); err != nil {
		return nil, err
	}

	if err := d.session.Session.Run(); err != nil {
		return nil, errors.Wrap(err, "inference failed")
	}

	results, err := postprocess.DecodeDetections(
		d.session.Output.GetData(),
		len(d.cfg.Classes),
		letterbox,
		srcW, srcH,
		scoreThreshold,
	)
	if err != nil {
		return nil, err
	}

	return postprocess.ApplyGreedyNMS(results, d.cfg.NMS), nil
}

// Close releases the underlying session and tensors.
func (d *Detector) Close() {
	if d.session != nil {
		d.session.Close()
		d.session = nil
	}
}
