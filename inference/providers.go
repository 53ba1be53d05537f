// Package inference - Execution providers and session options.
package inference

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// Provider identifies an ONNX Runtime execution provider.
type Provider string

const (
	// ProviderCPU runs inference on the default CPU provider.
	ProviderCPU Provider = "cpu"
	// ProviderCUDA runs inference on an NVIDIA GPU.
	ProviderCUDA Provider = "cuda"
	// ProviderCoreML runs inference through CoreML on Apple hardware.
	ProviderCoreML Provider = "coreml"
	// ProviderOpenVINO runs inference through OpenVINO on Intel hardware.
	ProviderOpenVINO Provider = "openvino"
)

// Device is a parsed device identifier such as "cpu" or "cuda:1".
type Device struct {
	Provider Provider
	// ID selects among multiple devices of the same provider.
	ID int
}

// ParseDevice parses a device identifier string.
//
// Arguments:
//   - s: "cpu", "cuda", "cuda:N", "coreml", or "openvino".
//
// Returns:
//   - Device: The parsed device.
//   - error: An error if the identifier is not recognized.
func ParseDevice(s string) (Device, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	id := 0
	if i := strings.IndexByte(name, ':'); i >= 0 {
		n, err := strconv.Atoi(name[i+1:])
		if err != nil || n < 0 {
			return Device{}, errors.Errorf("invalid device identifier %q", s)
		}
		name, id = name[:i], n
	}

	switch Provider(name) {
	case ProviderCPU, ProviderCUDA, ProviderCoreML, ProviderOpenVINO:
		return Device{Provider: Provider(name), ID: id}, nil
	}
	return Device{}, errors.Errorf(
		"unknown device %q, expected cpu, cuda[:N], coreml or openvino", s)
}

// sessionOptions builds ONNX Runtime session options for the device.
// Deploy mode trades load time for the fastest execution the runtime can
// produce: full graph optimization with sequential execution.
func sessionOptions(device Device, deploy bool) (*ort.SessionOptions, error) {
	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session options")
	}

	// Zero lets the runtime pick thread counts.
	options.SetIntraOpNumThreads(0)
	options.SetInterOpNumThreads(0)

	if deploy {
		options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll)
		options.SetExecutionMode(ort.ExecutionModeSequential)
	} else {
		options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended)
		options.SetExecutionMode(ort.ExecutionModeParallel)
	}

	switch device.Provider {
	case ProviderCPU:
		// Default provider, nothing to append.
	case ProviderCUDA:
		cudaOpts, err := ort.NewCUDAProviderOptions()
		if err != nil {
			options.Destroy()
			return nil, errors.Wrap(err, "failed to create CUDA provider options")
		}
		defer cudaOpts.Destroy()
		if err := cudaOpts.Update(map[string]string{
			"device_id": strconv.Itoa(device.ID),
		}); err != nil {
			options.Destroy()
			return nil, errors.Wrap(err, "failed to configure CUDA provider")
		}
		if err := options.AppendExecutionProviderCUDA(cudaOpts); err != nil {
			options.Destroy()
			return nil, errors.Wrap(err, "failed to enable CUDA")
		}
	case ProviderCoreML:
		if err := options.AppendExecutionProviderCoreML(0); err != nil {
			options.Destroy()
			return nil, errors.Wrap(err, "failed to enable CoreML")
		}
	case ProviderOpenVINO:
		if err := options.AppendExecutionProviderOpenVINO(map[string]string{
			"device_type": "CPU",
			"precision":   "FP32",
		}); err != nil {
			options.Destroy()
			return nil, errors.Wrap(err, "failed to enable OpenVINO")
		}
	}

	return options, nil
}
