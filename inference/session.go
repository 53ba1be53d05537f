// Package inference - ONNX Runtime sessions for object detection.
package inference

import (
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// Session bundles an ONNX Runtime session with its preallocated input
// and output tensors.
type Session struct {
	Session *ort.AdvancedSession
	Input   *ort.Tensor[float32]
	Output  *ort.Tensor[float32]
}

// Close releases the resources associated with the Session.
func (s *Session) Close() {
	if s.Input != nil {
		s.Input.Destroy()
		s.Input = nil
	}
	if s.Output != nil {
		s.Output.Destroy()
		s.Output = nil
	}
	if s.Session != nil {
		s.Session.Destroy()
		s.Session = nil
	}
}

var (
	initOnce sync.Once
	initErr  error
)

// initEnvironment bootstraps the ONNX Runtime shared library once per
// process.
func initEnvironment() error {
	initOnce.Do(func() {
		libPath := sharedLibPath()
		if _, err := os.Stat(libPath); os.IsNotExist(err) {
			initErr = errors.Errorf(
				"ONNX Runtime library not found at %s (set ONNXRUNTIME_SHARED_LIBRARY_PATH to override)",
				libPath)
			return
		}

		ort.SetEnvironmentLogLevel(ort.LoggingLevelWarning)
		ort.SetSharedLibraryPath(libPath)

		if err := ort.InitializeEnvironment(); err != nil {
			initErr = errors.Wrap(err, "failed to initialize ONNX Runtime environment")
		}
	})
	return initErr
}

// sharedLibPath resolves the ONNX Runtime shared library for the current
// platform.
func sharedLibPath() string {
	if p := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); p != "" {
		return p
	}
	if runtime.GOOS == "windows" {
		return "third_party/onnxruntime.dll"
	}
	if runtime.GOOS == "darwin" {
		if runtime.GOARCH == "arm64" {
			return "third_party/onnxruntime_arm64.dylib"
		}
		return "third_party/onnxruntime_amd64.dylib"
	}
	if runtime.GOARCH == "arm64" {
		return "third_party/onnxruntime_arm64.so"
	}
	return "third_party/onnxruntime.so"
}
