package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDevice(t *testing.T) {
	tests := []struct {
		input    string
		provider Provider
		id       int
	}{
		{input: "cpu", provider: ProviderCPU, id: 0},
		{input: "CPU", provider: ProviderCPU, id: 0},
		{input: "cuda", provider: ProviderCUDA, id: 0},
		{input: "cuda:0", provider: ProviderCUDA, id: 0},
		{input: "cuda:2", provider: ProviderCUDA, id: 2},
		{input: "coreml", provider: ProviderCoreML, id: 0},
		{input: "openvino", provider: ProviderOpenVINO, id: 0},
		{input: " cpu ", provider: ProviderCPU, id: 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			device, err := ParseDevice(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.provider, device.Provider)
			assert.Equal(t, tt.id, device.ID)
		})
	}
}

func TestParseDeviceRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "tpu", "cuda:", "cuda:-1", "cuda:x", "cpu:0:0"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDevice(input)
			assert.Error(t, err)
		})
	}
}
