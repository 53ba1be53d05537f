package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCOCOClassCount(t *testing.T) {
	assert.Len(t, COCOClasses, 80)
}

func TestValidateClassFilter(t *testing.T) {
	classes := []string{"person", "car", "dog"}

	tests := []struct {
		name    string
		filter  []string
		wantErr bool
	}{
		{name: "nil filter", filter: nil, wantErr: false},
		{name: "single known class", filter: []string{"car"}, wantErr: false},
		{name: "all known classes", filter: []string{"person", "car", "dog"}, wantErr: false},
		{name: "unknown class", filter: []string{"unicorn"}, wantErr: true},
		{name: "known then unknown", filter: []string{"person", "cat"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClassFilter(classes, tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateClassFilterErrorListsValidClasses(t *testing.T) {
	classes := []string{"person", "car"}

	err := ValidateClassFilter(classes, []string{"bicycle"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), `"bicycle"`)
	assert.Contains(t, err.Error(), "person")
	assert.Contains(t, err.Error(), "car")
}
