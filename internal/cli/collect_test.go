package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatFieldValue verifies that byte counts print as plain decimals
// (no scientific notation) and that fractional values keep only their
// significant digits.
func TestFormatFieldValue(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"large byte count", 16657203200, "16657203200"},
		{"percent", 42.5, "42.5"},
		{"load average", 0.07, "0.07"},
		{"whole number", 8, "8"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFieldValue(tt.value))
		})
	}
}
