package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name    string
		base    float64
		current float64
		want    float64
	}{
		{name: "growth", base: 200, current: 250, want: 25},
		{name: "decline", base: 200, current: 150, want: -25},
		{name: "zero base", base: 0, current: 40, want: 0},
		// A loss shrinking toward zero is an improvement, so the sign
		// follows the direction of the change.
		{name: "smaller loss", base: -100, current: -50, want: 50},
		{name: "deeper loss", base: -100, current: -150, want: -50},
		{name: "loss to profit", base: -100, current: 100, want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, percentChange(tt.base, tt.current), 1e-9)
		})
	}
}
