package planning

import (
	"testing"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCalculateCapacity(t *testing.T) {
	tests := []struct {
		name            string
		space           models.SpaceParameters
		minAreaPerCover float64
		want            models.Capacity
	}{
		{
			name:            "typical outlet",
			space:           models.SpaceParameters{TotalArea: 200, FOHPercentage: 70, ExternalSeating: 20},
			minAreaPerCover: 1.5,
			want:            models.Capacity{TotalCapacity: 113, InternalCapacity: 93, ExternalCapacity: 20, FOHArea: 140},
		},
		{
			name:            "no external seating",
			space:           models.SpaceParameters{TotalArea: 600, FOHPercentage: 70},
			minAreaPerCover: 1.5,
			want:            models.Capacity{TotalCapacity: 280, InternalCapacity: 280, FOHArea: 420},
		},
		{
			name:            "zero area per cover",
			space:           models.SpaceParameters{TotalArea: 200, FOHPercentage: 50, ExternalSeating: 5},
			minAreaPerCover: 0,
			want:            models.Capacity{TotalCapacity: 5, InternalCapacity: 0, ExternalCapacity: 5, FOHArea: 100},
		},
		{
			name:            "negative area is clamped",
			space:           models.SpaceParameters{TotalArea: -50, FOHPercentage: 70, ExternalSeating: 10},
			minAreaPerCover: 1.5,
			want:            models.Capacity{TotalCapacity: 10, ExternalCapacity: 10},
		},
		{
			name:            "percentage above 100 is clamped",
			space:           models.SpaceParameters{TotalArea: 30, FOHPercentage: 150},
			minAreaPerCover: 1.5,
			want:            models.Capacity{TotalCapacity: 20, InternalCapacity: 20, FOHArea: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCapacity(tt.space, tt.minAreaPerCover)
			assert.Equal(t, tt.want.TotalCapacity, got.TotalCapacity)
			assert.Equal(t, tt.want.InternalCapacity, got.InternalCapacity)
			assert.Equal(t, tt.want.ExternalCapacity, got.ExternalCapacity)
			assert.InDelta(t, tt.want.FOHArea, got.FOHArea, 1e-9)
		})
	}
}

func TestCalculateCapacity_TotalIsInternalPlusExternal(t *testing.T) {
	for _, area := range []float64{0.5, 12, 75.3, 200, 1999} {
		for _, pct := range []float64{0, 10, 33.3, 70, 100} {
			for _, external := range []int{0, 1, 40} {
				space := models.SpaceParameters{TotalArea: area, FOHPercentage: pct, ExternalSeating: external}
				got := CalculateCapacity(space, 1.5)

				assert.GreaterOrEqual(t, got.InternalCapacity, 0)
				assert.Equal(t, got.InternalCapacity+external, got.TotalCapacity, "space %+v", space)
			}
		}
	}
}
