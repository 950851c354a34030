package planning

import (
	"math"

	"github.com/chrisdamba/outletplanner/internal/models"
)

// CalculateCapacity derives seating capacity from the outlet geometry.
// Out of range inputs are clamped: a negative area counts as zero and the
// FOH percentage is bounded to [0, 100].
func CalculateCapacity(space models.SpaceParameters, minAreaPerCover float64) models.Capacity {
	area := math.Max(space.TotalArea, 0)
	pct := math.Min(math.Max(space.FOHPercentage, 0), 100)
	external := max(space.ExternalSeating, 0)

	fohArea := area * (pct / 100)
	internal := 0
	if minAreaPerCover > 0 {
		internal = int(math.Floor(fohArea / minAreaPerCover))
	}

	return models.Capacity{
		TotalCapacity:    internal + external,
		InternalCapacity: internal,
		ExternalCapacity: external,
		FOHArea:          fohArea,
	}
}
