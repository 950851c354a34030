package planning

import (
	"fmt"
	"math"
)

// ratio divides a by b, or returns 0 when b is 0.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// percent formats a fraction as a percentage with one decimal, 0.125 -> "12.5%".
func percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// percentChange is the relative change from base to current in percent.
func percentChange(base, current float64) float64 {
	if base == 0 {
		return 0
	}
	return (current - base) / math.Abs(base) * 100
}
