package models

import (
	"fmt"
	"strings"
)

type ServiceStyle string

type KitchenComplexity string

type ProjectionPeriod string

const (
	ServiceStyleQuickService ServiceStyle = "quick-service"
	ServiceStyleCasualDining ServiceStyle = "casual-dining"
	ServiceStyleFineDining   ServiceStyle = "fine-dining"

	KitchenComplexitySimple   KitchenComplexity = "simple"
	KitchenComplexityModerate KitchenComplexity = "moderate"
	KitchenComplexityComplex  KitchenComplexity = "complex"

	ProjectionMonthly   ProjectionPeriod = "monthly"
	ProjectionQuarterly ProjectionPeriod = "quarterly"
	ProjectionYearly    ProjectionPeriod = "yearly"
)

// default value categories
const (
	CategoryStaffing    = "staffing"
	CategoryFinancial   = "financial"
	CategoryOperational = "operational"
	CategoryEfficiency  = "efficiency"
	CategorySpace       = "space"
)

// operational constant categories and names
const (
	ConstantCategoryShifts   = "shifts"
	ConstantCategoryService  = "service"
	ConstantCategoryKitchen  = "kitchen"
	ConstantCategoryCosts    = "costs"
	ConstantCategoryTraffic  = "traffic"
	ConstantCategoryStaffing = "staffing"

	ConstantStandardShifts                = "standard_shifts"
	ConstantServiceStyleFactors           = "service_style_factors"
	ConstantComplexityFactors             = "complexity_factors"
	ConstantHighCostThreshold             = "high_cost_threshold"
	ConstantPeakTrafficThreshold          = "peak_traffic_threshold"
	ConstantSignificantReductionThreshold = "significant_reduction_threshold"
)

// Weekdays is the fixed row order of the peak hour heatmap.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const (
	PositionManager    = "manager"
	PositionSupervisor = "supervisor"
	PositionCashier    = "cashier"
	PositionService    = "service"
	PositionKitchen    = "kitchen"
)

// Key is the spelling used by the service_style_factors constant map.
func (s ServiceStyle) Key() string {
	return strings.ReplaceAll(string(s), "-", "_")
}

func (c KitchenComplexity) Key() string {
	return string(c)
}

func ParseServiceStyle(v string) (ServiceStyle, error) {
	normalized := ServiceStyle(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "_", "-"))
	switch normalized {
	case ServiceStyleQuickService, ServiceStyleCasualDining, ServiceStyleFineDining:
		return normalized, nil
	}
	return "", fmt.Errorf("unknown service style %q", v)
}

func ParseKitchenComplexity(v string) (KitchenComplexity, error) {
	normalized := KitchenComplexity(strings.ToLower(strings.TrimSpace(v)))
	switch normalized {
	case KitchenComplexitySimple, KitchenComplexityModerate, KitchenComplexityComplex:
		return normalized, nil
	}
	return "", fmt.Errorf("unknown kitchen complexity %q", v)
}

func ParseProjectionPeriod(v string) (ProjectionPeriod, error) {
	normalized := ProjectionPeriod(strings.ToLower(strings.TrimSpace(v)))
	switch normalized {
	case ProjectionMonthly, ProjectionQuarterly, ProjectionYearly:
		return normalized, nil
	}
	return "", fmt.Errorf("unknown projection period %q", v)
}

func (s *ServiceStyle) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ""
		return nil
	}
	parsed, err := ParseServiceStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (c *KitchenComplexity) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = ""
		return nil
	}
	parsed, err := ParseKitchenComplexity(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
