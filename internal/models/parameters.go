package models

type SpaceParameters struct {
	TotalArea       float64 `json:"total_area" mapstructure:"total_area" yaml:"total_area" validate:"gte=0"`             // m²
	FOHPercentage   float64 `json:"foh_percentage" mapstructure:"foh_percentage" yaml:"foh_percentage" validate:"gte=0,lte=100"` // 0-100
	ExternalSeating int     `json:"external_seating" mapstructure:"external_seating" yaml:"external_seating" validate:"gte=0"`
}

type ServiceParameters struct {
	ServiceStyle      ServiceStyle      `json:"service_style" mapstructure:"service_style" yaml:"service_style" validate:"omitempty,oneof=quick-service casual-dining fine-dining"`
	KitchenComplexity KitchenComplexity `json:"kitchen_complexity" mapstructure:"kitchen_complexity" yaml:"kitchen_complexity" validate:"omitempty,oneof=simple moderate complex"`
}

type OperationalParameters struct {
	AverageDailyRevenue float64            `json:"average_daily_revenue" mapstructure:"average_daily_revenue" yaml:"average_daily_revenue" validate:"gte=0"`
	MonthlyLaborCost    float64            `json:"monthly_labor_cost" mapstructure:"monthly_labor_cost" yaml:"monthly_labor_cost" validate:"gte=0"`
	BaseTraffic         float64            `json:"base_traffic" mapstructure:"base_traffic" yaml:"base_traffic" validate:"gte=0"`
	DayFactors          map[string]float64 `json:"day_factors" mapstructure:"day_factors" yaml:"day_factors" validate:"dive,gte=0"`    // weekday name -> multiplier
	HourFactors         map[int]float64    `json:"hour_factors" mapstructure:"hour_factors" yaml:"hour_factors" validate:"dive,keys,gte=0,lte=23,endkeys,gte=0"` // hour of day -> multiplier
	PeakHours           []int              `json:"peak_hours" mapstructure:"peak_hours" yaml:"peak_hours" validate:"dive,gte=0,lte=23"`
	BaseFOHStaff        int                `json:"base_foh_staff" mapstructure:"base_foh_staff" yaml:"base_foh_staff" validate:"gte=0"`
	BaseBOHStaff        int                `json:"base_boh_staff" mapstructure:"base_boh_staff" yaml:"base_boh_staff" validate:"gte=0"`
}

// IsPeakHour reports whether hour is one of the configured peak hours.
func (o OperationalParameters) IsPeakHour(hour int) bool {
	for _, h := range o.PeakHours {
		if h == hour {
			return true
		}
	}
	return false
}

// DistinctPeakHours returns the peak hours with duplicates removed, in input order.
func (o OperationalParameters) DistinctPeakHours() []int {
	seen := make(map[int]bool, len(o.PeakHours))
	hours := make([]int, 0, len(o.PeakHours))
	for _, h := range o.PeakHours {
		if seen[h] {
			continue
		}
		seen[h] = true
		hours = append(hours, h)
	}
	return hours
}

// DayFactor falls back to 1.0 for weekdays without an explicit factor.
func (o OperationalParameters) DayFactor(day string) float64 {
	if f, ok := o.DayFactors[day]; ok {
		return f
	}
	return 1.0
}

func (o OperationalParameters) HourFactor(hour int) float64 {
	if f, ok := o.HourFactors[hour]; ok {
		return f
	}
	return 1.0
}
