package planning

import (
	"context"
	"fmt"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/mitchellh/mapstructure"
)

type StaffingDefaults struct {
	ManagerRatio          float64 `mapstructure:"manager_ratio"`
	SupervisorRatio       float64 `mapstructure:"supervisor_ratio"`
	CashierRatio          float64 `mapstructure:"cashier_ratio"`
	KitchenRatio          float64 `mapstructure:"kitchen_ratio"`
	ServiceRatio          float64 `mapstructure:"service_ratio"`
	MinStaffPerShift      int     `mapstructure:"min_staff_per_shift"`
	MaxStaffPerShift      int     `mapstructure:"max_staff_per_shift"`
	TargetFOHRatio        float64 `mapstructure:"target_foh_ratio"`
	StaffBufferPercentage float64 `mapstructure:"staff_buffer_percentage"`
}

type FinancialDefaults struct {
	MinWage                float64 `mapstructure:"min_wage"`
	BenefitsPercentage     float64 `mapstructure:"benefits_percentage"`
	BaseGrowthRate         float64 `mapstructure:"base_growth_rate"`
	Q1Factor               float64 `mapstructure:"q1_factor"`
	Q2Factor               float64 `mapstructure:"q2_factor"`
	Q3Factor               float64 `mapstructure:"q3_factor"`
	Q4Factor               float64 `mapstructure:"q4_factor"`
	TargetGrowthRate       float64 `mapstructure:"target_growth_rate"`
	MinGrowthRate          float64 `mapstructure:"min_growth_rate"`
	FoodCostPercentage     float64 `mapstructure:"food_cost_percentage"`
	BeverageCostPercentage float64 `mapstructure:"beverage_cost_percentage"`
	OverheadPercentage     float64 `mapstructure:"overhead_percentage"`
	TargetProfitMargin     float64 `mapstructure:"target_profit_margin"`
	MinProfitMargin        float64 `mapstructure:"min_profit_margin"`
	HistoricalGrowthRate   float64 `mapstructure:"historical_growth_rate"`
	TargetFoodCost         float64 `mapstructure:"target_food_cost"`
	TargetBeverageCost     float64 `mapstructure:"target_beverage_cost"`
	TargetLaborCost        float64 `mapstructure:"target_labor_cost"`
	TargetOverhead         float64 `mapstructure:"target_overhead"`
	TargetCostSavings      float64 `mapstructure:"target_cost_savings"`
	RevenueToLaborRatio    float64 `mapstructure:"revenue_to_labor_ratio"`
}

type OperationalDefaults struct {
	PeakHourBuffer     float64 `mapstructure:"peak_hour_buffer"`
	PeakHourMultiplier float64 `mapstructure:"peak_hour_multiplier"`
	OffPeakMultiplier  float64 `mapstructure:"off_peak_multiplier"`
	PeakSeasonFactor   float64 `mapstructure:"peak_season_factor"`
	OffSeasonFactor    float64 `mapstructure:"off_season_factor"`
}

type EfficiencyDefaults struct {
	TargetUtilization float64 `mapstructure:"target_utilization"`
	MinCoverPerStaff  float64 `mapstructure:"min_cover_per_staff"`
	MaxCoverPerStaff  float64 `mapstructure:"max_cover_per_staff"`
}

type SpaceDefaults struct {
	MinAreaPerCover float64 `mapstructure:"min_area_per_cover"` // m²
}

// Settings is one immutable snapshot of every default value category.
type Settings struct {
	Staffing    StaffingDefaults
	Financial   FinancialDefaults
	Operational OperationalDefaults
	Efficiency  EfficiencyDefaults
	Space       SpaceDefaults
}

// DefaultSettings holds the literal fallbacks used for any value the
// provider does not supply.
func DefaultSettings() Settings {
	return Settings{
		Staffing: StaffingDefaults{
			ManagerRatio:          0.1,
			SupervisorRatio:       0.2,
			CashierRatio:          0.15,
			KitchenRatio:          0.4,
			ServiceRatio:          0.6,
			MinStaffPerShift:      2,
			MaxStaffPerShift:      20,
			TargetFOHRatio:        0.6,
			StaffBufferPercentage: 0.15,
		},
		Financial: FinancialDefaults{
			MinWage:                15.00,
			BenefitsPercentage:     0.25,
			BaseGrowthRate:         0.05,
			Q1Factor:               0.9,
			Q2Factor:               1.0,
			Q3Factor:               1.1,
			Q4Factor:               1.2,
			TargetGrowthRate:       0.1,
			MinGrowthRate:          0.05,
			FoodCostPercentage:     0.35,
			BeverageCostPercentage: 0.25,
			OverheadPercentage:     0.15,
			TargetProfitMargin:     0.15,
			MinProfitMargin:        0.1,
			HistoricalGrowthRate:   0.03,
			TargetFoodCost:         0.35,
			TargetBeverageCost:     0.25,
			TargetLaborCost:        0.25,
			TargetOverhead:         0.15,
			TargetCostSavings:      0.1,
			RevenueToLaborRatio:    3,
		},
		Operational: OperationalDefaults{
			PeakHourBuffer:     0.3,
			PeakHourMultiplier: 1.5,
			OffPeakMultiplier:  0.7,
			PeakSeasonFactor:   1.2,
			OffSeasonFactor:    0.8,
		},
		Efficiency: EfficiencyDefaults{
			TargetUtilization: 0.85,
			MinCoverPerStaff:  20,
			MaxCoverPerStaff:  40,
		},
		Space: SpaceDefaults{
			MinAreaPerCover: 1.5,
		},
	}
}

// LoadSettings reads each default value category once and overlays the
// values onto DefaultSettings.
func LoadSettings(ctx context.Context, provider ConfigurationProvider) (Settings, error) {
	settings := DefaultSettings()
	targets := []struct {
		category string
		out      any
	}{
		{models.CategoryStaffing, &settings.Staffing},
		{models.CategoryFinancial, &settings.Financial},
		{models.CategoryOperational, &settings.Operational},
		{models.CategoryEfficiency, &settings.Efficiency},
		{models.CategorySpace, &settings.Space},
	}
	for _, t := range targets {
		values, err := provider.GetDefaults(ctx, t.category)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to load %s defaults: %w", t.category, err)
		}
		if err := decodeValues(values, t.out); err != nil {
			return Settings{}, fmt.Errorf("failed to decode %s defaults: %w", t.category, err)
		}
	}
	return settings, nil
}

// ClampStaff bounds a staff count to the per-shift limits.
func (s StaffingDefaults) ClampStaff(count int) int {
	return max(s.MinStaffPerShift, min(count, s.MaxStaffPerShift))
}

// HourlyCost is the loaded cost of one staff member.
func (f FinancialDefaults) HourlyCost() float64 {
	return f.MinWage * (1 + f.BenefitsPercentage)
}

// LaborCost prices every position of the given groups at HourlyCost.
func (f FinancialDefaults) LaborCost(positions ...[]models.StaffPosition) float64 {
	total := 0.0
	for _, group := range positions {
		for _, p := range group {
			total += float64(p.Count) * f.HourlyCost()
		}
	}
	return total
}

func decodeValues(values map[string]any, out any) error {
	if len(values) == 0 {
		return nil
	}
	return weakDecode(values, out)
}

func weakDecode(input, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Constants are looked up one at a time, at calculator construction.

func loadConstant(ctx context.Context, provider ConfigurationProvider, category, name string, out any) error {
	raw, err := provider.GetConstant(ctx, category, name)
	if err != nil {
		return err
	}
	if err := weakDecode(raw, out); err != nil {
		return fmt.Errorf("failed to decode constant %s.%s: %w", category, name, err)
	}
	return nil
}

type FactorTable map[string]float64

// Factor falls back to 1.0 for keys the table does not carry.
func (t FactorTable) Factor(key string) float64 {
	if f, ok := t[key]; ok {
		return f
	}
	return 1.0
}

func loadFactorTable(ctx context.Context, provider ConfigurationProvider, category, name string) (FactorTable, error) {
	table := FactorTable{}
	if err := loadConstant(ctx, provider, category, name, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func loadThreshold(ctx context.Context, provider ConfigurationProvider, category, name string) (float64, error) {
	var value float64
	if err := loadConstant(ctx, provider, category, name, &value); err != nil {
		return 0, err
	}
	return value, nil
}

func loadShifts(ctx context.Context, provider ConfigurationProvider) (map[string]models.Shift, error) {
	shifts := map[string]models.Shift{}
	if err := loadConstant(ctx, provider, models.ConstantCategoryShifts, models.ConstantStandardShifts, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}
