package models

type StaffPosition struct {
	Position string  `json:"position" yaml:"position"`
	Count    int     `json:"count" yaml:"count"`
	Ratio    float64 `json:"ratio" yaml:"ratio"`
}

type Shift struct {
	Start string `json:"start" mapstructure:"start" yaml:"start"`
	End   string `json:"end" mapstructure:"end" yaml:"end"`
}

type Capacity struct {
	TotalCapacity    int     `json:"total_capacity" yaml:"total_capacity"`
	InternalCapacity int     `json:"internal_capacity" yaml:"internal_capacity"`
	ExternalCapacity int     `json:"external_capacity" yaml:"external_capacity"`
	FOHArea          float64 `json:"foh_area" yaml:"foh_area"`
}

type StaffingStructure struct {
	FOHRatio    float64          `json:"foh_ratio" yaml:"foh_ratio"`
	BOHRatio    float64          `json:"boh_ratio" yaml:"boh_ratio"`
	DailyCovers int              `json:"daily_covers" yaml:"daily_covers"`
	Capacity    Capacity         `json:"capacity" yaml:"capacity"`
	Shifts      map[string]Shift `json:"shifts,omitempty" yaml:"shifts,omitempty"`
}

type StaffingResult struct {
	TotalStaff        int               `json:"total_staff" yaml:"total_staff"`
	FOHStaff          []StaffPosition   `json:"foh_staff" yaml:"foh_staff"`
	BOHStaff          []StaffPosition   `json:"boh_staff" yaml:"boh_staff"`
	LaborCost         float64           `json:"labor_cost" yaml:"labor_cost"`
	StaffingStructure StaffingStructure `json:"staffing_structure" yaml:"staffing_structure"`
	Recommendations   []string          `json:"recommendations" yaml:"recommendations"`
}

// FOHCount and BOHCount sum the headcount of each side.
func (r StaffingResult) FOHCount() int { return SumCounts(r.FOHStaff) }

func (r StaffingResult) BOHCount() int { return SumCounts(r.BOHStaff) }

func SumCounts(positions []StaffPosition) int {
	total := 0
	for _, p := range positions {
		total += p.Count
	}
	return total
}

type RevenueProjection struct {
	Periods          []string  `json:"periods" yaml:"periods"`
	Revenue          []float64 `json:"revenue" yaml:"revenue"`
	GrowthRate       []float64 `json:"growth_rate" yaml:"growth_rate"`
	SeasonalAdjusted []float64 `json:"seasonal_adjusted" yaml:"seasonal_adjusted"`
}

type RevenueResult struct {
	ProjectedRevenue          RevenueProjection `json:"projected_revenue" yaml:"projected_revenue"`
	GrowthRate                float64           `json:"growth_rate" yaml:"growth_rate"`
	PeakRevenue               float64           `json:"peak_revenue" yaml:"peak_revenue"`
	AverageRevenue            float64           `json:"average_revenue" yaml:"average_revenue"`
	Insights                  []string          `json:"insights" yaml:"insights"`
	OptimizationOpportunities []string          `json:"optimization_opportunities" yaml:"optimization_opportunities"`
}

type CostBreakdown struct {
	FoodCost     float64 `json:"food_cost" yaml:"food_cost"`
	BeverageCost float64 `json:"beverage_cost" yaml:"beverage_cost"`
	LaborCost    float64 `json:"labor_cost" yaml:"labor_cost"`
	OverheadCost float64 `json:"overhead_cost" yaml:"overhead_cost"`
	TotalCosts   float64 `json:"total_costs" yaml:"total_costs"`
}

type PeriodFinancials struct {
	Revenue      float64 `json:"revenue" yaml:"revenue"`
	FoodCost     float64 `json:"food_cost" yaml:"food_cost"`
	BeverageCost float64 `json:"beverage_cost" yaml:"beverage_cost"`
	LaborCost    float64 `json:"labor_cost" yaml:"labor_cost"`
	OverheadCost float64 `json:"overhead_cost" yaml:"overhead_cost"`
}

type HistoricalComparison struct {
	Current  PeriodFinancials `json:"current" yaml:"current"`
	Previous PeriodFinancials `json:"previous" yaml:"previous"`
}

type PLResult struct {
	Revenue                   float64              `json:"revenue" yaml:"revenue"`
	Costs                     CostBreakdown        `json:"costs" yaml:"costs"`
	Profit                    float64              `json:"profit" yaml:"profit"`
	ProfitMargin              float64              `json:"profit_margin" yaml:"profit_margin"`
	HistoricalComparison      HistoricalComparison `json:"historical_comparison" yaml:"historical_comparison"`
	Insights                  []string             `json:"insights" yaml:"insights"`
	OptimizationOpportunities []string             `json:"optimization_opportunities" yaml:"optimization_opportunities"`
}

type HeatmapCell struct {
	Traffic float64 `json:"traffic" yaml:"traffic"`
	Factor  float64 `json:"factor" yaml:"factor"`
	IsPeak  bool    `json:"is_peak" yaml:"is_peak"`
}

// Heatmap is keyed by weekday name, then by hour of day ("0".."23").
type Heatmap map[string]map[string]HeatmapCell

type StaffLevels struct {
	FOH int `json:"foh" yaml:"foh"`
	BOH int `json:"boh" yaml:"boh"`
}

type PeakStaffing struct {
	Base StaffLevels `json:"base" yaml:"base"`
	Peak StaffLevels `json:"peak" yaml:"peak"`
}

type PeakHourResult struct {
	HeatmapData               Heatmap      `json:"heatmap_data" yaml:"heatmap_data"`
	PeakHours                 []int        `json:"peak_hours" yaml:"peak_hours"`
	StaffingRequirements      PeakStaffing `json:"staffing_requirements" yaml:"staffing_requirements"`
	Insights                  []string     `json:"insights" yaml:"insights"`
	OptimizationOpportunities []string     `json:"optimization_opportunities" yaml:"optimization_opportunities"`
}

type OptimizedStaffing struct {
	FOH []StaffPosition `json:"foh" yaml:"foh"`
	BOH []StaffPosition `json:"boh" yaml:"boh"`
}

type OptimizationResult struct {
	OriginalScenario          Scenario          `json:"original_scenario" yaml:"original_scenario"`
	OptimizedStaffing         OptimizedStaffing `json:"optimized_staffing" yaml:"optimized_staffing"`
	CostSavings               float64           `json:"cost_savings" yaml:"cost_savings"`
	Insights                  []string          `json:"insights" yaml:"insights"`
	OptimizationOpportunities []string          `json:"optimization_opportunities" yaml:"optimization_opportunities"`
}

type ScenarioEvaluation struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Staffing   StaffingResult `json:"staffing" yaml:"staffing"`
	Financials PLResult       `json:"financials" yaml:"financials"`
}

type RangeSummary struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
	Avg float64 `json:"avg" yaml:"avg"`
}

type ScenarioDifferences struct {
	LaborCost RangeSummary `json:"labor_cost" yaml:"labor_cost"`
	Profit    RangeSummary `json:"profit" yaml:"profit"`
	Staffing  RangeSummary `json:"staffing" yaml:"staffing"`
}

type ComparisonResult struct {
	Scenarios       []ScenarioEvaluation `json:"scenarios" yaml:"scenarios"`
	Differences     ScenarioDifferences  `json:"differences" yaml:"differences"`
	Insights        []string             `json:"insights" yaml:"insights"`
	Recommendations []string             `json:"recommendations" yaml:"recommendations"`
}

type WhatIfImpact struct {
	LaborCostChange float64 `json:"labor_cost_change" yaml:"labor_cost_change"` // percent
	ProfitChange    float64 `json:"profit_change" yaml:"profit_change"`
	StaffingChange  float64 `json:"staffing_change" yaml:"staffing_change"`
}

type WhatIfResult struct {
	BaseScenario     ScenarioEvaluation `json:"base_scenario" yaml:"base_scenario"`
	ModifiedScenario ScenarioEvaluation `json:"modified_scenario" yaml:"modified_scenario"`
	Impact           WhatIfImpact       `json:"impact" yaml:"impact"`
	Insights         []string           `json:"insights" yaml:"insights"`
}
