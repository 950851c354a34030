package planning

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/chrisdamba/outletplanner/internal/models"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// daysPerMonth converts average daily revenue into the monthly base.
const daysPerMonth = 30

// CostCategory tags one line of the cost breakdown.
type CostCategory int

const (
	CostFood CostCategory = iota
	CostBeverage
	CostLabor
	CostOverhead
)

// CostCategories lists every category in reporting order.
var CostCategories = []CostCategory{CostFood, CostBeverage, CostLabor, CostOverhead}

func (c CostCategory) String() string {
	switch c {
	case CostFood:
		return "food cost"
	case CostBeverage:
		return "beverage cost"
	case CostLabor:
		return "labor cost"
	case CostOverhead:
		return "overhead cost"
	}
	return fmt.Sprintf("CostCategory(%d)", int(c))
}

// Target is the share of total costs the category should stay under.
func (c CostCategory) Target(f FinancialDefaults) float64 {
	switch c {
	case CostFood:
		return f.TargetFoodCost
	case CostBeverage:
		return f.TargetBeverageCost
	case CostLabor:
		return f.TargetLaborCost
	case CostOverhead:
		return f.TargetOverhead
	}
	return 0
}

func (c CostCategory) Amount(costs models.CostBreakdown) float64 {
	switch c {
	case CostFood:
		return costs.FoodCost
	case CostBeverage:
		return costs.BeverageCost
	case CostLabor:
		return costs.LaborCost
	case CostOverhead:
		return costs.OverheadCost
	}
	return 0
}

type FinancialCalculator struct {
	settings          Settings
	highCostThreshold float64
	now               func() time.Time
	logger            *zap.Logger
}

type FinancialOption func(*FinancialCalculator)

// WithClock sets the time period labels are generated from.
func WithClock(now func() time.Time) FinancialOption {
	return func(c *FinancialCalculator) {
		c.now = now
	}
}

func NewFinancialCalculator(ctx context.Context, provider ConfigurationProvider, logger *zap.Logger, opts ...FinancialOption) (*FinancialCalculator, error) {
	settings, err := LoadSettings(ctx, provider)
	if err != nil {
		return nil, err
	}
	return newFinancialCalculator(ctx, provider, settings, logger, opts...)
}

func newFinancialCalculator(ctx context.Context, provider ConfigurationProvider, settings Settings, logger *zap.Logger, opts ...FinancialOption) (*FinancialCalculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold, err := loadThreshold(ctx, provider, models.ConstantCategoryCosts, models.ConstantHighCostThreshold)
	if err != nil {
		return nil, err
	}
	c := &FinancialCalculator{
		settings:          settings,
		highCostThreshold: threshold,
		now:               time.Now,
		logger:            logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CalculateRevenueProjections compounds the monthly revenue base over
// length periods. Periods other than monthly and quarterly are yearly.
func (c *FinancialCalculator) CalculateRevenueProjections(operational models.OperationalParameters, period models.ProjectionPeriod, length int) models.RevenueResult {
	periods := c.generatePeriods(period, max(length, 0))
	projection := c.growthProjection(operational.AverageDailyRevenue*daysPerMonth, periods)

	growth := mean(projection.GrowthRate)
	peak := 0.0
	if len(projection.Revenue) > 0 {
		peak = floats.Max(projection.Revenue)
	}
	average := mean(projection.Revenue)

	c.logger.Debug("revenue projected",
		zap.String("period", string(period)),
		zap.Int("length", len(periods)),
		zap.Float64("average_revenue", average))

	return models.RevenueResult{
		ProjectedRevenue:          projection,
		GrowthRate:                growth,
		PeakRevenue:               peak,
		AverageRevenue:            average,
		Insights:                  c.revenueInsights(projection, growth),
		OptimizationOpportunities: c.revenueOpportunities(projection, growth),
	}
}

func (c *FinancialCalculator) generatePeriods(period models.ProjectionPeriod, length int) []string {
	start := c.now()
	periods := make([]string, 0, length)
	for i := 0; i < length; i++ {
		switch period {
		case models.ProjectionMonthly:
			periods = append(periods, start.AddDate(0, 0, 30*i).Format("2006-01"))
		case models.ProjectionQuarterly:
			d := start.AddDate(0, 0, 90*i)
			periods = append(periods, fmt.Sprintf("Q%d %d", quarterOf(d), d.Year()))
		default:
			periods = append(periods, fmt.Sprint(start.AddDate(0, 0, 365*i).Year()))
		}
	}
	return periods
}

func quarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// periodQuarter parses the quarter of a "Qn YYYY" label; other labels
// return 0.
func periodQuarter(label string) int {
	var q, year int
	if _, err := fmt.Sscanf(label, "Q%d %d", &q, &year); err != nil {
		return 0
	}
	return q
}

// growthProjection compounds base over the periods. Quarterly labels
// scale the growth rate by the quarter factor and then get the seasonal
// multiplier on top, so seasonality counts twice for quarterly runs.
func (c *FinancialCalculator) growthProjection(base float64, periods []string) models.RevenueProjection {
	fin := c.settings.Financial
	quarterFactors := map[int]float64{1: fin.Q1Factor, 2: fin.Q2Factor, 3: fin.Q3Factor, 4: fin.Q4Factor}

	projection := models.RevenueProjection{
		Periods:          periods,
		Revenue:          make([]float64, 0, len(periods)),
		GrowthRate:       make([]float64, 0, len(periods)),
		SeasonalAdjusted: make([]float64, 0, len(periods)),
	}

	revenue := base
	for _, label := range periods {
		growth := fin.BaseGrowthRate
		quarter := periodQuarter(label)
		if f, ok := quarterFactors[quarter]; ok {
			growth *= f
		}
		revenue *= 1 + growth

		projection.Revenue = append(projection.Revenue, revenue)
		projection.GrowthRate = append(projection.GrowthRate, growth)
		projection.SeasonalAdjusted = append(projection.SeasonalAdjusted, revenue*c.seasonalFactor(quarter))
	}
	return projection
}

func (c *FinancialCalculator) seasonalFactor(quarter int) float64 {
	switch quarter {
	case 3, 4:
		return c.settings.Operational.PeakSeasonFactor
	case 1:
		return c.settings.Operational.OffSeasonFactor
	}
	return 1.0
}

func (c *FinancialCalculator) revenueInsights(projection models.RevenueProjection, growth float64) []string {
	fin := c.settings.Financial
	insights := []string{}

	if growth < fin.MinGrowthRate {
		insights = append(insights, fmt.Sprintf("Revenue growth rate (%s) is below minimum target (%s)",
			percent(growth), percent(fin.MinGrowthRate)))
	} else if growth > fin.TargetGrowthRate {
		insights = append(insights, fmt.Sprintf("Strong revenue growth (%s) exceeds target (%s)",
			percent(growth), percent(fin.TargetGrowthRate)))
	}

	trend := slope(projection.Revenue)
	if trend < 0 {
		insights = append(insights, "Negative revenue trend detected. Consider reviewing pricing and marketing strategy.")
	} else if trend > 0 {
		insights = append(insights, "Positive revenue trend detected. Consider expanding operations.")
	}
	return insights
}

func (c *FinancialCalculator) revenueOpportunities(projection models.RevenueProjection, growth float64) []string {
	fin := c.settings.Financial
	opportunities := []string{}

	if growth < fin.TargetGrowthRate {
		opportunities = append(opportunities, fmt.Sprintf(
			"Implement growth strategies to achieve target growth rate of %s", percent(fin.TargetGrowthRate)))
	}

	if len(projection.SeasonalAdjusted) > 0 {
		m, sd := stat.PopMeanStdDev(projection.SeasonalAdjusted, nil)
		if ratio(sd, m) > 0.2 {
			opportunities = append(opportunities, "Develop strategies to reduce seasonal revenue fluctuations")
		}
	}
	return opportunities
}

// CalculateProfitLoss splits revenue into cost lines. Labor is the
// operational monthly labor cost as given.
func (c *FinancialCalculator) CalculateProfitLoss(revenue float64, operational models.OperationalParameters) models.PLResult {
	fin := c.settings.Financial
	costs := models.CostBreakdown{
		FoodCost:     revenue * fin.FoodCostPercentage,
		BeverageCost: revenue * fin.BeverageCostPercentage,
		LaborCost:    operational.MonthlyLaborCost,
		OverheadCost: revenue * fin.OverheadPercentage,
	}
	costs.TotalCosts = costs.FoodCost + costs.BeverageCost + costs.LaborCost + costs.OverheadCost

	profit := revenue - costs.TotalCosts
	margin := 0.0
	if revenue > 0 {
		margin = profit / revenue
	}

	return models.PLResult{
		Revenue:                   revenue,
		Costs:                     costs,
		Profit:                    profit,
		ProfitMargin:              margin,
		HistoricalComparison:      c.historicalComparison(revenue, costs),
		Insights:                  c.plInsights(costs, margin),
		OptimizationOpportunities: c.plOpportunities(costs, margin),
	}
}

// historicalComparison backs the current figures out by one period of
// historical growth.
func (c *FinancialCalculator) historicalComparison(revenue float64, costs models.CostBreakdown) models.HistoricalComparison {
	divisor := 1 + c.settings.Financial.HistoricalGrowthRate
	current := models.PeriodFinancials{
		Revenue:      revenue,
		FoodCost:     costs.FoodCost,
		BeverageCost: costs.BeverageCost,
		LaborCost:    costs.LaborCost,
		OverheadCost: costs.OverheadCost,
	}
	return models.HistoricalComparison{
		Current: current,
		Previous: models.PeriodFinancials{
			Revenue:      ratio(current.Revenue, divisor),
			FoodCost:     ratio(current.FoodCost, divisor),
			BeverageCost: ratio(current.BeverageCost, divisor),
			LaborCost:    ratio(current.LaborCost, divisor),
			OverheadCost: ratio(current.OverheadCost, divisor),
		},
	}
}

func (c *FinancialCalculator) plInsights(costs models.CostBreakdown, margin float64) []string {
	fin := c.settings.Financial
	insights := []string{}

	if margin < fin.MinProfitMargin {
		insights = append(insights, fmt.Sprintf("Profit margin (%s) is below minimum target (%s)",
			percent(margin), percent(fin.MinProfitMargin)))
	} else if margin > fin.TargetProfitMargin {
		insights = append(insights, fmt.Sprintf("Strong profit margin (%s) exceeds target (%s)",
			percent(margin), percent(fin.TargetProfitMargin)))
	}

	for _, category := range CostCategories {
		share := ratio(category.Amount(costs), costs.TotalCosts)
		if share > c.highCostThreshold {
			insights = append(insights, fmt.Sprintf("High %s (%s of total costs)", category, percent(share)))
		}
	}
	return insights
}

func (c *FinancialCalculator) plOpportunities(costs models.CostBreakdown, margin float64) []string {
	fin := c.settings.Financial
	opportunities := []string{}

	if margin < fin.TargetProfitMargin {
		opportunities = append(opportunities, fmt.Sprintf(
			"Implement cost control measures to achieve target profit margin of %s", percent(fin.TargetProfitMargin)))
	}

	for _, category := range CostCategories {
		target := category.Target(fin)
		if target > 0 && ratio(category.Amount(costs), costs.TotalCosts) > target {
			opportunities = append(opportunities, fmt.Sprintf("Optimize %s to achieve target of %s", category, percent(target)))
		}
	}
	return opportunities
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// slope is the least-squares slope of xs against their index.
func slope(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	index := make([]float64, len(xs))
	floats.Span(index, 0, float64(len(xs)-1))
	_, beta := stat.LinearRegression(index, xs, nil, false)
	if math.IsNaN(beta) {
		return 0
	}
	return beta
}
