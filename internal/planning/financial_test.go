package planning

import (
	"context"
	"testing"
	"time"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func newTestFinancialCalculator(t *testing.T, provider *fakeProvider) *FinancialCalculator {
	t.Helper()
	calc, err := NewFinancialCalculator(context.Background(), provider, nil, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return calc
}

func TestCalculateRevenueProjections_Monthly(t *testing.T) {
	calc := newTestFinancialCalculator(t, newFakeProvider())

	result := calc.CalculateRevenueProjections(models.OperationalParameters{AverageDailyRevenue: 1000}, models.ProjectionMonthly, 3)

	projection := result.ProjectedRevenue
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, projection.Periods)
	assert.InDeltaSlice(t, []float64{31500, 33075, 34728.75}, projection.Revenue, 1e-6)
	assert.InDeltaSlice(t, projection.Revenue, projection.SeasonalAdjusted, 1e-9)
	assert.InDeltaSlice(t, []float64{0.05, 0.05, 0.05}, projection.GrowthRate, 1e-12)

	assert.InDelta(t, 0.05, result.GrowthRate, 1e-12)
	assert.InDelta(t, 34728.75, result.PeakRevenue, 1e-6)
	assert.InDelta(t, (31500+33075+34728.75)/3, result.AverageRevenue, 1e-6)
	assert.Equal(t, []string{"Positive revenue trend detected. Consider expanding operations."}, result.Insights)
	assert.Equal(t, []string{"Implement growth strategies to achieve target growth rate of 10.0%"}, result.OptimizationOpportunities)
}

// Quarterly runs scale growth by the quarter factor and also apply the
// seasonal multiplier, so seasonality is counted twice.
func TestCalculateRevenueProjections_QuarterlyDoubleSeasonality(t *testing.T) {
	calc := newTestFinancialCalculator(t, newFakeProvider())

	result := calc.CalculateRevenueProjections(models.OperationalParameters{AverageDailyRevenue: 1000}, models.ProjectionQuarterly, 4)

	projection := result.ProjectedRevenue
	assert.Equal(t, []string{"Q1 2024", "Q2 2024", "Q3 2024", "Q4 2024"}, projection.Periods)
	assert.InDeltaSlice(t, []float64{0.045, 0.05, 0.055, 0.06}, projection.GrowthRate, 1e-12)
	assert.InDeltaSlice(t, []float64{31350, 32917.5, 34727.9625, 36811.64025}, projection.Revenue, 1e-6)
	assert.InDeltaSlice(t, []float64{25080, 32917.5, 41673.555, 44173.9683}, projection.SeasonalAdjusted, 1e-6)
	assert.InDelta(t, 0.0525, result.GrowthRate, 1e-12)

	assert.Contains(t, result.OptimizationOpportunities, "Develop strategies to reduce seasonal revenue fluctuations")
}

func TestCalculateRevenueProjections_Yearly(t *testing.T) {
	calc := newTestFinancialCalculator(t, newFakeProvider())

	result := calc.CalculateRevenueProjections(models.OperationalParameters{AverageDailyRevenue: 500}, models.ProjectionYearly, 3)

	assert.Equal(t, []string{"2024", "2025", "2026"}, result.ProjectedRevenue.Periods)
}

func TestCalculateRevenueProjections_NonDecreasing(t *testing.T) {
	calc := newTestFinancialCalculator(t, newFakeProvider())

	for _, period := range []models.ProjectionPeriod{models.ProjectionMonthly, models.ProjectionYearly} {
		result := calc.CalculateRevenueProjections(models.OperationalParameters{AverageDailyRevenue: 2750}, period, 24)
		revenue := result.ProjectedRevenue.Revenue
		require.Len(t, revenue, 24)
		for i := 1; i < len(revenue); i++ {
			assert.GreaterOrEqual(t, revenue[i], revenue[i-1], "%s period %d", period, i)
		}
	}
}

func TestCalculateRevenueProjections_Empty(t *testing.T) {
	calc := newTestFinancialCalculator(t, newFakeProvider())

	result := calc.CalculateRevenueProjections(models.OperationalParameters{AverageDailyRevenue: 1000}, models.ProjectionMonthly, 0)

	assert.Empty(t, result.ProjectedRevenue.Revenue)
	assert.Zero(t, result.PeakRevenue)
	assert.Zero(t, result.AverageRevenue)
	assert.Equal(t, []string{"Revenue growth rate (0.0%) is below minimum target (5.0%)"}, result.Insights)
}

func TestCalculateRevenueProjections_Decline(t *testing.T) {
	provider := newFakeProvider().withDefaults(models.CategoryFinancial, map[string]any{"base_growth_rate": -0.02})
	calc := newTestFinancialCalculator(t, provider)

	result := calc.CalculateRevenueProjections(models.OperationalParameters{AverageDailyRevenue: 1000}, models.ProjectionMonthly, 6)

	assert.Equal(t, []string{
		"Revenue growth rate (-2.0%) is below minimum target (5.0%)",
		"Negative revenue trend detected. Consider reviewing pricing and marketing strategy.",
	}, result.Insights)
}

func TestCalculateProfitLoss(t *testing.T) {
	calc := newTestFinancialCalculator(t, newFakeProvider())

	result := calc.CalculateProfitLoss(100000, models.OperationalParameters{MonthlyLaborCost: 20000})

	assert.InDelta(t, 35000, result.Costs.FoodCost, 1e-6)
	assert.InDelta(t, 25000, result.Costs.BeverageCost, 1e-6)
	assert.InDelta(t, 20000, result.Costs.LaborCost, 1e-6)
	assert.InDelta(t, 15000, result.Costs.OverheadCost, 1e-6)
	assert.InDelta(t, 95000, result.Costs.TotalCosts, 1e-6)
	assert.InDelta(t, 5000, result.Profit, 1e-6)
	assert.InDelta(t, 0.05, result.ProfitMargin, 1e-9)

	assert.InDelta(t, 100000/1.03, result.HistoricalComparison.Previous.Revenue, 1e-6)
	assert.InDelta(t, 20000/1.03, result.HistoricalComparison.Previous.LaborCost, 1e-6)
	assert.InDelta(t, 35000, result.HistoricalComparison.Current.FoodCost, 1e-6)

	assert.Equal(t, []string{"Profit margin (5.0%) is below minimum target (10.0%)"}, result.Insights)
	assert.Equal(t, []string{
		"Implement cost control measures to achieve target profit margin of 15.0%",
		"Optimize food cost to achieve target of 35.0%",
		"Optimize beverage cost to achieve target of 25.0%",
		"Optimize overhead cost to achieve target of 15.0%",
	}, result.OptimizationOpportunities)
}

func TestCalculateProfitLoss_Insights(t *testing.T) {
	calc := newTestFinancialCalculator(t, newFakeProvider())

	tests := []struct {
		name              string
		revenue           float64
		labor             float64
		wantInsights      []string
		wantOpportunities []string
	}{
		{
			name:    "strong margin",
			revenue: 100000,
			labor:   5000,
			wantInsights: []string{
				"Strong profit margin (20.0%) exceeds target (15.0%)",
				"High food cost (43.8% of total costs)",
			},
			wantOpportunities: []string{
				"Optimize food cost to achieve target of 35.0%",
				"Optimize beverage cost to achieve target of 25.0%",
				"Optimize overhead cost to achieve target of 15.0%",
			},
		},
		{
			name:    "labor heavy",
			revenue: 10000,
			labor:   6000,
			wantInsights: []string{
				"Profit margin (-35.0%) is below minimum target (10.0%)",
				"High labor cost (44.4% of total costs)",
			},
			wantOpportunities: []string{
				"Implement cost control measures to achieve target profit margin of 15.0%",
				"Optimize labor cost to achieve target of 25.0%",
			},
		},
		{
			name:    "no revenue",
			revenue: 0,
			labor:   3000,
			wantInsights: []string{
				"Profit margin (0.0%) is below minimum target (10.0%)",
				"High labor cost (100.0% of total costs)",
			},
			wantOpportunities: []string{
				"Implement cost control measures to achieve target profit margin of 15.0%",
				"Optimize labor cost to achieve target of 25.0%",
			},
		},
		{
			name:    "nothing at all",
			revenue: 0,
			labor:   0,
			wantInsights: []string{
				"Profit margin (0.0%) is below minimum target (10.0%)",
			},
			wantOpportunities: []string{
				"Implement cost control measures to achieve target profit margin of 15.0%",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.CalculateProfitLoss(tt.revenue, models.OperationalParameters{MonthlyLaborCost: tt.labor})
			assert.Equal(t, tt.wantInsights, result.Insights)
			assert.Equal(t, tt.wantOpportunities, result.OptimizationOpportunities)
		})
	}
}

func TestCalculateProfitLoss_Identity(t *testing.T) {
	calc := newTestFinancialCalculator(t, newFakeProvider())

	for _, revenue := range []float64{0, 1, 1234.5, 88000, 1e7} {
		for _, labor := range []float64{0, 500, 30000} {
			result := calc.CalculateProfitLoss(revenue, models.OperationalParameters{MonthlyLaborCost: labor})
			c := result.Costs
			assert.InDelta(t, revenue-(c.FoodCost+c.BeverageCost+c.LaborCost+c.OverheadCost), result.Profit, 1e-6)
			if revenue == 0 {
				assert.Zero(t, result.ProfitMargin)
			} else {
				assert.InDelta(t, result.Profit/revenue, result.ProfitMargin, 1e-12)
			}
		}
	}
}

func TestNewFinancialCalculator_MissingThreshold(t *testing.T) {
	provider := newFakeProvider().without(models.ConstantCategoryCosts, models.ConstantHighCostThreshold)

	_, err := NewFinancialCalculator(context.Background(), provider, nil)
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestSlope(t *testing.T) {
	assert.Zero(t, slope(nil))
	assert.Zero(t, slope([]float64{42}))
	assert.InDelta(t, 2.0, slope([]float64{1, 3, 5, 7}), 1e-9)
	assert.InDelta(t, -1.5, slope([]float64{10, 8.5, 7}), 1e-9)
}
