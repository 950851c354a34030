package planning

import (
	"context"
	"fmt"

	"github.com/chrisdamba/outletplanner/internal/models"
	"go.uber.org/zap"
)

// evaluator runs staffing and then a P&L over revenue estimated from the
// resulting labor cost.
type evaluator struct {
	settings  Settings
	staffing  *StaffingCalculator
	financial *FinancialCalculator
}

func newEvaluator(ctx context.Context, provider ConfigurationProvider, logger *zap.Logger) (*evaluator, error) {
	settings, err := LoadSettings(ctx, provider)
	if err != nil {
		return nil, err
	}
	staffing, err := newStaffingCalculator(ctx, provider, settings, logger)
	if err != nil {
		return nil, err
	}
	financial, err := newFinancialCalculator(ctx, provider, settings, logger)
	if err != nil {
		return nil, err
	}
	return &evaluator{settings: settings, staffing: staffing, financial: financial}, nil
}

func (e *evaluator) evaluate(s models.Scenario) models.ScenarioEvaluation {
	staffing := e.staffing.CalculateStaffingRequirements(s.SpaceParameters, s.ServiceParameters, s.OperationalParameters)
	revenue := staffing.LaborCost * e.settings.Financial.RevenueToLaborRatio
	return models.ScenarioEvaluation{
		ID:         s.ID,
		Name:       s.Name,
		Staffing:   staffing,
		Financials: e.financial.CalculateProfitLoss(revenue, s.OperationalParameters),
	}
}

type ScenarioComparator struct {
	evaluator *evaluator
	store     ScenarioStore
	logger    *zap.Logger
}

func NewScenarioComparator(ctx context.Context, provider ConfigurationProvider, store ScenarioStore, logger *zap.Logger) (*ScenarioComparator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e, err := newEvaluator(ctx, provider, logger)
	if err != nil {
		return nil, err
	}
	return &ScenarioComparator{evaluator: e, store: store, logger: logger}, nil
}

// CompareScenarios evaluates every scenario and summarizes the spread of
// labor cost, profit and headcount across them.
func (c *ScenarioComparator) CompareScenarios(ctx context.Context, ids []string) (*models.ComparisonResult, error) {
	if len(ids) == 0 {
		return nil, invalidParameter("no scenario ids provided")
	}
	evaluations := make([]models.ScenarioEvaluation, 0, len(ids))
	for _, id := range ids {
		scenario, err := getScenario(ctx, c.store, id)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, c.evaluator.evaluate(*scenario))
	}
	c.logger.Debug("scenarios compared", zap.Int("count", len(evaluations)))
	return compareEvaluations(evaluations), nil
}

func compareEvaluations(evaluations []models.ScenarioEvaluation) *models.ComparisonResult {
	labor := summarize(evaluations, func(e models.ScenarioEvaluation) float64 { return e.Staffing.LaborCost })
	profit := summarize(evaluations, func(e models.ScenarioEvaluation) float64 { return e.Financials.Profit })
	staffing := summarize(evaluations, func(e models.ScenarioEvaluation) float64 { return float64(e.Staffing.TotalStaff) })

	laborSpread := spread(labor)
	profitSpread := spread(profit)
	staffingSpread := spread(staffing)

	insights := []string{
		fmt.Sprintf("Labor cost varies by %.1f%% across scenarios", laborSpread),
		fmt.Sprintf("Profit varies by %.1f%% across scenarios", profitSpread),
		fmt.Sprintf("Staffing varies by %.1f%% across scenarios", staffingSpread),
	}

	cheapest, richest, leanest := evaluations[0], evaluations[0], evaluations[0]
	for _, e := range evaluations[1:] {
		if e.Staffing.LaborCost < cheapest.Staffing.LaborCost {
			cheapest = e
		}
		if e.Financials.Profit > richest.Financials.Profit {
			richest = e
		}
		if e.Staffing.TotalStaff < leanest.Staffing.TotalStaff {
			leanest = e
		}
	}
	insights = append(insights,
		fmt.Sprintf("Scenario '%s' has the lowest labor cost", cheapest.Name),
		fmt.Sprintf("Scenario '%s' has the highest profit", richest.Name),
		fmt.Sprintf("Scenario '%s' has the most efficient staffing", leanest.Name),
	)

	recommendations := []string{}
	if laborSpread > 20 {
		recommendations = append(recommendations, "Consider standardizing labor cost structure across scenarios")
	}
	if profitSpread > 30 {
		recommendations = append(recommendations, "Investigate factors causing large profit variations")
	}
	if staffingSpread > 25 {
		recommendations = append(recommendations, "Review staffing models for consistency")
	}

	return &models.ComparisonResult{
		Scenarios: evaluations,
		Differences: models.ScenarioDifferences{
			LaborCost: labor,
			Profit:    profit,
			Staffing:  staffing,
		},
		Insights:        insights,
		Recommendations: recommendations,
	}
}

func summarize(evaluations []models.ScenarioEvaluation, value func(models.ScenarioEvaluation) float64) models.RangeSummary {
	summary := models.RangeSummary{}
	if len(evaluations) == 0 {
		return summary
	}
	total := 0.0
	for i, e := range evaluations {
		v := value(e)
		if i == 0 || v < summary.Min {
			summary.Min = v
		}
		if i == 0 || v > summary.Max {
			summary.Max = v
		}
		total += v
	}
	summary.Avg = total / float64(len(evaluations))
	return summary
}

// spread is max-min as a percentage of |min|, 0 when min is 0.
func spread(r models.RangeSummary) float64 {
	return percentChange(r.Min, r.Max)
}
