package planning

import (
	"context"
	"fmt"
	"math"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
)

type WhatIfAnalyzer struct {
	evaluator *evaluator
	store     ScenarioStore
	logger    *zap.Logger
}

func NewWhatIfAnalyzer(ctx context.Context, provider ConfigurationProvider, store ScenarioStore, logger *zap.Logger) (*WhatIfAnalyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e, err := newEvaluator(ctx, provider, logger)
	if err != nil {
		return nil, err
	}
	return &WhatIfAnalyzer{evaluator: e, store: store, logger: logger}, nil
}

// Analyze evaluates the stored base scenario and a modified copy of it.
// The base scenario is not changed.
func (a *WhatIfAnalyzer) Analyze(ctx context.Context, baseID string, changes models.ScenarioChanges) (*models.WhatIfResult, error) {
	base, err := getScenario(ctx, a.store, baseID)
	if err != nil {
		return nil, err
	}

	modified := changes.Apply(*base)
	modified.ID = cuid.New()
	if changes.Name == nil {
		modified.Name = base.Name + " (What-if)"
	}

	result := analyzeChange(a.evaluator.evaluate(*base), a.evaluator.evaluate(modified))
	a.logger.Debug("what-if analyzed",
		zap.String("base_id", baseID),
		zap.Float64("labor_cost_change", result.Impact.LaborCostChange))
	return result, nil
}

func analyzeChange(base, modified models.ScenarioEvaluation) *models.WhatIfResult {
	impact := models.WhatIfImpact{
		LaborCostChange: percentChange(base.Staffing.LaborCost, modified.Staffing.LaborCost),
		ProfitChange:    percentChange(base.Financials.Profit, modified.Financials.Profit),
		StaffingChange:  percentChange(float64(base.Staffing.TotalStaff), float64(modified.Staffing.TotalStaff)),
	}

	insights := make([]string, 0, 3)
	if impact.LaborCostChange < 0 {
		insights = append(insights, fmt.Sprintf("Labor cost reduced by %.1f%%", math.Abs(impact.LaborCostChange)))
	} else {
		insights = append(insights, fmt.Sprintf("Labor cost increased by %.1f%%", impact.LaborCostChange))
	}
	if impact.ProfitChange > 0 {
		insights = append(insights, fmt.Sprintf("Profit increased by %.1f%%", impact.ProfitChange))
	} else {
		insights = append(insights, fmt.Sprintf("Profit decreased by %.1f%%", math.Abs(impact.ProfitChange)))
	}
	if impact.StaffingChange < 0 {
		insights = append(insights, fmt.Sprintf("Staffing reduced by %.1f%%", math.Abs(impact.StaffingChange)))
	} else {
		insights = append(insights, fmt.Sprintf("Staffing increased by %.1f%%", impact.StaffingChange))
	}

	return &models.WhatIfResult{
		BaseScenario:     base,
		ModifiedScenario: modified,
		Impact:           impact,
		Insights:         insights,
	}
}
