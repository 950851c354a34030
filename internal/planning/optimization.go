package planning

import (
	"context"
	"fmt"
	"math"

	"github.com/chrisdamba/outletplanner/internal/models"
	"go.uber.org/zap"
)

// Constraints caps the optimized headcount of each position. Nil fields
// are unconstrained.
type Constraints struct {
	MaxFOHStaff *int `json:"max_foh_staff,omitempty" mapstructure:"max_foh_staff"`
	MaxBOHStaff *int `json:"max_boh_staff,omitempty" mapstructure:"max_boh_staff"`
}

func (c *Constraints) maxFOH() *int {
	if c == nil {
		return nil
	}
	return c.MaxFOHStaff
}

func (c *Constraints) maxBOH() *int {
	if c == nil {
		return nil
	}
	return c.MaxBOHStaff
}

type OptimizationCalculator struct {
	settings                      Settings
	staffing                      *StaffingCalculator
	significantReductionThreshold float64
	store                         ScenarioStore
	logger                        *zap.Logger
}

func NewOptimizationCalculator(ctx context.Context, provider ConfigurationProvider, store ScenarioStore, logger *zap.Logger) (*OptimizationCalculator, error) {
	settings, err := LoadSettings(ctx, provider)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	staffing, err := newStaffingCalculator(ctx, provider, settings, logger)
	if err != nil {
		return nil, err
	}
	threshold, err := loadThreshold(ctx, provider, models.ConstantCategoryStaffing, models.ConstantSignificantReductionThreshold)
	if err != nil {
		return nil, err
	}
	return &OptimizationCalculator{
		settings:                      settings,
		staffing:                      staffing,
		significantReductionThreshold: threshold,
		store:                         store,
		logger:                        logger,
	}, nil
}

// OptimizeStaffing trims the stored scenario's staffing by the staff
// buffer percentage. Unknown ids fail with ErrScenarioNotFound.
func (c *OptimizationCalculator) OptimizeStaffing(ctx context.Context, scenarioID string, constraints *Constraints) (*models.OptimizationResult, error) {
	scenario, err := getScenario(ctx, c.store, scenarioID)
	if err != nil {
		return nil, err
	}

	current := c.staffing.CalculateStaffingRequirements(
		scenario.SpaceParameters,
		scenario.ServiceParameters,
		scenario.OperationalParameters,
	)
	optimized := models.OptimizedStaffing{
		FOH: c.reduce(current.FOHStaff, constraints.maxFOH()),
		BOH: c.reduce(current.BOHStaff, constraints.maxBOH()),
	}

	fin := c.settings.Financial
	savings := fin.LaborCost(current.FOHStaff, current.BOHStaff) - fin.LaborCost(optimized.FOH, optimized.BOH)

	c.logger.Info("staffing optimized",
		zap.String("scenario_id", scenarioID),
		zap.Int("current_staff", current.TotalStaff),
		zap.Int("optimized_staff", models.SumCounts(optimized.FOH)+models.SumCounts(optimized.BOH)),
		zap.Float64("cost_savings", savings))

	return &models.OptimizationResult{
		OriginalScenario:          *scenario,
		OptimizedStaffing:         optimized,
		CostSavings:               savings,
		Insights:                  c.insights(current, optimized, savings),
		OptimizationOpportunities: c.opportunities(current, optimized, constraints),
	}, nil
}

// reduce applies the staff buffer to every position, then the caller's
// cap and the per-shift limits. A position never grows.
func (c *OptimizationCalculator) reduce(positions []models.StaffPosition, limit *int) []models.StaffPosition {
	buffer := c.settings.Staffing.StaffBufferPercentage
	reduced := make([]models.StaffPosition, 0, len(positions))
	for _, p := range positions {
		count := int(math.Ceil(float64(p.Count) * (1 - buffer)))
		if limit != nil {
			count = min(count, *limit)
		}
		count = min(c.settings.Staffing.ClampStaff(count), p.Count)
		reduced = append(reduced, models.StaffPosition{
			Position: p.Position,
			Count:    count,
			Ratio:    p.Ratio,
		})
	}
	return reduced
}

func (c *OptimizationCalculator) insights(current models.StaffingResult, optimized models.OptimizedStaffing, savings float64) []string {
	insights := []string{}

	currentFOH, currentBOH := current.FOHCount(), current.BOHCount()
	fohChange := ratio(float64(currentFOH-models.SumCounts(optimized.FOH)), float64(currentFOH))
	bohChange := ratio(float64(currentBOH-models.SumCounts(optimized.BOH)), float64(currentBOH))

	if fohChange > c.significantReductionThreshold {
		insights = append(insights, fmt.Sprintf(
			"Significant FOH staff reduction (%s). Consider cross-training to maintain service quality.", percent(fohChange)))
	}
	if bohChange > c.significantReductionThreshold {
		insights = append(insights, fmt.Sprintf(
			"Significant BOH staff reduction (%s). Consider prep optimization to maintain kitchen efficiency.", percent(bohChange)))
	}

	if savings > 0 {
		insights = append(insights, fmt.Sprintf("Potential labor cost savings of $%.2f per period.", savings))
		target := c.settings.Financial.TargetCostSavings
		if ratio(savings, current.LaborCost) > target {
			insights = append(insights, fmt.Sprintf(
				"Cost savings exceed target of %s. Consider reinvesting in staff training.", percent(target)))
		}
	}
	return insights
}

func (c *OptimizationCalculator) opportunities(current models.StaffingResult, optimized models.OptimizedStaffing, constraints *Constraints) []string {
	opportunities := []string{}

	optimizedFOH, optimizedBOH := models.SumCounts(optimized.FOH), models.SumCounts(optimized.BOH)
	currentTotal := current.FOHCount() + current.BOHCount()
	optimizedTotal := optimizedFOH + optimizedBOH

	if currentTotal > optimizedTotal {
		opportunities = append(opportunities, fmt.Sprintf(
			"Reduce total staff from %d to %d to improve efficiency.", currentTotal, optimizedTotal))
	}

	currentRatio := ratio(float64(current.FOHCount()), float64(currentTotal))
	optimizedRatio := ratio(float64(optimizedFOH), float64(optimizedTotal))
	if math.Abs(currentRatio-optimizedRatio) > 0.1 {
		opportunities = append(opportunities, fmt.Sprintf(
			"Adjust FOH/BOH ratio from %s to %s for better balance.", percent(currentRatio), percent(optimizedRatio)))
	}

	if limit := constraints.maxFOH(); limit != nil && optimizedFOH >= *limit {
		opportunities = append(opportunities, "FOH staffing at maximum limit. Consider cross-training to improve flexibility.")
	}
	if limit := constraints.maxBOH(); limit != nil && optimizedBOH >= *limit {
		opportunities = append(opportunities, "BOH staffing at maximum limit. Consider kitchen redesign for efficiency.")
	}
	return opportunities
}
