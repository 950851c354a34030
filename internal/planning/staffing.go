package planning

import (
	"context"
	"fmt"
	"math"

	"github.com/chrisdamba/outletplanner/internal/models"
	"go.uber.org/zap"
)

type positionRatio struct {
	position string
	ratio    float64
}

// PositionRatios is the fixed breakdown of a headcount into named
// positions. Order is the order positions appear in results.
type PositionRatios []positionRatio

func newPositionRatios(s StaffingDefaults) PositionRatios {
	return PositionRatios{
		{models.PositionManager, s.ManagerRatio},
		{models.PositionSupervisor, s.SupervisorRatio},
		{models.PositionCashier, s.CashierRatio},
		{models.PositionKitchen, s.KitchenRatio},
		{models.PositionService, s.ServiceRatio},
	}
}

// Ratio returns the ratio configured for position, or 0.
func (r PositionRatios) Ratio(position string) float64 {
	for _, p := range r {
		if p.position == position {
			return p.ratio
		}
	}
	return 0
}

// breakdown splits total into positions accepted by include. Zero counts
// are dropped, the rest are clamped to the per-shift limits.
func (r PositionRatios) breakdown(total int, limits StaffingDefaults, include func(string) bool) []models.StaffPosition {
	positions := make([]models.StaffPosition, 0, len(r))
	for _, p := range r {
		if !include(p.position) {
			continue
		}
		count := int(math.Ceil(float64(total) * p.ratio))
		if count <= 0 {
			continue
		}
		positions = append(positions, models.StaffPosition{
			Position: p.position,
			Count:    limits.ClampStaff(count),
			Ratio:    p.ratio,
		})
	}
	return positions
}

func isFOHPosition(position string) bool { return position != models.PositionKitchen }

func isBOHPosition(position string) bool { return position == models.PositionKitchen }

type StaffingCalculator struct {
	settings          Settings
	ratios            PositionRatios
	serviceFactors    FactorTable
	complexityFactors FactorTable
	shifts            map[string]models.Shift
	logger            *zap.Logger
}

// NewStaffingCalculator snapshots the default values and the shift,
// service style and kitchen complexity constants. A missing constant is
// returned as an error.
func NewStaffingCalculator(ctx context.Context, provider ConfigurationProvider, logger *zap.Logger) (*StaffingCalculator, error) {
	settings, err := LoadSettings(ctx, provider)
	if err != nil {
		return nil, err
	}
	return newStaffingCalculator(ctx, provider, settings, logger)
}

func newStaffingCalculator(ctx context.Context, provider ConfigurationProvider, settings Settings, logger *zap.Logger) (*StaffingCalculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	shifts, err := loadShifts(ctx, provider)
	if err != nil {
		return nil, err
	}
	serviceFactors, err := loadFactorTable(ctx, provider, models.ConstantCategoryService, models.ConstantServiceStyleFactors)
	if err != nil {
		return nil, err
	}
	complexityFactors, err := loadFactorTable(ctx, provider, models.ConstantCategoryKitchen, models.ConstantComplexityFactors)
	if err != nil {
		return nil, err
	}
	return &StaffingCalculator{
		settings:          settings,
		ratios:            newPositionRatios(settings.Staffing),
		serviceFactors:    serviceFactors,
		complexityFactors: complexityFactors,
		shifts:            shifts,
		logger:            logger,
	}, nil
}

func (c *StaffingCalculator) Settings() Settings { return c.settings }

func (c *StaffingCalculator) CalculateStaffingRequirements(space models.SpaceParameters, service models.ServiceParameters, operational models.OperationalParameters) models.StaffingResult {
	capacity := CalculateCapacity(space, c.settings.Space.MinAreaPerCover)
	covers := c.estimateDailyCovers(capacity.TotalCapacity)

	fohTotal := c.headcount(covers, c.serviceFactors.Factor(service.ServiceStyle.Key()))
	bohTotal := c.headcount(covers, c.complexityFactors.Factor(service.KitchenComplexity.Key()))

	foh := c.ratios.breakdown(fohTotal, c.settings.Staffing, isFOHPosition)
	boh := c.ratios.breakdown(bohTotal, c.settings.Staffing, isBOHPosition)

	fohCount := models.SumCounts(foh)
	bohCount := models.SumCounts(boh)
	total := fohCount + bohCount

	c.logger.Debug("staffing calculated",
		zap.Int("capacity", capacity.TotalCapacity),
		zap.Int("daily_covers", covers),
		zap.Int("foh", fohCount),
		zap.Int("boh", bohCount))

	return models.StaffingResult{
		TotalStaff: total,
		FOHStaff:   foh,
		BOHStaff:   boh,
		LaborCost:  c.settings.Financial.LaborCost(foh, boh),
		StaffingStructure: models.StaffingStructure{
			FOHRatio:    ratio(float64(len(foh)), float64(total)),
			BOHRatio:    ratio(float64(len(boh)), float64(total)),
			DailyCovers: covers,
			Capacity:    capacity,
			Shifts:      c.shifts,
		},
		Recommendations: c.recommendations(fohCount, bohCount, covers, capacity),
	}
}

func (c *StaffingCalculator) estimateDailyCovers(capacity int) int {
	base := int(math.Floor(float64(capacity) * c.settings.Efficiency.TargetUtilization))
	covers := int(math.Floor(float64(base) * (1 + c.settings.Operational.PeakHourBuffer)))
	return max(covers, 0)
}

// headcount is ceil(covers / min_cover_per_staff) scaled by factor and
// clamped to the per-shift limits.
func (c *StaffingCalculator) headcount(covers int, factor float64) int {
	base := 0
	if c.settings.Efficiency.MinCoverPerStaff > 0 {
		base = int(math.Ceil(float64(covers) / c.settings.Efficiency.MinCoverPerStaff))
	}
	adjusted := int(math.Ceil(float64(base) * factor))
	return c.settings.Staffing.ClampStaff(adjusted)
}

func (c *StaffingCalculator) recommendations(fohCount, bohCount, covers int, capacity models.Capacity) []string {
	recommendations := []string{}
	eff := c.settings.Efficiency
	total := fohCount + bohCount

	coversPerStaff := ratio(float64(covers), float64(total))
	if coversPerStaff < eff.MinCoverPerStaff {
		recommendations = append(recommendations, fmt.Sprintf(
			"Consider reducing staff count. Current ratio: %.1f covers per staff (min: %.1f)",
			coversPerStaff, eff.MinCoverPerStaff))
	} else if coversPerStaff > eff.MaxCoverPerStaff {
		recommendations = append(recommendations, fmt.Sprintf(
			"Consider increasing staff count. Current ratio: %.1f covers per staff (max: %.1f)",
			coversPerStaff, eff.MaxCoverPerStaff))
	}

	if total > 0 {
		fohRatio := float64(fohCount) / float64(total)
		target := c.settings.Staffing.TargetFOHRatio
		if math.Abs(fohRatio-target) > 0.1 {
			recommendations = append(recommendations, fmt.Sprintf(
				"Adjust FOH/BOH balance. Current FOH ratio: %s (target: %s)",
				percent(fohRatio), percent(target)))
		}
	}

	utilization := ratio(float64(covers), float64(capacity.TotalCapacity))
	switch {
	case utilization < eff.TargetUtilization-0.1:
		recommendations = append(recommendations, fmt.Sprintf(
			"Low capacity utilization. Current: %s (target: %s)",
			percent(utilization), percent(eff.TargetUtilization)))
	case utilization > eff.TargetUtilization+0.1:
		recommendations = append(recommendations, fmt.Sprintf(
			"High capacity utilization. Current: %s (target: %s)",
			percent(utilization), percent(eff.TargetUtilization)))
	}

	return recommendations
}
