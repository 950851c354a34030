package planning

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/chrisdamba/outletplanner/internal/models"
	"go.uber.org/zap"
)

const hoursPerDay = 24

type PeakHourCalculator struct {
	settings             Settings
	peakTrafficThreshold float64
	logger               *zap.Logger
}

func NewPeakHourCalculator(ctx context.Context, provider ConfigurationProvider, logger *zap.Logger) (*PeakHourCalculator, error) {
	settings, err := LoadSettings(ctx, provider)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold, err := loadThreshold(ctx, provider, models.ConstantCategoryTraffic, models.ConstantPeakTrafficThreshold)
	if err != nil {
		return nil, err
	}
	return &PeakHourCalculator{
		settings:             settings,
		peakTrafficThreshold: threshold,
		logger:               logger,
	}, nil
}

// AnalyzePeakHours builds the weekday by hour traffic heatmap and the peak
// staffing uplift. PeakHours echoes the input as given; insights count
// distinct hours. The service parameters do not change the result.
func (c *PeakHourCalculator) AnalyzePeakHours(operational models.OperationalParameters, _ models.ServiceParameters) models.PeakHourResult {
	heatmap := c.heatmap(operational)
	distinct := operational.DistinctPeakHours()
	staffing := c.peakStaffing(operational)

	c.logger.Debug("peak hours analyzed",
		zap.Int("peak_hours", len(distinct)),
		zap.Int("peak_foh", staffing.Peak.FOH),
		zap.Int("peak_boh", staffing.Peak.BOH))

	return models.PeakHourResult{
		HeatmapData:               heatmap,
		PeakHours:                 append([]int{}, operational.PeakHours...),
		StaffingRequirements:      staffing,
		Insights:                  c.insights(distinct, staffing),
		OptimizationOpportunities: c.opportunities(heatmap, staffing),
	}
}

func (c *PeakHourCalculator) heatmap(operational models.OperationalParameters) models.Heatmap {
	ops := c.settings.Operational
	heatmap := make(models.Heatmap, len(models.Weekdays))
	for _, day := range models.Weekdays {
		dayFactor := operational.DayFactor(day)
		row := make(map[string]models.HeatmapCell, hoursPerDay)
		for hour := 0; hour < hoursPerDay; hour++ {
			factor := dayFactor * operational.HourFactor(hour)
			peak := operational.IsPeakHour(hour)
			multiplier := ops.OffPeakMultiplier
			if peak {
				multiplier = ops.PeakHourMultiplier
			}
			row[strconv.Itoa(hour)] = models.HeatmapCell{
				Traffic: operational.BaseTraffic * factor * multiplier,
				Factor:  factor,
				IsPeak:  peak,
			}
		}
		heatmap[day] = row
	}
	return heatmap
}

func (c *PeakHourCalculator) peakStaffing(operational models.OperationalParameters) models.PeakStaffing {
	buffer := 1 + c.settings.Operational.PeakHourBuffer
	uplift := func(base int) int {
		return c.settings.Staffing.ClampStaff(int(math.Ceil(float64(base) * buffer)))
	}
	return models.PeakStaffing{
		Base: models.StaffLevels{FOH: operational.BaseFOHStaff, BOH: operational.BaseBOHStaff},
		Peak: models.StaffLevels{FOH: uplift(operational.BaseFOHStaff), BOH: uplift(operational.BaseBOHStaff)},
	}
}

func (c *PeakHourCalculator) insights(peakHours []int, staffing models.PeakStaffing) []string {
	insights := []string{}
	if len(peakHours) > 4 {
		insights = append(insights, fmt.Sprintf(
			"Extended peak hours (%d hours). Consider optimizing operational hours.", len(peakHours)))
	}

	fohIncrease := ratio(float64(staffing.Peak.FOH-staffing.Base.FOH), float64(staffing.Base.FOH))
	bohIncrease := ratio(float64(staffing.Peak.BOH-staffing.Base.BOH), float64(staffing.Base.BOH))
	if fohIncrease > 0.5 {
		insights = append(insights, fmt.Sprintf(
			"Significant FOH staff increase during peak hours (%s). Consider cross-training.", percent(fohIncrease)))
	}
	if bohIncrease > 0.5 {
		insights = append(insights, fmt.Sprintf(
			"Significant BOH staff increase during peak hours (%s). Consider prep optimization.", percent(bohIncrease)))
	}
	return insights
}

func (c *PeakHourCalculator) opportunities(heatmap models.Heatmap, staffing models.PeakStaffing) []string {
	opportunities := []string{}

	totalPeak := staffing.Peak.FOH + staffing.Peak.BOH
	if totalPeak >= c.settings.Staffing.MaxStaffPerShift {
		opportunities = append(opportunities, fmt.Sprintf(
			"Peak staffing (%d) at maximum limit. Consider operational optimization.", totalPeak))
	}

	if maxTraffic(heatmap) > c.peakTrafficThreshold {
		opportunities = append(opportunities, "High peak traffic detected. Consider implementing queue management system.")
	}
	return opportunities
}

func maxTraffic(heatmap models.Heatmap) float64 {
	highest := math.Inf(-1)
	for _, row := range heatmap {
		for _, cell := range row {
			highest = math.Max(highest, cell.Traffic)
		}
	}
	if math.IsInf(highest, -1) {
		return 0
	}
	return highest
}
