package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/planning"
	"github.com/chrisdamba/outletplanner/internal/repositories/memory"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addScenarioFlags registers the inputs that describe one outlet. A
// scenario can come from the store (--scenario), from a file
// (--scenario-file) or from individual flags, which override either.
func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("scenario", "", "ID of a stored scenario to start from")
	f.String("scenario-file", "", "YAML or JSON file holding one scenario")

	f.Float64("total-area", 0, "Total floor area in square metres")
	f.Float64("foh-percentage", 0, "Front of house share of the area (0-100)")
	f.Int("external-seating", 0, "Number of external seats")
	f.String("service-style", string(models.ServiceStyleCasualDining), "quick-service, casual-dining or fine-dining")
	f.String("kitchen-complexity", string(models.KitchenComplexityModerate), "simple, moderate or complex")

	f.Float64("average-daily-revenue", 0, "Average daily revenue")
	f.Float64("monthly-labor-cost", 0, "Monthly labor cost")
	f.Float64("base-traffic", 0, "Base hourly customer traffic")
	f.IntSlice("peak-hours", nil, "Peak hours of the day (0-23)")
	f.StringToString("day-factors", nil, "Traffic multipliers per weekday, e.g. Friday=1.3")
	f.StringToString("hour-factors", nil, "Traffic multipliers per hour, e.g. 12=1.5")
	f.Int("base-foh-staff", 0, "Current front of house headcount")
	f.Int("base-boh-staff", 0, "Current back of house headcount")
}

func scenarioFromFlags(ctx context.Context, cmd *cobra.Command) (*models.Scenario, error) {
	f := cmd.Flags()
	scenario := &models.Scenario{Name: "ad hoc"}

	if id, _ := f.GetString("scenario"); id != "" {
		stored, err := app.scenarios.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			return nil, &planning.ScenarioNotFoundError{ID: id}
		}
		scenario = stored
	} else if path, _ := f.GetString("scenario-file"); path != "" {
		scenarios, err := memory.ReadScenariosFile(path)
		if err != nil {
			return nil, err
		}
		scenario = scenarios[0]
	} else {
		scenario.ServiceParameters = models.ServiceParameters{
			ServiceStyle:      models.ServiceStyleCasualDining,
			KitchenComplexity: models.KitchenComplexityModerate,
		}
	}

	if err := applyParameterFlags(f, scenario); err != nil {
		return nil, err
	}
	if err := models.ValidateParameters(scenario.SpaceParameters, scenario.ServiceParameters, scenario.OperationalParameters); err != nil {
		return nil, err
	}
	return scenario, nil
}

// applyParameterFlags copies every flag the user set onto s.
func applyParameterFlags(f *pflag.FlagSet, s *models.Scenario) error {
	var err error
	f.Visit(func(flag *pflag.Flag) {
		if err != nil {
			return
		}
		space, service, op := &s.SpaceParameters, &s.ServiceParameters, &s.OperationalParameters
		switch flag.Name {
		case "total-area":
			space.TotalArea, err = f.GetFloat64(flag.Name)
		case "foh-percentage":
			space.FOHPercentage, err = f.GetFloat64(flag.Name)
		case "external-seating":
			space.ExternalSeating, err = f.GetInt(flag.Name)
		case "service-style":
			service.ServiceStyle, err = models.ParseServiceStyle(flag.Value.String())
		case "kitchen-complexity":
			service.KitchenComplexity, err = models.ParseKitchenComplexity(flag.Value.String())
		case "average-daily-revenue":
			op.AverageDailyRevenue, err = f.GetFloat64(flag.Name)
		case "monthly-labor-cost":
			op.MonthlyLaborCost, err = f.GetFloat64(flag.Name)
		case "base-traffic":
			op.BaseTraffic, err = f.GetFloat64(flag.Name)
		case "peak-hours":
			op.PeakHours, err = f.GetIntSlice(flag.Name)
		case "day-factors":
			op.DayFactors, err = parseDayFactors(f, flag.Name)
		case "hour-factors":
			op.HourFactors, err = parseHourFactors(f, flag.Name)
		case "base-foh-staff":
			op.BaseFOHStaff, err = f.GetInt(flag.Name)
		case "base-boh-staff":
			op.BaseBOHStaff, err = f.GetInt(flag.Name)
		}
	})
	return err
}

func parseDayFactors(f *pflag.FlagSet, name string) (map[string]float64, error) {
	raw, err := f.GetStringToString(name)
	if err != nil {
		return nil, err
	}
	factors := make(map[string]float64, len(raw))
	for day, value := range raw {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid factor for %s: %w", day, err)
		}
		factors[normalizeWeekday(day)] = v
	}
	return factors, nil
}

func normalizeWeekday(day string) string {
	for _, d := range models.Weekdays {
		if strings.EqualFold(d, strings.TrimSpace(day)) {
			return d
		}
	}
	return day
}

func parseHourFactors(f *pflag.FlagSet, name string) (map[int]float64, error) {
	raw, err := f.GetStringToString(name)
	if err != nil {
		return nil, err
	}
	factors := make(map[int]float64, len(raw))
	for hour, value := range raw {
		h, err := strconv.Atoi(hour)
		if err != nil {
			return nil, fmt.Errorf("invalid hour %q: %w", hour, err)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid factor for hour %d: %w", h, err)
		}
		factors[h] = v
	}
	return factors, nil
}
