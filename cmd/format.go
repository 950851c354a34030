package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/chrisdamba/outletplanner/internal/models"
	"gopkg.in/yaml.v3"
)

// render writes v in the configured format. table is used for the
// table format only.
func render(w io.Writer, format string, v any, table func(tw *tabwriter.Writer)) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
	return fmt.Errorf("unknown format %q", format)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeList(tw *tabwriter.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(tw, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(tw, "  - %s\n", item)
	}
}

func writePositions(tw *tabwriter.Writer, side string, positions []models.StaffPosition) {
	for _, p := range positions {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n", side, p.Position, p.Count, p.Ratio)
	}
}

func staffingTable(r *models.StaffingResult) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "SIDE\tPOSITION\tCOUNT\tRATIO")
		writePositions(tw, "FOH", r.FOHStaff)
		writePositions(tw, "BOH", r.BOHStaff)
		s := r.StaffingStructure
		fmt.Fprintf(tw, "\nTotal staff\t%d\n", r.TotalStaff)
		fmt.Fprintf(tw, "Labor cost (hourly)\t%s\n", money(r.LaborCost))
		fmt.Fprintf(tw, "FOH / BOH ratio\t%.2f / %.2f\n", s.FOHRatio, s.BOHRatio)
		fmt.Fprintf(tw, "Capacity\t%d (%d internal, %d external)\n", s.Capacity.TotalCapacity, s.Capacity.InternalCapacity, s.Capacity.ExternalCapacity)
		fmt.Fprintf(tw, "Daily covers\t%d\n", s.DailyCovers)
		writeList(tw, "Recommendations", r.Recommendations)
	}
}

func revenueTable(r *models.RevenueResult) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		p := r.ProjectedRevenue
		fmt.Fprintln(tw, "PERIOD\tREVENUE\tGROWTH\tSEASONAL")
		for i := range p.Periods {
			fmt.Fprintf(tw, "%s\t%s\t%.4f\t%s\n", p.Periods[i], money(p.Revenue[i]), p.GrowthRate[i], money(p.SeasonalAdjusted[i]))
		}
		fmt.Fprintf(tw, "\nAverage revenue\t%s\n", money(r.AverageRevenue))
		fmt.Fprintf(tw, "Peak revenue\t%s\n", money(r.PeakRevenue))
		fmt.Fprintf(tw, "Growth rate\t%.4f\n", r.GrowthRate)
		writeList(tw, "Insights", r.Insights)
		writeList(tw, "Opportunities", r.OptimizationOpportunities)
	}
}

func profitLossTable(r *models.PLResult) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		c := r.Costs
		fmt.Fprintln(tw, "LINE\tAMOUNT")
		fmt.Fprintf(tw, "Revenue\t%s\n", money(r.Revenue))
		fmt.Fprintf(tw, "Food cost\t%s\n", money(c.FoodCost))
		fmt.Fprintf(tw, "Beverage cost\t%s\n", money(c.BeverageCost))
		fmt.Fprintf(tw, "Labor cost\t%s\n", money(c.LaborCost))
		fmt.Fprintf(tw, "Overhead\t%s\n", money(c.OverheadCost))
		fmt.Fprintf(tw, "Total costs\t%s\n", money(c.TotalCosts))
		fmt.Fprintf(tw, "Profit\t%s\n", money(r.Profit))
		fmt.Fprintf(tw, "Profit margin\t%.1f%%\n", r.ProfitMargin*100)
		fmt.Fprintf(tw, "Previous revenue\t%s\n", money(r.HistoricalComparison.Previous.Revenue))
		writeList(tw, "Insights", r.Insights)
		writeList(tw, "Opportunities", r.OptimizationOpportunities)
	}
}

func peakHourTable(r *models.PeakHourResult) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprint(tw, "DAY")
		for h := 0; h < 24; h++ {
			fmt.Fprintf(tw, "\t%02d", h)
		}
		fmt.Fprintln(tw)
		for _, day := range models.Weekdays {
			fmt.Fprint(tw, day[:3])
			for h := 0; h < 24; h++ {
				cell := r.HeatmapData[day][strconv.Itoa(h)]
				mark := ""
				if cell.IsPeak {
					mark = "*"
				}
				fmt.Fprintf(tw, "\t%.0f%s", cell.Traffic, mark)
			}
			fmt.Fprintln(tw)
		}
		req := r.StaffingRequirements
		fmt.Fprintf(tw, "\nPeak hours\t%v\n", r.PeakHours)
		fmt.Fprintf(tw, "Base staff (FOH/BOH)\t%d / %d\n", req.Base.FOH, req.Base.BOH)
		fmt.Fprintf(tw, "Peak staff (FOH/BOH)\t%d / %d\n", req.Peak.FOH, req.Peak.BOH)
		writeList(tw, "Insights", r.Insights)
		writeList(tw, "Opportunities", r.OptimizationOpportunities)
	}
}

func optimizationTable(r *models.OptimizationResult) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Scenario\t%s (%s)\n\n", r.OriginalScenario.Name, r.OriginalScenario.ID)
		fmt.Fprintln(tw, "SIDE\tPOSITION\tCOUNT\tRATIO")
		writePositions(tw, "FOH", r.OptimizedStaffing.FOH)
		writePositions(tw, "BOH", r.OptimizedStaffing.BOH)
		fmt.Fprintf(tw, "\nCost savings (hourly)\t%s\n", money(r.CostSavings))
		writeList(tw, "Insights", r.Insights)
		writeList(tw, "Opportunities", r.OptimizationOpportunities)
	}
}

func writeEvaluations(tw *tabwriter.Writer, evaluations []models.ScenarioEvaluation) {
	fmt.Fprintln(tw, "ID\tNAME\tSTAFF\tLABOR COST\tREVENUE\tPROFIT")
	for _, e := range evaluations {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Staffing.TotalStaff, money(e.Staffing.LaborCost), money(e.Financials.Revenue), money(e.Financials.Profit))
	}
}

func comparisonTable(r *models.ComparisonResult) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		writeEvaluations(tw, r.Scenarios)
		d := r.Differences
		fmt.Fprintln(tw, "\nMETRIC\tMIN\tMAX\tAVG")
		fmt.Fprintf(tw, "Labor cost\t%s\t%s\t%s\n", money(d.LaborCost.Min), money(d.LaborCost.Max), money(d.LaborCost.Avg))
		fmt.Fprintf(tw, "Profit\t%s\t%s\t%s\n", money(d.Profit.Min), money(d.Profit.Max), money(d.Profit.Avg))
		fmt.Fprintf(tw, "Staffing\t%.0f\t%.0f\t%.1f\n", d.Staffing.Min, d.Staffing.Max, d.Staffing.Avg)
		writeList(tw, "Insights", r.Insights)
		writeList(tw, "Recommendations", r.Recommendations)
	}
}

func whatIfTable(r *models.WhatIfResult) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		writeEvaluations(tw, []models.ScenarioEvaluation{r.BaseScenario, r.ModifiedScenario})
		fmt.Fprintln(tw, "\nIMPACT\tCHANGE")
		fmt.Fprintf(tw, "Labor cost\t%.1f%%\n", r.Impact.LaborCostChange)
		fmt.Fprintf(tw, "Profit\t%.1f%%\n", r.Impact.ProfitChange)
		fmt.Fprintf(tw, "Staffing\t%.1f%%\n", r.Impact.StaffingChange)
		writeList(tw, "Insights", r.Insights)
	}
}

func scenarioListTable(scenarios []*models.Scenario) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		sorted := append([]*models.Scenario(nil), scenarios...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
		fmt.Fprintln(tw, "ID\tNAME\tSTYLE\tAREA\tFOH %")
		for _, s := range sorted {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f\t%.0f\n", s.ID, s.Name, s.ServiceParameters.ServiceStyle, s.SpaceParameters.TotalArea, s.SpaceParameters.FOHPercentage)
		}
	}
}
