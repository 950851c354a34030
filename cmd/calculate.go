package cmd

import (
	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/planning"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var staffingCmd = &cobra.Command{
	Use:   "staffing",
	Short: "Calculate staffing requirements for an outlet",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := scenarioFromFlags(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		result, err := app.service.CalculateStaffing(cmd.Context(), s.SpaceParameters, s.ServiceParameters, s.OperationalParameters)
		if err != nil {
			return err
		}
		if err := app.publish(planning.CalculationStaffing, s.ID, result); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), app.config.Format, result, staffingTable(result))
	},
}

var revenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Project revenue over monthly, quarterly or yearly periods",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := scenarioFromFlags(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		period, err := models.ParseProjectionPeriod(app.config.ProjectionPeriod)
		if err != nil {
			return err
		}
		result, err := app.service.ProjectRevenue(cmd.Context(), s.OperationalParameters, period, app.config.ProjectionLength)
		if err != nil {
			return err
		}
		if err := app.publish(planning.CalculationRevenue, s.ID, result); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), app.config.Format, result, revenueTable(result))
	},
}

var profitLossCmd = &cobra.Command{
	Use:     "pl",
	Aliases: []string{"profit-loss"},
	Short:   "Build a profit and loss statement for a revenue figure",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := scenarioFromFlags(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		revenue, _ := cmd.Flags().GetFloat64("revenue")
		result, err := app.service.CalculateProfitLoss(cmd.Context(), revenue, s.OperationalParameters)
		if err != nil {
			return err
		}
		if err := app.publish(planning.CalculationProfitLoss, s.ID, result); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), app.config.Format, result, profitLossTable(result))
	},
}

var peakHoursCmd = &cobra.Command{
	Use:   "peak-hours",
	Short: "Build the weekly traffic heatmap and peak staffing levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := scenarioFromFlags(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		result, err := app.service.AnalyzePeakHours(cmd.Context(), s.OperationalParameters, s.ServiceParameters)
		if err != nil {
			return err
		}
		if err := app.publish(planning.CalculationPeakHours, s.ID, result); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), app.config.Format, result, peakHourTable(result))
	},
}

func init() {
	for _, c := range []*cobra.Command{staffingCmd, revenueCmd, profitLossCmd, peakHoursCmd} {
		addScenarioFlags(c)
		rootCmd.AddCommand(c)
	}

	revenueCmd.Flags().String("period", string(models.ProjectionMonthly), "Projection period (monthly, quarterly or yearly)")
	revenueCmd.Flags().Int("length", 12, "Number of periods to project")
	cobra.CheckErr(viper.BindPFlag("projection_period", revenueCmd.Flags().Lookup("period")))
	cobra.CheckErr(viper.BindPFlag("projection_length", revenueCmd.Flags().Lookup("length")))

	profitLossCmd.Flags().Float64("revenue", 0, "Revenue for the period")
	cobra.CheckErr(profitLossCmd.MarkFlagRequired("revenue"))
}
