package cmd

import (
	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/planning"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <scenario-id>",
	Short: "Trim a stored scenario's staffing to its buffer and constraints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var constraints *planning.Constraints
		f := cmd.Flags()
		if f.Changed("max-foh-staff") || f.Changed("max-boh-staff") {
			constraints = &planning.Constraints{}
			if f.Changed("max-foh-staff") {
				v, _ := f.GetInt("max-foh-staff")
				constraints.MaxFOHStaff = &v
			}
			if f.Changed("max-boh-staff") {
				v, _ := f.GetInt("max-boh-staff")
				constraints.MaxBOHStaff = &v
			}
		}

		result, err := app.service.OptimizeStaffing(cmd.Context(), args[0], constraints)
		if err != nil {
			return err
		}
		if err := app.publish(planning.CalculationOptimization, args[0], result); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), app.config.Format, result, optimizationTable(result))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <scenario-id>...",
	Short: "Compare staffing and financials across stored scenarios",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := app.service.CompareScenarios(cmd.Context(), args)
		if err != nil {
			return err
		}
		if err := app.publish(planning.CalculationComparison, "", result); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), app.config.Format, result, comparisonTable(result))
	},
}

var whatIfCmd = &cobra.Command{
	Use:   "what-if <scenario-id>",
	Short: "Evaluate a stored scenario against a modified copy",
	Long: `what-if evaluates a stored scenario and a copy with the given parameter flags applied.
Flags that are not set keep the stored scenario's values. The stored scenario is not changed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := app.scenarios.GetByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if base == nil {
			return &planning.ScenarioNotFoundError{ID: args[0]}
		}

		modified := *base
		if err := applyParameterFlags(cmd.Flags(), &modified); err != nil {
			return err
		}
		if err := models.ValidateParameters(modified.SpaceParameters, modified.ServiceParameters, modified.OperationalParameters); err != nil {
			return err
		}

		changes := models.ScenarioChanges{
			SpaceParameters:       &modified.SpaceParameters,
			ServiceParameters:     &modified.ServiceParameters,
			OperationalParameters: &modified.OperationalParameters,
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			changes.Name = &name
		}

		result, err := app.service.WhatIf(cmd.Context(), args[0], changes)
		if err != nil {
			return err
		}
		if err := app.publish(planning.CalculationWhatIf, args[0], result); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), app.config.Format, result, whatIfTable(result))
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List stored scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, err := app.scenarios.GetAll(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), app.config.Format, scenarios, scenarioListTable(scenarios))
	},
}

func init() {
	optimizeCmd.Flags().Int("max-foh-staff", 0, "Upper bound for each front of house position")
	optimizeCmd.Flags().Int("max-boh-staff", 0, "Upper bound for each back of house position")

	addScenarioFlags(whatIfCmd)
	// the base scenario always comes from the argument
	_ = whatIfCmd.Flags().MarkHidden("scenario")
	_ = whatIfCmd.Flags().MarkHidden("scenario-file")
	whatIfCmd.Flags().String("name", "", "Name of the modified scenario")

	rootCmd.AddCommand(optimizeCmd, compareCmd, whatIfCmd, scenariosCmd)
}
