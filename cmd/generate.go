package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/chrisdamba/outletplanner/internal/factories"
	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/repositories/memory"
	"github.com/chrisdamba/outletplanner/internal/repositories/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate sample outlet scenarios",
	Long: `generate creates plausible scenarios for demos and load runs. They are written to a
scenarios file with --out, saved to the scenario store with --store, or both.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		count, _ := f.GetInt("count")
		seed, _ := f.GetInt64("seed")
		out, _ := f.GetString("out")
		store, _ := f.GetBool("store")
		quiet, _ := f.GetBool("quiet")
		if out == "" && !store {
			return fmt.Errorf("nothing to do: set --out, --store or both")
		}

		factory := factories.NewScenarioFactory(seed)
		bar := newProgressBar(count, "generating scenarios", quiet)
		scenarios := make([]*models.Scenario, 0, count)
		for i := 0; i < count; i++ {
			scenarios = append(scenarios, factory.CreateScenario())
			_ = bar.Add(1)
		}
		_ = bar.Finish()

		if out != "" {
			data, err := yaml.Marshal(map[string]any{"scenarios": scenarios})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write scenarios file: %w", err)
			}
		}
		if store {
			if app.pool != nil {
				if err := postgres.EnsureSchema(cmd.Context(), app.pool); err != nil {
					return err
				}
			}
			if err := app.scenarios.BulkCreate(cmd.Context(), scenarios); err != nil {
				return fmt.Errorf("failed to store scenarios: %w", err)
			}
		}

		app.logger.Info("scenarios generated", zap.Int("count", count), zap.String("file", out), zap.Bool("stored", store))
		return render(cmd.OutOrStdout(), app.config.Format, scenarios, scenarioListTable(scenarios))
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the standard default values and operational constants to the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if app.pool != nil {
			if err := postgres.EnsureSchema(ctx, app.pool); err != nil {
				return err
			}
		}

		written := 0
		for _, group := range []struct {
			values map[string]map[string]any
			set    func(category, name string, value any) error
		}{
			{memory.SeedDefaults(), func(c, n string, v any) error { return app.configuration.SetDefault(ctx, c, n, v) }},
			{memory.SeedConstants(), func(c, n string, v any) error { return app.configuration.SetConstant(ctx, c, n, v) }},
		} {
			for _, category := range sortedKeys(group.values) {
				for _, name := range sortedKeys(group.values[category]) {
					if err := group.set(category, name, group.values[category][name]); err != nil {
						return fmt.Errorf("failed to seed %s.%s: %w", category, name, err)
					}
					written++
				}
			}
		}

		app.logger.Info("configuration seeded", zap.String("provider", app.config.Provider), zap.Int("values", written))
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d values\n", written)
		return nil
	},
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	generateCmd.Flags().IntP("count", "n", 10, "Number of scenarios to generate")
	generateCmd.Flags().Int64("seed", 42, "Random seed (0 for a random run)")
	generateCmd.Flags().StringP("out", "o", "", "Write the scenarios to this YAML file")
	generateCmd.Flags().Bool("store", false, "Save the scenarios to the scenario store")
	generateCmd.Flags().BoolP("quiet", "q", false, "Hide the progress bar")

	rootCmd.AddCommand(generateCmd, seedCmd)
}
