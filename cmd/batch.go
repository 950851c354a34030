package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/chrisdamba/outletplanner/internal/output"
	"github.com/chrisdamba/outletplanner/internal/planning"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate every stored scenario and publish the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		scenarios, err := app.scenarios.GetAll(ctx)
		if err != nil {
			return err
		}
		if len(scenarios) == 0 {
			return fmt.Errorf("no scenarios stored; load some with --scenarios-file or the generate command")
		}

		workers, _ := cmd.Flags().GetInt("workers")
		quiet, _ := cmd.Flags().GetBool("quiet")
		bar := newProgressBar(len(scenarios), "evaluating scenarios", quiet)

		evaluations := make([]models.ScenarioEvaluation, len(scenarios))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(workers, 1))
		for i, s := range scenarios {
			i, s := i, s
			g.Go(func() error {
				evaluation, err := app.service.EvaluateScenario(gctx, *s)
				if err != nil {
					return fmt.Errorf("scenario %s: %w", s.ID, err)
				}
				evaluations[i] = *evaluation
				return bar.Add(1)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		_ = bar.Finish()

		if app.publisher != nil {
			items := make([]output.Item, len(evaluations))
			for i, e := range evaluations {
				items[i] = output.Item{ScenarioID: e.ID, Result: e}
			}
			if err := app.publisher.PublishBatch(planning.CalculationEvaluation, items); err != nil {
				return err
			}
			app.logger.Info("batch results published",
				zap.String("destination", app.config.OutputDestination),
				zap.Int("count", len(items)),
			)
		}

		return render(cmd.OutOrStdout(), app.config.Format, evaluations, func(tw *tabwriter.Writer) {
			writeEvaluations(tw, evaluations)
		})
	},
}

func newProgressBar(total int, description string, quiet bool) *progressbar.ProgressBar {
	var w io.Writer = os.Stderr
	if quiet {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func init() {
	batchCmd.Flags().Int("workers", 4, "Scenarios evaluated concurrently")
	batchCmd.Flags().BoolP("quiet", "q", false, "Hide the progress bar")
	rootCmd.AddCommand(batchCmd)
}
