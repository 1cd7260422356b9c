package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"carrier-contracts/app"
	"carrier-contracts/ratematrix"
	"carrier-contracts/service"
	"carrier-contracts/terminal"
)

func matrixCmd() *cobra.Command {
	var (
		versionID     string
		weeklyCharges string
		serviceName   string
		metricName    string
		listServices  bool
	)

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the rate grid of a contract version",
		Long: `Calculate the discount card of a contract version for a weekly spend and print
one service as a weight by zone grid. Floor-bound cells of the final rate grid are highlighted.`,
		Example: `  carrier-contracts matrix --version 3 --weekly 2500
  carrier-contracts matrix --version 3 --weekly 2500 --service "UPS Ground" --metric all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			weekly := strings.TrimSpace(weeklyCharges)
			if _, err := decimal.NewFromString(weekly); err != nil {
				return fmt.Errorf("--weekly must be a number: %w", err)
			}

			repo := app.NewRepository(cfg, logger)
			calculations := service.NewCalculationService(repo, cfg.MatrixOptions(), cfg.FallbackSample, logger)

			view, err := calculations.BuildMatrix(cmd.Context(), versionID, weekly, serviceName)
			if err != nil {
				return fmt.Errorf("failed to calculate rates: %w", err)
			}

			out := cmd.OutOrStdout()
			if view.UsedSample {
				fmt.Fprintln(out, "⚠️  The rate calculation failed, showing sample data instead.")
			}

			if listServices {
				for _, s := range view.Services {
					fmt.Fprintln(out, s)
				}
				return nil
			}

			metrics := []ratematrix.Metric{ratematrix.ParseMetric(metricName)}
			if strings.EqualFold(metricName, "all") {
				metrics = ratematrix.Metrics
			}
			for _, m := range metrics {
				fmt.Fprintln(out, terminal.RenderGrid(view.Projector.Grid(m)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&versionID, "version", "", "contract version id (required)")
	cmd.Flags().StringVar(&weeklyCharges, "weekly", "", "weekly charges in dollars (required)")
	cmd.Flags().StringVar(&serviceName, "service", "", "service to show (default: first service)")
	cmd.Flags().StringVar(&metricName, "metric", string(ratematrix.MetricDiscount), "discount, preMin, postMin, finalRate or all")
	cmd.Flags().BoolVar(&listServices, "list-services", false, "only list the services of the discount card")
	_ = cmd.MarkFlagRequired("version")
	_ = cmd.MarkFlagRequired("weekly")

	return cmd
}
