package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costview/costview-go/internal/config"
	"github.com/costview/costview-go/internal/output"
)

// NewReportCommand prints all four sections: daily costs, month comparison,
// projection, and the service breakdown.
func NewReportCommand() *cobra.Command {
	var (
		format  string
		noColor bool
		region  string
		window  int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the full cost report",
		Long:  `Fetch AWS Cost Explorer data and print daily costs, month comparison, projection, and the per-service breakdown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			agg, err := newAggregator(cmd.Context(), cfg, region, window)
			if err != nil {
				return err
			}

			report, err := agg.FetchReport(cmd.Context())
			if err != nil {
				return withHint(err)
			}

			formatter := output.NewFormatter(output.FormatterOptions{
				Format:  format,
				NoColor: noColor,
			})
			out, err := formatter.FormatReport(report)
			if err != nil {
				return fmt.Errorf("failed to format report: %w", err)
			}

			fmt.Print(out)
			return nil
		},
	}

	addReportFlags(cmd, &format, &noColor, &region, &window)
	return cmd
}

func addReportFlags(cmd *cobra.Command, format *string, noColor *bool, region *string, window *int) {
	cmd.Flags().StringVarP(format, "format", "f", "table", "Output format (table, json, csv)")
	cmd.Flags().BoolVar(noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(region, "region", "", "AWS region for the Cost Explorer endpoint (defaults to AWS_DEFAULT_REGION)")
	cmd.Flags().IntVarP(window, "window", "w", 0, "Rolling window length in days (defaults to COSTVIEW_WINDOW_DAYS or 30)")
}
