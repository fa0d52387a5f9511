package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costview/costview-go/internal/config"
	"github.com/costview/costview-go/internal/output"
	"github.com/costview/costview-go/internal/types"
)

// NewMonthlyCommand prints the previous/current month comparison and the
// linear month-end projection.
func NewMonthlyCommand() *cobra.Command {
	var (
		format  string
		noColor bool
		region  string
		window  int
	)

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show the month comparison and projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			agg, err := newAggregator(cmd.Context(), cfg, region, window)
			if err != nil {
				return err
			}

			previous, current, err := agg.MonthComparison(cmd.Context())
			if err != nil {
				return withHint(err)
			}

			projection := agg.Projection(current)
			if previous.Amount > 0 {
				projection.ChangePercent = (projection.Estimated - previous.Amount) / previous.Amount * 100
				projection.HasPrevious = true
			}

			report := &types.CostReport{
				Previous:   previous,
				Current:    current,
				Projection: projection,
			}

			switch format {
			case "json":
				data, err := json.MarshalIndent(struct {
					Previous   types.MonthlyCost `json:"previous_month"`
					Current    types.MonthlyCost `json:"current_month"`
					Projection types.Projection  `json:"projection"`
				}{previous, current, projection}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			default:
				formatter := output.NewTableWriterFormatter(noColor)
				fmt.Print(formatter.FormatMonthComparison(report))
				fmt.Println()
				fmt.Print(formatter.FormatProjection(report))
			}
			return nil
		},
	}

	addReportFlags(cmd, &format, &noColor, &region, &window)
	return cmd
}
