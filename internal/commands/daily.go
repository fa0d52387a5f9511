package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costview/costview-go/internal/config"
	"github.com/costview/costview-go/internal/output"
)

// NewDailyCommand prints the rolling-window daily cost table on its own.
func NewDailyCommand() *cobra.Command {
	var (
		format  string
		noColor bool
		region  string
		window  int
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show daily costs for the rolling window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			agg, err := newAggregator(cmd.Context(), cfg, region, window)
			if err != nil {
				return err
			}

			daily, err := agg.DailyCosts(cmd.Context())
			if err != nil {
				return withHint(err)
			}

			switch format {
			case "json":
				data, err := json.MarshalIndent(daily, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			case "csv":
				out, err := output.DailyCSV(daily)
				if err != nil {
					return err
				}
				fmt.Print(out)
			default:
				fmt.Print(output.NewTableWriterFormatter(noColor).FormatDaily(daily))
			}
			return nil
		},
	}

	addReportFlags(cmd, &format, &noColor, &region, &window)
	return cmd
}
