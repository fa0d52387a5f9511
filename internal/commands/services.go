package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/costview/costview-go/internal/config"
	"github.com/costview/costview-go/internal/output"
)

// NewServicesCommand prints the per-service breakdown for a month.
func NewServicesCommand() *cobra.Command {
	var (
		month   string
		format  string
		noColor bool
		region  string
		window  int
	)

	cmd := &cobra.Command{
		Use:   "services",
		Short: "Show the per-service cost breakdown for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			var year int
			var monthNum time.Month

			if month == "" {
				now := time.Now()
				year = now.Year()
				monthNum = now.Month()
			} else {
				parts := strings.Split(month, "-")
				if len(parts) != 2 {
					return fmt.Errorf("invalid month format, use YYYY-MM")
				}
				y, err := strconv.Atoi(parts[0])
				if err != nil {
					return fmt.Errorf("invalid year: %w", err)
				}
				m, err := strconv.Atoi(parts[1])
				if err != nil {
					return fmt.Errorf("invalid month: %w", err)
				}
				if m < 1 || m > 12 {
					return fmt.Errorf("month must be between 1 and 12")
				}
				year, monthNum = y, time.Month(m)
			}

			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			agg, err := newAggregator(cmd.Context(), cfg, region, window)
			if err != nil {
				return err
			}

			services, err := agg.ServiceBreakdown(cmd.Context(), year, monthNum)
			if err != nil {
				return withHint(err)
			}

			switch format {
			case "json":
				data, err := json.MarshalIndent(services, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			case "csv":
				out, err := output.ServicesCSV(services)
				if err != nil {
					return err
				}
				fmt.Print(out)
			default:
				fmt.Print(output.NewTableWriterFormatter(noColor).FormatServices(services))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to report on (YYYY-MM, defaults to current month)")
	addReportFlags(cmd, &format, &noColor, &region, &window)
	return cmd
}
