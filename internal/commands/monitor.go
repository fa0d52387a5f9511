package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/costview/costview-go/internal/config"
	"github.com/costview/costview-go/internal/monitor"
)

// NewMonitorCommand runs the live terminal view with periodic refresh.
func NewMonitorCommand() *cobra.Command {
	var (
		interval time.Duration
		noColor  bool
		region   string
		window   int
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Live cost monitor with periodic refresh",
		Long:  `Show the cost report in the terminal and refresh it on an interval. Press r to force a refresh, q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if interval == 0 {
				interval = cfg.CacheTTL
			}

			agg, err := newAggregator(cmd.Context(), cfg, region, window)
			if err != nil {
				return err
			}

			m := monitor.New(agg, monitor.Options{
				Interval: interval,
				NoColor:  noColor,
			})
			return m.Start(cmd.Context())
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Refresh interval (defaults to the cache TTL)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for the Cost Explorer endpoint")
	cmd.Flags().IntVarP(&window, "window", "w", 0, "Rolling window length in days")
	return cmd
}
