package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/costview/costview-go/internal/cache"
	"github.com/costview/costview-go/internal/config"
	"github.com/costview/costview-go/internal/dashboard"
)

// NewServeCommand runs the web dashboard.
func NewServeCommand() *cobra.Command {
	var (
		addr   string
		region string
		window int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Long:  `Serve the cost dashboard with charts, tables, and CSV downloads. Reports are cached in memory and refreshed when older than the TTL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ListenAddr
			}

			var logger *zap.Logger
			var err error
			if cfg.Debug {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			agg, err := newAggregator(cmd.Context(), cfg, region, window)
			if err != nil {
				return err
			}

			snapshot := cache.New(cfg.CacheTTL, agg.FetchReport)
			server, err := dashboard.New(addr, logger, snapshot)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("starting dashboard",
				zap.String("addr", addr),
				zap.Duration("cache_ttl", cfg.CacheTTL),
			)
			return server.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (defaults to COSTVIEW_LISTEN_ADDR or :8080)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for the Cost Explorer endpoint")
	cmd.Flags().IntVarP(&window, "window", "w", 0, "Rolling window length in days")
	return cmd
}
