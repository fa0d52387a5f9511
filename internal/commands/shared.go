package commands

import (
	"context"
	"fmt"

	"github.com/costview/costview-go/internal/aggregator"
	"github.com/costview/costview-go/internal/config"
	"github.com/costview/costview-go/internal/explorer"
	"github.com/costview/costview-go/internal/types"
)

// newAggregator builds the billing client and aggregator from config plus
// flag overrides. The credential probe runs here so bad credentials fail
// before any report query.
func newAggregator(ctx context.Context, cfg *config.Config, region string, window int) (*aggregator.Aggregator, error) {
	if region == "" {
		region = cfg.Region
	}
	if window <= 0 {
		window = cfg.WindowDays
	}

	client, err := explorer.New(ctx, region)
	if err != nil {
		return nil, withHint(err)
	}
	if err := client.Ping(ctx); err != nil {
		return nil, withHint(err)
	}

	agg := aggregator.New(client)
	agg.SetWindow(window)
	return agg, nil
}

// withHint appends the remediation hint for classified errors so the CLI
// error line tells the user what to check.
func withHint(err error) error {
	if err == nil {
		return nil
	}
	if hint := types.Hint(err); hint != "" {
		return fmt.Errorf("%w\nhint: %s", err, hint)
	}
	return err
}
