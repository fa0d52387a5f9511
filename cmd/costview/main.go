package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/costview/costview-go/internal/commands"
)

func main() {
	ctx := context.Background()

	reportCmd := commands.NewReportCommand()

	rootCmd := &cobra.Command{
		Use:   "costview",
		Short: "AWS cost reporting tool",
		Long:  `A CLI and web dashboard for AWS Cost Explorer data: daily costs, month comparison, linear projection, and per-service breakdown.`,
		// Running the bare entry point prints the full report.
		RunE: reportCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(reportCmd.Flags())

	rootCmd.AddCommand(
		reportCmd,
		commands.NewDailyCommand(),
		commands.NewMonthlyCommand(),
		commands.NewServicesCommand(),
		commands.NewMonitorCommand(),
		commands.NewServeCommand(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
