package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/budgetbuddy/internal/cli"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a user's budget summary",
		Long: `Print the dashboard of one user: totals, budget usage, per-category
spending against limits and the most recent transactions. The user must
exist in persistent storage (sqlite).

Examples:
  budgetbuddy report --user 3f0c9a3e-0d1b-4c55-9a8e-2a1b7c0d9e11
  budgetbuddy report --user 3f0c9a3e-0d1b-4c55-9a8e-2a1b7c0d9e11 --recent 25 --db ./data/budgetbuddy.db`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	cmd.Flags().StringP("user", "u", "", "user id")
	cmd.Flags().IntP("recent", "n", cli.DefaultRecent, "number of recent transactions to list")
	addDBFlag(cmd)
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user")
	recent, _ := cmd.Flags().GetInt("recent")

	cfg, err := storedConfig(cmd)
	if err != nil {
		return err
	}

	l, closeStore, err := openUserLedger(cmd.Context(), cfg, userID)
	if err != nil {
		return err
	}
	defer closeStore()

	view := l.View()
	report := cli.Report{Symbol: cfg.CurrencySymbol, Recent: recent}
	fmt.Fprint(cmd.OutOrStdout(), report.Render(view.Data, view.Snapshot))
	return nil
}
