package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/budgetbuddy/internal/amqp"
	"github.com/mmynk/budgetbuddy/internal/cli"
)

func alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Follow budget-breach alerts from the message queue",
		Long: `Consume the budget alerts the server publishes when an expense crosses the
global budget or a category limit, printing one line per alert until interrupted.
Requires amqp.url (BUDGETBUDDY_AMQP_URL).`,
		Args: cobra.NoArgs,
		RunE: runAlerts,
	}
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.AMQPURL == "" {
		return errors.New("amqp.url is not configured")
	}

	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, amqpAttempts)
	if err != nil {
		return fmt.Errorf("failed to connect to AMQP: %w", err)
	}
	defer client.Close()

	out := cmd.OutOrStdout()
	err = client.ConsumeBudgetAlerts(ctx, func(msg *amqp.BudgetAlertMessage) error {
		printAlert(out, cfg.CurrencySymbol, msg)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printAlert(w io.Writer, symbol string, msg *amqp.BudgetAlertMessage) {
	var scopes []string
	if msg.GlobalBudget {
		scopes = append(scopes, "global budget")
	}
	if msg.CategoryBudget {
		scopes = append(scopes, fmt.Sprintf("%s limit", msg.Category))
	}
	line := fmt.Sprintf("%s user %s spent %s%.2f over the %s (transaction %s)",
		msg.Timestamp.Format("2006-01-02 15:04:05"),
		msg.UserID, symbol, msg.Amount,
		strings.Join(scopes, " and "),
		msg.TransactionID)
	fmt.Fprintln(w, cli.FormatWarning(line))
}
