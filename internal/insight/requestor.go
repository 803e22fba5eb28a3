package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/budgetbuddy/internal/metrics"
	"github.com/mmynk/budgetbuddy/internal/models"
)

const (
	// NoInsightsMessage is returned when the collaborator answers with nothing.
	NoInsightsMessage = "I couldn't generate insights at this moment."
	// ErrorMessage replaces any collaborator failure.
	ErrorMessage = "Sorry, I encountered an error analyzing your data."

	DefaultCode    = "INR"
	DefaultSymbol  = "₹"
	DefaultTimeout = 30 * time.Second
)

// Currency is the unit transaction amounts are expressed in.
type Currency struct {
	// Code is the ISO 4217 code, e.g. "INR".
	Code   string
	Symbol string
}

// Requestor asks for three short insights about a transaction log.
// It never fails: collaborator errors become ErrorMessage.
type Requestor struct {
	gen     Generator
	cur     Currency
	timeout time.Duration
}

// NewRequestor creates a requestor. Empty currency fields and a non-positive
// timeout fall back to the defaults.
func NewRequestor(gen Generator, cur Currency, timeout time.Duration) *Requestor {
	if cur.Code == "" {
		cur.Code = DefaultCode
	}
	if cur.Symbol == "" {
		cur.Symbol = DefaultSymbol
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Requestor{gen: gen, cur: cur, timeout: timeout}
}

// Analyze returns the insights text for txs.
func (r *Requestor) Analyze(ctx context.Context, txs []models.Transaction) string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.gen.Generate(ctx, r.Prompt(txs))
	if err != nil {
		slog.Warn("Insight generation failed", "transactions", len(txs), "error", err)
		metrics.InsightRequests.WithLabelValues("error").Inc()
		return ErrorMessage
	}
	if strings.TrimSpace(text) == "" {
		metrics.InsightRequests.WithLabelValues("empty").Inc()
		return NoInsightsMessage
	}
	metrics.InsightRequests.WithLabelValues("ok").Inc()
	return text
}

// Prompt builds the generation prompt for txs.
func (r *Requestor) Prompt(txs []models.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following financial transactions (Currency: %s %s) and provide 3 brief, actionable insights to help the user save money or manage their budget better.\n", r.cur.Code, r.cur.Symbol)
	b.WriteString("Format the output as a simple list.\n\n")
	b.WriteString("Transactions:\n")
	b.WriteString(r.FormatTransactions(txs))
	return b.String()
}

// FormatTransactions renders one line per transaction.
func (r *Requestor) FormatTransactions(txs []models.Transaction) string {
	lines := make([]string, len(txs))
	for i, tx := range txs {
		lines[i] = fmt.Sprintf("%s: %s (%s) - %s%s [%s]",
			tx.Date, tx.Description, tx.Category, r.cur.Symbol,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64), tx.Type)
	}
	return strings.Join(lines, "\n")
}
