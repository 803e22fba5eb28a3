package ledger

import (
	"context"
	"time"
)

// BreachAlert describes a budget ceiling crossed by a newly added expense.
type BreachAlert struct {
	UserID        string
	TransactionID string
	// Global is set when total spending crossed the effective limit.
	Global bool
	// Category is set when the category limit was crossed.
	Category  string
	Amount    float64
	Timestamp time.Time
}

// Notifier receives breach alerts after the transaction has been persisted.
// Errors are logged by the ledger and never undo the add.
type Notifier interface {
	BudgetBreached(ctx context.Context, alert BreachAlert) error
}
