package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/budgetbuddy/internal/models"
)

// Breach describes which ceilings a prospective transaction would cross.
type Breach struct {
	// Global is set when total spending would exceed the effective limit.
	Global bool `json:"global"`

	// Category names the category whose limit would be exceeded, if any.
	Category string `json:"category,omitempty"`
}

// Any reports whether any ceiling would be crossed.
func (b Breach) Any() bool {
	return b.Global || b.Category != ""
}

// CheckBreach evaluates tx against the state in before it is added.
// Only expenses can breach; income never raises an alert.
func CheckBreach(in Input, tx models.Transaction) Breach {
	var b Breach
	if tx.Type != models.Expense {
		return b
	}

	amount := decimal.NewFromFloat(tx.Amount)
	income := TotalIncome(in.Transactions)
	limit := EffectiveLimit(in.BudgetMode, income, in.CustomLimit)
	if limit.IsPositive() && TotalExpense(in.Transactions).Add(amount).GreaterThan(limit) {
		b.Global = true
	}

	catLimit := decimal.NewFromFloat(in.CategoryLimits[tx.Category])
	if catLimit.IsPositive() && CategorySpent(in.Transactions, tx.Category).Add(amount).GreaterThan(catLimit) {
		b.Category = tx.Category
	}
	return b
}
