// Package calculator derives every dashboard figure from a user's current data.
//
// All functions are pure: they hold no state and are meant to be re-run on every
// read. Money is summed with decimal arithmetic so repeated additions of values like
// 0.1 do not drift.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/budgetbuddy/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Input is the minimal state the evaluator needs.
type Input struct {
	Transactions   []models.Transaction
	Accounts       []models.Account
	Categories     []string
	CategoryLimits map[string]float64
	BudgetMode     models.BudgetMode
	CustomLimit    string
}

// FromUserData builds an Input from a stored record.
func FromUserData(d models.UserData) Input {
	return Input{
		Transactions:   d.Transactions,
		Accounts:       d.Accounts,
		Categories:     d.Categories,
		CategoryLimits: d.CategoryLimits,
		BudgetMode:     d.BudgetMode,
		CustomLimit:    d.CustomLimit,
	}
}

// Snapshot holds every derived figure for one moment of a user's data.
type Snapshot struct {
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`

	// EffectiveLimit is the ceiling selected by the budget mode.
	EffectiveLimit     decimal.Decimal `json:"effectiveLimit"`
	IsOverBudget       bool            `json:"isOverBudget"`
	BudgetUsagePercent float64         `json:"budgetUsagePercent"`

	ExpensesByCategory []CategoryAmount `json:"expensesByCategory"`
	DailyStats         []DailyStat      `json:"dailyStats"`
	CategoryStats      []CategoryStat   `json:"categoryStats"`

	// CategoryStatus maps a registry category to its over-limit flag.
	// Use IsCategoryOver for lookups so unknown categories read as not over.
	CategoryStatus map[string]bool `json:"categoryStatus"`
}

// IsCategoryOver reports whether category has exceeded its limit. Categories that
// are not in the registry (dangling references) are never over.
func (s Snapshot) IsCategoryOver(category string) bool {
	return s.CategoryStatus[category]
}

// Evaluate computes the full snapshot for in.
func Evaluate(in Input) Snapshot {
	income := TotalIncome(in.Transactions)
	expense := TotalExpense(in.Transactions)
	limit := EffectiveLimit(in.BudgetMode, income, in.CustomLimit)
	stats := CategoryStats(in.Transactions, in.Categories, in.CategoryLimits)

	return Snapshot{
		TotalIncome:        income,
		TotalExpense:       expense,
		CurrentBalance:     CurrentBalance(in.Accounts, income, expense),
		EffectiveLimit:     limit,
		IsOverBudget:       IsOverBudget(expense, limit),
		BudgetUsagePercent: UsagePercent(expense, limit),
		ExpensesByCategory: ExpensesByCategory(in.Transactions),
		DailyStats:         DailyStats(in.Transactions),
		CategoryStats:      stats,
		CategoryStatus:     CategoryStatus(stats),
	}
}

// TotalIncome sums the amounts of income transactions.
func TotalIncome(txs []models.Transaction) decimal.Decimal {
	return sumByType(txs, models.Income)
}

// TotalExpense sums the amounts of expense transactions.
func TotalExpense(txs []models.Transaction) decimal.Decimal {
	return sumByType(txs, models.Expense)
}

func sumByType(txs []models.Transaction, typ models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type == typ {
			total = total.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return total
}

// CurrentBalance is the sum of opening balances plus income minus expense.
func CurrentBalance(accounts []models.Account, income, expense decimal.Decimal) decimal.Decimal {
	opening := decimal.Zero
	for _, acc := range accounts {
		opening = opening.Add(decimal.NewFromFloat(acc.Balance))
	}
	return opening.Add(income).Sub(expense)
}

// EffectiveLimit returns total income in smart mode and the leniently parsed custom
// limit otherwise.
func EffectiveLimit(mode models.BudgetMode, income decimal.Decimal, customLimit string) decimal.Decimal {
	if mode == models.BudgetSmart {
		return income
	}
	return decimal.NewFromFloat(ParseLenient(customLimit))
}

// IsOverBudget is true only when a positive limit is exceeded.
func IsOverBudget(expense, limit decimal.Decimal) bool {
	return limit.IsPositive() && expense.GreaterThan(limit)
}

// UsagePercent returns expense as a percentage of limit, capped at 100.
// A non-positive limit yields 0.
func UsagePercent(expense, limit decimal.Decimal) float64 {
	return cappedPercent(expense, limit)
}

func cappedPercent(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	pct := part.Div(whole).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return 100
	}
	return pct.InexactFloat64()
}
