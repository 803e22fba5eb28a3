package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/budgetbuddy/internal/models"
)

// CategoryAmount is the expense total of one category.
type CategoryAmount struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// CategoryStat is the budgeting state of one registry category.
type CategoryStat struct {
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
	Limit    decimal.Decimal `json:"limit"`

	// Progress is Spent as a percentage of Limit, capped at 100; 0 without a limit.
	Progress float64 `json:"progress"`
	IsOver   bool    `json:"isOver"`
}

// ExpensesByCategory groups expense transactions by category. Groups appear in the
// order their category is first seen while scanning txs, not in registry order.
func ExpensesByCategory(txs []models.Transaction) []CategoryAmount {
	out := []CategoryAmount{}
	index := make(map[string]int)
	for _, tx := range txs {
		if tx.Type != models.Expense {
			continue
		}
		amount := decimal.NewFromFloat(tx.Amount)
		if i, ok := index[tx.Category]; ok {
			out[i].Value = out[i].Value.Add(amount)
			continue
		}
		index[tx.Category] = len(out)
		out = append(out, CategoryAmount{Name: tx.Category, Value: amount})
	}
	return out
}

// CategorySpent sums the expenses recorded against category.
func CategorySpent(txs []models.Transaction, category string) decimal.Decimal {
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Type == models.Expense && tx.Category == category {
			spent = spent.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return spent
}

// CategoryStats computes spend against limit for every registry category except
// the Income category, in registry order.
func CategoryStats(txs []models.Transaction, categories []string, limits map[string]float64) []CategoryStat {
	out := make([]CategoryStat, 0, len(categories))
	for _, cat := range categories {
		if cat == models.IncomeCategory {
			continue
		}
		spent := CategorySpent(txs, cat)
		limit := decimal.NewFromFloat(limits[cat])
		out = append(out, CategoryStat{
			Category: cat,
			Spent:    spent,
			Limit:    limit,
			Progress: cappedPercent(spent, limit),
			IsOver:   limit.IsPositive() && spent.GreaterThan(limit),
		})
	}
	return out
}

// CategoryStatus indexes stats by category for per-row lookups.
func CategoryStatus(stats []CategoryStat) map[string]bool {
	status := make(map[string]bool, len(stats))
	for _, s := range stats {
		status[s.Category] = s.IsOver
	}
	return status
}
