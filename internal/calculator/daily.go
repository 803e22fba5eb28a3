package calculator

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/budgetbuddy/internal/models"
)

// DateLayouts are the calendar-date formats accepted for transactions.
var DateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseDate parses s with the first matching layout of DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DailyStat is the income and expense total of one date bucket.
type DailyStat struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DailyStats groups transactions by their exact date string and returns the buckets
// in ascending date order.
//
// Grouping is by string equality: "2024-01-05" and "2024/01/05" stay separate
// buckets. Unparseable dates sort after every parseable one, in first-seen order.
func DailyStats(txs []models.Transaction) []DailyStat {
	out := []DailyStat{}
	index := make(map[string]int)
	for _, tx := range txs {
		i, ok := index[tx.Date]
		if !ok {
			i = len(out)
			index[tx.Date] = i
			out = append(out, DailyStat{Date: tx.Date, Income: decimal.Zero, Expense: decimal.Zero})
		}
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.Type == models.Income {
			out[i].Income = out[i].Income.Add(amount)
		} else {
			out[i].Expense = out[i].Expense.Add(amount)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		ta, okA := ParseDate(out[a].Date)
		tb, okB := ParseDate(out[b].Date)
		switch {
		case okA && okB:
			return ta.Before(tb)
		case okA:
			return true
		default:
			return false
		}
	})
	return out
}
