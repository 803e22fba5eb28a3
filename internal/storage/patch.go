package storage

import "github.com/mmynk/budgetbuddy/internal/models"

// UserDataPatch enumerates the UserData fields a merge may replace.
// A nil field keeps the stored value. Fields are replaced wholesale, never merged
// element by element.
type UserDataPatch struct {
	Transactions   []models.Transaction
	Accounts       []models.Account
	Categories     []string
	CategoryLimits map[string]float64
	BudgetMode     *models.BudgetMode
	CustomLimit    *string
}

// Apply returns current with the non-nil fields of p applied.
func (p UserDataPatch) Apply(current models.UserData) models.UserData {
	if p.Transactions != nil {
		current.Transactions = p.Transactions
	}
	if p.Accounts != nil {
		current.Accounts = p.Accounts
	}
	if p.Categories != nil {
		current.Categories = p.Categories
	}
	if p.CategoryLimits != nil {
		current.CategoryLimits = p.CategoryLimits
	}
	if p.BudgetMode != nil {
		current.BudgetMode = *p.BudgetMode
	}
	if p.CustomLimit != nil {
		current.CustomLimit = *p.CustomLimit
	}
	return current
}
