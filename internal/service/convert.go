package service

import (
	"github.com/mmynk/budgetbuddy/internal/calculator"
	"github.com/mmynk/budgetbuddy/internal/models"
	api "github.com/mmynk/budgetbuddy/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		Id:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Bio:     u.Bio,
	}
}

func toAPITransaction(tx models.Transaction) api.Transaction {
	return api.Transaction{
		Id:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Date:        tx.Date,
		Category:    tx.Category,
		Type:        string(tx.Type),
	}
}

func fromAPITransaction(tx *api.Transaction) models.Transaction {
	return models.Transaction{
		ID:          tx.Id,
		Description: tx.Description,
		Amount:      tx.Amount,
		Date:        tx.Date,
		Category:    tx.Category,
		Type:        models.TransactionType(tx.Type),
	}
}

func toAPIAccount(a models.Account) api.Account {
	return api.Account{
		Id:      a.ID,
		Name:    a.Name,
		Type:    a.Type,
		Balance: a.Balance,
		Color:   a.Color,
	}
}

func fromAPIAccount(a *api.Account) models.Account {
	return models.Account{
		ID:      a.Id,
		Name:    a.Name,
		Type:    a.Type,
		Balance: a.Balance,
		Color:   a.Color,
	}
}

func toAPISummary(s calculator.Snapshot) *api.Summary {
	out := &api.Summary{
		TotalIncome:        s.TotalIncome.String(),
		TotalExpense:       s.TotalExpense.String(),
		CurrentBalance:     s.CurrentBalance.String(),
		EffectiveLimit:     s.EffectiveLimit.String(),
		IsOverBudget:       s.IsOverBudget,
		BudgetUsagePercent: s.BudgetUsagePercent,
		ExpensesByCategory: make([]api.CategoryAmount, 0, len(s.ExpensesByCategory)),
		DailyStats:         make([]api.DailyStat, 0, len(s.DailyStats)),
		CategoryStats:      make([]api.CategoryStat, 0, len(s.CategoryStats)),
		CategoryStatus:     s.CategoryStatus,
	}
	for _, c := range s.ExpensesByCategory {
		out.ExpensesByCategory = append(out.ExpensesByCategory, api.CategoryAmount{Name: c.Name, Value: c.Value.String()})
	}
	for _, d := range s.DailyStats {
		out.DailyStats = append(out.DailyStats, api.DailyStat{Date: d.Date, Income: d.Income.String(), Expense: d.Expense.String()})
	}
	for _, c := range s.CategoryStats {
		out.CategoryStats = append(out.CategoryStats, api.CategoryStat{
			Category: c.Category,
			Spent:    c.Spent.String(),
			Limit:    c.Limit.String(),
			Progress: c.Progress,
			IsOver:   c.IsOver,
		})
	}
	return out
}
