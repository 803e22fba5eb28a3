package ledger

import (
	"context"

	"github.com/mmynk/budgetbuddy/internal/models"
	"github.com/mmynk/budgetbuddy/internal/storage"
)

// SetBudgetMode switches between the smart and custom ceilings.
func (l *Ledger) SetBudgetMode(ctx context.Context, mode models.BudgetMode) error {
	if !mode.Valid() {
		return ErrInvalidBudgetMode
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commit(ctx, storage.UserDataPatch{BudgetMode: &mode})
}

// SetCustomLimit stores the raw custom limit. It is kept verbatim and parsed
// leniently whenever the budget is evaluated.
func (l *Ledger) SetCustomLimit(ctx context.Context, raw string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commit(ctx, storage.UserDataPatch{CustomLimit: &raw})
}
