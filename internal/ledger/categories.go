package ledger

import (
	"context"
	"slices"
	"strings"

	"github.com/mmynk/budgetbuddy/internal/calculator"
	"github.com/mmynk/budgetbuddy/internal/models"
	"github.com/mmynk/budgetbuddy/internal/storage"
)

// Categories returns a copy of the registry in display order.
func (l *Ledger) Categories() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.data.Categories...)
}

// SelectedCategory returns the category new transactions default to.
func (l *Ledger) SelectedCategory() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected
}

// SelectCategory changes the default category. The selection is session state and
// is not persisted.
func (l *Ledger) SelectCategory(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !slices.Contains(l.data.Categories, name) {
		return ErrCategoryNotFound
	}
	l.selected = name
	return nil
}

// AddCategory appends name to the registry. Blank or existing names are ignored.
func (l *Ledger) AddCategory(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(l.data.Categories, name) {
		return nil
	}
	cats := append(slices.Clone(l.data.Categories), name)
	if err := l.commit(ctx, storage.UserDataPatch{Categories: cats}); err != nil {
		return err
	}
	if l.selected == "" {
		l.selected = name
	}
	return nil
}

// RenameCategory renames the category at index and relabels every transaction
// that used the old name. Registry and log are written together.
// A blank name is ignored; a name already used by another category is rejected.
func (l *Ledger) RenameCategory(ctx context.Context, index int, newName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.data.Categories) {
		return ErrCategoryNotFound
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil
	}
	oldName := l.data.Categories[index]
	if newName == oldName {
		return nil
	}
	if slices.Contains(l.data.Categories, newName) {
		return ErrDuplicateCategory
	}

	cats := slices.Clone(l.data.Categories)
	cats[index] = newName
	txs := slices.Clone(l.data.Transactions)
	for i := range txs {
		if txs[i].Category == oldName {
			txs[i].Category = newName
		}
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	if err := l.commit(ctx, storage.UserDataPatch{Categories: cats, Transactions: txs}); err != nil {
		return err
	}
	if l.selected == oldName {
		l.selected = newName
	}
	return nil
}

// DeleteCategory removes the category at index. Transactions keep their category
// label. When the deleted category was selected the selection moves to the first
// remaining one.
func (l *Ledger) DeleteCategory(ctx context.Context, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.data.Categories) {
		return ErrCategoryNotFound
	}
	removed := l.data.Categories[index]
	cats := slices.Delete(slices.Clone(l.data.Categories), index, index+1)
	if err := l.commit(ctx, storage.UserDataPatch{Categories: cats}); err != nil {
		return err
	}
	if l.selected == removed {
		l.selected = ""
		if len(cats) > 0 {
			l.selected = cats[0]
		}
	}
	return nil
}

// SetCategoryLimit stores the ceiling for category. The raw value is parsed and
// anything that is not a finite non-negative number is stored as 0 (no limit).
// The category does not have to be in the registry.
func (l *Ledger) SetCategoryLimit(ctx context.Context, category, raw string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	limits := make(map[string]float64, len(l.data.CategoryLimits)+1)
	for k, v := range l.data.CategoryLimits {
		limits[k] = v
	}
	limits[category] = calculator.ParseLimit(raw)
	return l.commit(ctx, storage.UserDataPatch{CategoryLimits: limits})
}
