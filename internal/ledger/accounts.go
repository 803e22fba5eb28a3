package ledger

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mmynk/budgetbuddy/internal/models"
	"github.com/mmynk/budgetbuddy/internal/storage"
)

// accountColors is cycled through as accounts are added.
var accountColors = []string{
	"from-purple-600 to-purple-400",
	"from-pink-600 to-pink-400",
	"from-orange-600 to-orange-400",
	"from-teal-600 to-teal-400",
}

// AccountDraft is an unvalidated account as entered by a user.
type AccountDraft struct {
	Name    string
	Type    string
	Balance string
}

// Accounts returns a copy of the account list.
func (l *Ledger) Accounts() []models.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.data.Accounts)
}

// AddAccount appends a new account. Name and a non-negative opening balance are
// required.
func (l *Ledger) AddAccount(ctx context.Context, d AccountDraft) (models.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := strings.TrimSpace(d.Name)
	balance, err := strconv.ParseFloat(strings.TrimSpace(d.Balance), 64)
	if name == "" || err != nil || !validBalance(balance) {
		return models.Account{}, ErrInvalidAccount
	}

	acc := models.Account{
		ID:      l.nextAccountID(),
		Name:    name,
		Type:    strings.TrimSpace(d.Type),
		Balance: balance,
		Color:   accountColors[len(l.data.Accounts)%len(accountColors)],
	}
	accounts := append(slices.Clone(l.data.Accounts), acc)
	if err := l.commit(ctx, storage.UserDataPatch{Accounts: accounts}); err != nil {
		return models.Account{}, err
	}
	return acc, nil
}

func validBalance(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (l *Ledger) nextAccountID() string {
	used := make(map[string]bool, len(l.data.Accounts))
	for _, acc := range l.data.Accounts {
		used[acc.ID] = true
	}
	ms := l.nowFn().UnixMilli()
	for used[strconv.FormatInt(ms, 10)] {
		ms++
	}
	return strconv.FormatInt(ms, 10)
}

// UpdateAccount replaces the account with the same id. The name is required.
func (l *Ledger) UpdateAccount(ctx context.Context, acc models.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc.Name = strings.TrimSpace(acc.Name)
	if acc.Name == "" || !validBalance(acc.Balance) {
		return ErrInvalidAccount
	}
	idx := slices.IndexFunc(l.data.Accounts, func(a models.Account) bool { return a.ID == acc.ID })
	if idx < 0 {
		return ErrAccountNotFound
	}
	if acc.Color == "" {
		acc.Color = l.data.Accounts[idx].Color
	}
	accounts := slices.Clone(l.data.Accounts)
	accounts[idx] = acc
	return l.commit(ctx, storage.UserDataPatch{Accounts: accounts})
}

// DeleteAccount removes the account with id. An unknown id is a no-op.
func (l *Ledger) DeleteAccount(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := slices.IndexFunc(l.data.Accounts, func(a models.Account) bool { return a.ID == id })
	if idx < 0 {
		return nil
	}
	accounts := slices.Delete(slices.Clone(l.data.Accounts), idx, idx+1)
	return l.commit(ctx, storage.UserDataPatch{Accounts: accounts})
}
