package ledger

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mmynk/budgetbuddy/internal/calculator"
	"github.com/mmynk/budgetbuddy/internal/metrics"
	"github.com/mmynk/budgetbuddy/internal/models"
	"github.com/mmynk/budgetbuddy/internal/storage"
)

// Draft is an unvalidated transaction as entered by a user.
type Draft struct {
	Description string
	Amount      string
	Date        string
	// Category falls back to the selected category when empty.
	Category string
	Type     string
}

// AddResult reports the outcome of AddTransaction.
type AddResult struct {
	// Added is false when the draft failed validation; nothing was stored.
	Added       bool
	Transaction models.Transaction
	// Breach lists the ceilings the expense crossed. The transaction is added
	// regardless.
	Breach calculator.Breach
}

// AddTransaction validates d, prepends it to the log and persists the log.
// An invalid draft is silently dropped: the result has Added == false and the
// error is nil. The notifier is called after the ledger is unlocked.
func (l *Ledger) AddTransaction(ctx context.Context, d Draft) (AddResult, error) {
	res, alert, err := l.add(ctx, d)
	if err != nil || alert == nil {
		return res, err
	}
	if err := l.notifier.BudgetBreached(ctx, *alert); err != nil {
		slog.Warn("Failed to publish budget alert", "user_id", alert.UserID, "transaction_id", alert.TransactionID, "error", err)
	}
	return res, nil
}

// add does the locked part of AddTransaction. alert is non-nil when a breach
// must be sent to the notifier.
func (l *Ledger) add(ctx context.Context, d Draft) (AddResult, *BreachAlert, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, ok := l.fromDraft(d)
	if !ok {
		metrics.TransactionsRejected.Inc()
		return AddResult{}, nil, nil
	}
	tx.ID = l.nextID()

	breach := calculator.CheckBreach(calculator.FromUserData(l.data), tx)

	txs := make([]models.Transaction, 0, len(l.data.Transactions)+1)
	txs = append(txs, tx)
	txs = append(txs, l.data.Transactions...)
	if err := l.commit(ctx, storage.UserDataPatch{Transactions: txs}); err != nil {
		return AddResult{}, nil, err
	}

	metrics.TransactionsAdded.WithLabelValues(string(tx.Type)).Inc()
	res := AddResult{Added: true, Transaction: tx, Breach: breach}
	if !breach.Any() {
		return res, nil, nil
	}
	return res, l.raise(tx, breach), nil
}

func (l *Ledger) fromDraft(d Draft) (models.Transaction, bool) {
	desc := strings.TrimSpace(d.Description)
	date := strings.TrimSpace(d.Date)
	typ := models.TransactionType(strings.TrimSpace(d.Type))
	if desc == "" || date == "" || !typ.Valid() {
		return models.Transaction{}, false
	}
	if _, ok := calculator.ParseDate(date); !ok {
		return models.Transaction{}, false
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(d.Amount), 64)
	if err != nil || !validAmount(amount) {
		return models.Transaction{}, false
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = l.selected
	}
	return models.Transaction{
		Description: desc,
		Amount:      amount,
		Date:        date,
		Category:    category,
		Type:        typ,
	}, true
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// nextID derives an id from the clock in Unix milliseconds, bumped until it is
// unused in the log.
func (l *Ledger) nextID() string {
	used := make(map[string]bool, len(l.data.Transactions))
	for _, tx := range l.data.Transactions {
		used[tx.ID] = true
	}
	ms := l.nowFn().UnixMilli()
	for used[strconv.FormatInt(ms, 10)] {
		ms++
	}
	return strconv.FormatInt(ms, 10)
}

// raise records a breach and returns the alert to publish, or nil without a notifier.
func (l *Ledger) raise(tx models.Transaction, b calculator.Breach) *BreachAlert {
	if b.Global {
		metrics.BudgetBreaches.WithLabelValues(metrics.ScopeGlobal).Inc()
	}
	if b.Category != "" {
		metrics.BudgetBreaches.WithLabelValues(metrics.ScopeCategory).Inc()
	}
	slog.Info("Budget exceeded", "user_id", l.userID, "transaction_id", tx.ID, "global", b.Global, "category", b.Category)

	if l.notifier == nil {
		return nil
	}
	return &BreachAlert{
		UserID:        l.userID,
		TransactionID: tx.ID,
		Global:        b.Global,
		Category:      b.Category,
		Amount:        tx.Amount,
		Timestamp:     l.nowFn(),
	}
}

// UpdateTransaction replaces the entry with the same id, keeping its position.
// Breaches are not re-evaluated.
func (l *Ledger) UpdateTransaction(ctx context.Context, tx models.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx.Description = strings.TrimSpace(tx.Description)
	tx.Date = strings.TrimSpace(tx.Date)
	tx.Category = strings.TrimSpace(tx.Category)
	if tx.Description == "" || !tx.Type.Valid() || !validAmount(tx.Amount) {
		return ErrInvalidTransaction
	}
	if _, ok := calculator.ParseDate(tx.Date); !ok {
		return ErrInvalidTransaction
	}

	idx := indexOfTransaction(l.data.Transactions, tx.ID)
	if idx < 0 {
		return ErrTransactionNotFound
	}
	txs := append([]models.Transaction(nil), l.data.Transactions...)
	txs[idx] = tx
	return l.commit(ctx, storage.UserDataPatch{Transactions: txs})
}

// DeleteTransaction removes the entry with id. An unknown id is a no-op.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := indexOfTransaction(l.data.Transactions, id)
	if idx < 0 {
		return nil
	}
	txs := make([]models.Transaction, 0, len(l.data.Transactions)-1)
	txs = append(txs, l.data.Transactions[:idx]...)
	txs = append(txs, l.data.Transactions[idx+1:]...)
	return l.commit(ctx, storage.UserDataPatch{Transactions: txs})
}

func indexOfTransaction(txs []models.Transaction, id string) int {
	for i, tx := range txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}
