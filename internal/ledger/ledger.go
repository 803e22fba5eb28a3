// Package ledger owns the mutable per-user state: the transaction log, the account
// ledger and the category registry.
//
// Every mutation runs under the ledger's lock, updates the in-memory record and
// immediately writes the affected fields through the storage repository. When the
// write fails the in-memory record is left unchanged.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmynk/budgetbuddy/internal/calculator"
	"github.com/mmynk/budgetbuddy/internal/models"
	"github.com/mmynk/budgetbuddy/internal/storage"
)

// Option configures a Ledger.
type Option func(*Ledger)

// WithNotifier forwards breach alerts to n.
func WithNotifier(n Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

// WithClock overrides the clock used for transaction ids and alert timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.nowFn = now }
}

// Ledger is the in-memory state of one user.
type Ledger struct {
	mu sync.Mutex

	userID   string
	repo     *storage.Repository
	data     models.UserData
	selected string

	notifier Notifier
	nowFn    func() time.Time
}

// Open loads the record of userID (or the default template) into a new Ledger.
func Open(ctx context.Context, repo *storage.Repository, userID string, opts ...Option) (*Ledger, error) {
	data, err := repo.UserData(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger for %s: %w", userID, err)
	}

	l := &Ledger{
		userID: userID,
		repo:   repo,
		data:   data,
		nowFn:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if len(data.Categories) > 0 {
		l.selected = data.Categories[0]
	}
	return l, nil
}

// UserID returns the owner of the ledger.
func (l *Ledger) UserID() string {
	return l.userID
}

// Data returns a copy of the current record.
func (l *Ledger) Data() models.UserData {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data.Clone()
}

// Transactions returns a copy of the log, most recent first.
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Transaction(nil), l.data.Transactions...)
}

// View is a consistent copy of a ledger's state at one moment.
type View struct {
	Data     models.UserData
	Selected string
	Snapshot calculator.Snapshot
}

// View returns the record, the selected category and their evaluation taken
// under one lock.
func (l *Ledger) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	return View{
		Data:     l.data.Clone(),
		Selected: l.selected,
		Snapshot: calculator.Evaluate(calculator.FromUserData(l.data)),
	}
}

// Snapshot evaluates the current record.
func (l *Ledger) Snapshot() calculator.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return calculator.Evaluate(calculator.FromUserData(l.data))
}

// commit persists patch and adopts the merged record. Callers hold l.mu.
func (l *Ledger) commit(ctx context.Context, patch storage.UserDataPatch) error {
	updated, err := l.repo.MergeUserData(ctx, l.userID, patch)
	if err != nil {
		return err
	}
	l.data = updated
	return nil
}
