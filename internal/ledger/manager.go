package ledger

import (
	"context"
	"sync"

	"github.com/mmynk/budgetbuddy/internal/storage"
)

// Manager hands out one Ledger per user and keeps it for later calls, so every
// request for the same user goes through the same lock.
type Manager struct {
	repo *storage.Repository
	opts []Option

	mu      sync.Mutex
	ledgers map[string]*Ledger
}

// NewManager creates a manager whose ledgers are opened with opts.
func NewManager(repo *storage.Repository, opts ...Option) *Manager {
	return &Manager{
		repo:    repo,
		opts:    opts,
		ledgers: make(map[string]*Ledger),
	}
}

// Get returns the ledger of userID, loading it on first use.
func (m *Manager) Get(ctx context.Context, userID string) (*Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.ledgers[userID]; ok {
		return l, nil
	}
	l, err := Open(ctx, m.repo, userID, m.opts...)
	if err != nil {
		return nil, err
	}
	m.ledgers[userID] = l
	return l, nil
}

// Forget drops the cached ledger of userID; the next Get reloads it from storage.
func (m *Manager) Forget(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ledgers, userID)
}
