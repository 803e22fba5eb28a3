// Package memory provides an in-process implementation of storage.Gateway.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/budgetbuddy/internal/storage"
)

var _ storage.Gateway = (*Gateway)(nil)

// Gateway keeps every value in a map. Contents are lost on exit.
type Gateway struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty in-memory gateway.
func New() *Gateway {
	return &Gateway{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (g *Gateway) Get(_ context.Context, key string) (string, bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (g *Gateway) Set(_ context.Context, key, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.values[key] = value
	return nil
}

// Len returns the number of stored keys.
func (g *Gateway) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.values)
}

// Close is a no-op.
func (g *Gateway) Close() error {
	return nil
}
