// Package storage provides the persistence gateway and the typed records stored in it.
package storage

import (
	"context"
	"errors"
)

// ErrCorruptRecord is returned when a stored value cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt stored record")

// Gateway is a string-keyed store. Values are opaque strings (JSON in practice).
// This abstraction allows swapping backends (in-memory, SQLite, ...) without
// changing the ledger or auth layers.
type Gateway interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases any resources held by the gateway.
	Close() error
}

const (
	// UsersKey holds the JSON array of all user profiles.
	UsersKey = "users"

	dataPrefix       = "data:"
	credentialPrefix = "credential:"
)

// DataKey returns the key of a user's UserData record.
func DataKey(userID string) string {
	return dataPrefix + userID
}

// CredentialKey returns the key of a user's password hash.
func CredentialKey(userID string) string {
	return credentialPrefix + userID
}
