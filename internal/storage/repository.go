package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mmynk/budgetbuddy/internal/models"
)

// Repository reads and writes typed records through a Gateway.
// It holds no state of its own; every call goes to the gateway.
type Repository struct {
	gw Gateway
}

// NewRepository creates a repository on top of gw.
func NewRepository(gw Gateway) *Repository {
	return &Repository{gw: gw}
}

// Users returns every stored user profile. An absent key means no users yet.
func (r *Repository) Users(ctx context.Context) ([]models.User, error) {
	raw, ok, err := r.gw.Get(ctx, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	if !ok {
		return []models.User{}, nil
	}

	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("%w: users: %v", ErrCorruptRecord, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// SaveUsers replaces the stored user list.
func (r *Repository) SaveUsers(ctx context.Context, users []models.User) error {
	return r.put(ctx, UsersKey, users)
}

// UserData returns the record of userID. When nothing is stored a fresh copy of
// the default template is returned; the result is never empty.
func (r *Repository) UserData(ctx context.Context, userID string) (models.UserData, error) {
	raw, ok, err := r.gw.Get(ctx, DataKey(userID))
	if err != nil {
		return models.UserData{}, fmt.Errorf("failed to read user data: %w", err)
	}
	if !ok {
		return models.DefaultUserData(), nil
	}

	var data models.UserData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return models.UserData{}, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, DataKey(userID), err)
	}
	data.Normalize()
	return data, nil
}

// SaveUserData replaces the whole record of userID.
func (r *Repository) SaveUserData(ctx context.Context, userID string, data models.UserData) error {
	data.Normalize()
	return r.put(ctx, DataKey(userID), data)
}

// MergeUserData reads the current record, applies patch and writes the whole record
// back. Two writers merging concurrently can lose updates (last write wins).
func (r *Repository) MergeUserData(ctx context.Context, userID string, patch UserDataPatch) (models.UserData, error) {
	current, err := r.UserData(ctx, userID)
	if err != nil {
		return models.UserData{}, err
	}
	updated := patch.Apply(current)
	if err := r.SaveUserData(ctx, userID, updated); err != nil {
		return models.UserData{}, err
	}
	return updated, nil
}

// Credential returns the stored password hash of userID.
func (r *Repository) Credential(ctx context.Context, userID string) (string, bool, error) {
	hash, ok, err := r.gw.Get(ctx, CredentialKey(userID))
	if err != nil {
		return "", false, fmt.Errorf("failed to read credential: %w", err)
	}
	return hash, ok, nil
}

// SaveCredential stores the password hash of userID.
func (r *Repository) SaveCredential(ctx context.Context, userID, hash string) error {
	if err := r.gw.Set(ctx, CredentialKey(userID), hash); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}
	return nil
}

func (r *Repository) put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.gw.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
