package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/budgetbuddy/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingField       = errors.New("name and email are required")
)

// UserStorage defines the persistence the authenticator needs.
// storage.Repository satisfies it.
type UserStorage interface {
	Users(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error
	Credential(ctx context.Context, userID string) (string, bool, error)
	SaveCredential(ctx context.Context, userID, hash string) error
	SaveUserData(ctx context.Context, userID string, data models.UserData) error
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
// Hashes are stored under their own key and never inside the profile list.
type PasswordAuthenticator struct {
	storage UserStorage

	// mu serializes read-modify-write cycles on the user list.
	mu sync.Mutex
}

var (
	_ Authenticator = (*PasswordAuthenticator)(nil)
	_ Directory     = (*PasswordAuthenticator)(nil)
)

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user with a hashed password and the default dashboard data.
func (a *PasswordAuthenticator) Register(ctx context.Context, name, email, credential string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, ErrMissingField
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.storage.Users(ctx)
	if err != nil {
		return nil, err
	}
	if indexByEmail(users, email, "") >= 0 {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}
	// The profile list is written last: until it lands the email stays free, and
	// records left by a failed attempt belong to an id nobody can reach.
	if err := a.storage.SaveCredential(ctx, user.ID, string(hashedPassword)); err != nil {
		return nil, fmt.Errorf("failed to store credential: %w", err)
	}
	if err := a.storage.SaveUserData(ctx, user.ID, models.DefaultUserData()); err != nil {
		return nil, fmt.Errorf("failed to initialize user data: %w", err)
	}
	if err := a.storage.SaveUsers(ctx, append(users, user)); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies the email and password, returning the user if valid.
// Unknown emails and wrong passwords produce the same error.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	users, err := a.storage.Users(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexByEmail(users, strings.TrimSpace(email), "")
	if idx < 0 {
		return nil, ErrInvalidCredentials
	}
	user := users[idx]

	hash, ok, err := a.storage.Credential(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// User returns the profile with the given id.
func (a *PasswordAuthenticator) User(ctx context.Context, id string) (*models.User, error) {
	users, err := a.storage.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdateProfile applies update to the profile of id. Name and email must stay
// non-empty and the email must not belong to another user.
func (a *PasswordAuthenticator) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.storage.Users(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, u := range users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrUserNotFound
	}

	updated := update.Apply(users[idx])
	updated.ID = id
	updated.Name = strings.TrimSpace(updated.Name)
	updated.Email = strings.TrimSpace(updated.Email)
	if updated.Name == "" || updated.Email == "" {
		return nil, ErrMissingField
	}
	if indexByEmail(users, updated.Email, id) >= 0 {
		return nil, ErrDuplicateEmail
	}

	users[idx] = updated
	if err := a.storage.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &updated, nil
}

// indexByEmail finds the user with email, skipping the user with id except.
func indexByEmail(users []models.User, email, except string) int {
	for i, u := range users {
		if u.Email == email && u.ID != except {
			return i
		}
	}
	return -1
}
