package auth

import (
	"context"

	"github.com/mmynk/budgetbuddy/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The service layer only depends on this, so the credential scheme can change
// without touching the handlers.
type Authenticator interface {
	// Register creates a user profile, its credential and its default dashboard data.
	Register(ctx context.Context, name, email, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

// Directory looks up and edits stored profiles.
type Directory interface {
	User(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error)
}
