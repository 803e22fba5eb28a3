package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/budgetbuddy/internal/auth"
	"github.com/mmynk/budgetbuddy/internal/models"
	"github.com/mmynk/budgetbuddy/internal/storage"
	"github.com/mmynk/budgetbuddy/internal/storage/memory"
)

func newAuthenticator(t *testing.T) (*auth.PasswordAuthenticator, *memory.Gateway) {
	t.Helper()
	gw := memory.New()
	return auth.NewPasswordAuthenticator(storage.NewRepository(gw)), gw
}

func ptr[T any](v T) *T { return &v }

// flakyGateway fails the next Set whose key starts with failPrefix.
type flakyGateway struct {
	*memory.Gateway
	failPrefix string
}

func (g *flakyGateway) Set(ctx context.Context, key, value string) error {
	if g.failPrefix != "" && strings.HasPrefix(key, g.failPrefix) {
		g.failPrefix = ""
		return errors.New("disk full")
	}
	return g.Gateway.Set(ctx, key, value)
}

func TestRegisterFailedWriteKeepsEmailFree(t *testing.T) {
	for _, prefix := range []string{storage.CredentialKey(""), storage.DataKey(""), storage.UsersKey} {
		t.Run(prefix, func(t *testing.T) {
			ctx := context.Background()
			gw := &flakyGateway{Gateway: memory.New(), failPrefix: prefix}
			a := auth.NewPasswordAuthenticator(storage.NewRepository(gw))

			_, err := a.Register(ctx, "Asha", "asha@example.com", "password1")
			require.Error(t, err)

			users, err := storage.NewRepository(gw).Users(ctx)
			require.NoError(t, err)
			assert.Empty(t, users)

			user, err := a.Register(ctx, "Asha", "asha@example.com", "password1")
			require.NoError(t, err)
			loggedIn, err := a.Authenticate(ctx, "asha@example.com", "password1")
			require.NoError(t, err)
			assert.Equal(t, user.ID, loggedIn.ID)
		})
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	a, gw := newAuthenticator(t)

	user, err := a.Register(ctx, " Asha ", "asha@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Asha", user.Name)

	repo := storage.NewRepository(gw)
	users, err := repo.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, *user, users[0])

	raw, ok, err := gw.Get(ctx, storage.UsersKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "s3cretpass")
	assert.NotContains(t, raw, "$2a$")

	hash, ok, err := repo.Credential(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	_, ok, err = gw.Get(ctx, storage.DataKey(user.ID))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	a, gw := newAuthenticator(t)

	first, err := a.Register(ctx, "Asha", "asha@example.com", "password1")
	require.NoError(t, err)
	lenAfterFirst := gw.Len()

	_, err = a.Register(ctx, "Impostor", "asha@example.com", "password2")
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	users, err := storage.NewRepository(gw).Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, first.ID, users[0].ID)
	// users + credential + one data record
	assert.Equal(t, 3, lenAfterFirst)
	assert.Equal(t, lenAfterFirst, gw.Len())
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	a, _ := newAuthenticator(t)

	_, err := a.Register(ctx, "", "x@example.com", "password1")
	assert.ErrorIs(t, err, auth.ErrMissingField)
	_, err = a.Register(ctx, "X", "  ", "password1")
	assert.ErrorIs(t, err, auth.ErrMissingField)
	_, err = a.Register(ctx, "X", "x@example.com", "short")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	a, _ := newAuthenticator(t)
	registered, err := a.Register(ctx, "Asha", "asha@example.com", "password1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "asha@example.com", password: "password1"},
		{name: "wrong password", email: "asha@example.com", password: "password2", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "password1", wantErr: auth.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := a.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	a, _ := newAuthenticator(t)
	asha, err := a.Register(ctx, "Asha", "asha@example.com", "password1")
	require.NoError(t, err)
	_, err = a.Register(ctx, "Ravi", "ravi@example.com", "password1")
	require.NoError(t, err)

	updated, err := a.UpdateProfile(ctx, asha.ID, models.ProfileUpdate{Phone: ptr("+91 98765 43210"), Bio: ptr("Saving for a bike")})
	require.NoError(t, err)
	assert.Equal(t, asha.ID, updated.ID)
	assert.Equal(t, "Asha", updated.Name)
	assert.Equal(t, "+91 98765 43210", updated.Phone)

	got, err := a.User(ctx, asha.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = a.UpdateProfile(ctx, asha.ID, models.ProfileUpdate{Email: ptr("ravi@example.com")})
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	_, err = a.UpdateProfile(ctx, asha.ID, models.ProfileUpdate{Name: ptr(" ")})
	assert.ErrorIs(t, err, auth.ErrMissingField)

	_, err = a.UpdateProfile(ctx, "missing", models.ProfileUpdate{Name: ptr("X")})
	assert.ErrorIs(t, err, auth.ErrUserNotFound)

	_, err = a.User(ctx, "missing")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)

	// keeping one's own email is not a conflict
	_, err = a.UpdateProfile(ctx, asha.ID, models.ProfileUpdate{Email: ptr("asha@example.com")})
	assert.NoError(t, err)

	// login still works with the changed profile
	_, err = a.Authenticate(ctx, "asha@example.com", "password1")
	assert.NoError(t, err)
}
