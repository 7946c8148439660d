//go:build unit

package commands_test

import (
	"context"
	"testing"

	"loyalty-ledger/internal/domain/user"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/pkg/password"
	"loyalty-ledger/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCommands_RegisterUser(t *testing.T) {
	ctx := context.Background()
	locationID := uuid.New()

	t.Run("registers a cashier with a hashed password", func(t *testing.T) {
		store := newFakeStore()
		cmd := commands.NewUserCommands(&fakeUow{store: store})

		result, err := cmd.RegisterUser(ctx, commands.RegisterUserInput{
			Email:      "cashier@example.com",
			Password:   "s3cret-pass",
			Role:       "cashier",
			LocationID: &locationID,
		})
		require.NoError(t, err)

		assert.Equal(t, "cashier@example.com", result.Email)
		assert.Equal(t, "cashier", result.Role)

		require.Len(t, store.users, 1)
		created := store.users[0]
		assert.Equal(t, result.UserID, created.ID())
		assert.True(t, created.IsActive())
		require.NotNil(t, created.LocationID())
		assert.Equal(t, locationID, *created.LocationID())
		// The stored hash must verify against the plaintext and never equal it.
		assert.NotEqual(t, "s3cret-pass", created.PasswordHash())
		assert.NoError(t, password.ComparePassword(created.PasswordHash(), "s3cret-pass"))
	})

	t.Run("admin accounts need no location", func(t *testing.T) {
		store := newFakeStore()
		cmd := commands.NewUserCommands(&fakeUow{store: store})

		result, err := cmd.RegisterUser(ctx, commands.RegisterUserInput{
			Email:    "admin@example.com",
			Password: "s3cret-pass",
			Role:     "admin",
		})
		require.NoError(t, err)

		assert.Equal(t, "admin", result.Role)
		require.Len(t, store.users, 1)
		assert.Nil(t, store.users[0].LocationID())
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		store := newFakeStore()
		cmd := commands.NewUserCommands(&fakeUow{store: store})

		input := commands.RegisterUserInput{
			Email:    "cashier@example.com",
			Password: "s3cret-pass",
			Role:     "cashier",
		}
		_, err := cmd.RegisterUser(ctx, input)
		require.NoError(t, err)

		_, err = cmd.RegisterUser(ctx, input)
		assert.ErrorIs(t, err, errs.ErrEmailAlreadyUsed)
		assert.Len(t, store.users, 1)
	})

	t.Run("rejects invalid input before touching the store", func(t *testing.T) {
		store := newFakeStore()
		cmd := commands.NewUserCommands(&fakeUow{store: store})

		tests := []struct {
			name    string
			input   commands.RegisterUserInput
			wantErr error
		}{
			{
				name:    "malformed email",
				input:   commands.RegisterUserInput{Email: "not-an-email", Password: "s3cret-pass", Role: "cashier"},
				wantErr: user.ErrInvalidEmail,
			},
			{
				name:    "short password",
				input:   commands.RegisterUserInput{Email: "a@example.com", Password: "short", Role: "cashier"},
				wantErr: user.ErrPasswordTooWeak,
			},
			{
				name:    "unknown role",
				input:   commands.RegisterUserInput{Email: "a@example.com", Password: "s3cret-pass", Role: "manager"},
				wantErr: user.ErrInvalidRole,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := cmd.RegisterUser(ctx, tt.input)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
		assert.Empty(t, store.users)
	})
}
