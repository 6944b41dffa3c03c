package main

import (
	"context"
	"testing"

	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpsertAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new administrator", func(t *testing.T) {
		users := new(testutil.MockUserRepository)
		users.On("FindByEmail", ctx, "root@example.com").Return(nil, shared.ErrNotFound)
		users.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		user, created, err := upsertAdmin(ctx, users, "Root", "Root@Example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, identity.RoleAdmin, user.Role)
		assert.Equal(t, "root@example.com", user.Email)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
	})

	t.Run("promotes and reactivates an existing user", func(t *testing.T) {
		existing, err := identity.NewUser("Staff", "staff@example.com", identity.RoleStaff)
		require.NoError(t, err)
		existing.ID = 4
		require.NoError(t, existing.Deactivate())

		users := new(testutil.MockUserRepository)
		users.On("FindByEmail", ctx, "staff@example.com").Return(existing, nil)
		users.On("Save", ctx, existing).Return(nil)

		user, created, err := upsertAdmin(ctx, users, "ignored", "staff@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(4), user.ID)
		assert.Equal(t, "Staff", user.Name)
		assert.Equal(t, identity.RoleAdmin, user.Role)
		assert.True(t, user.Active)
	})

	t.Run("weak password is rejected before saving", func(t *testing.T) {
		users := new(testutil.MockUserRepository)
		users.On("FindByEmail", ctx, "root@example.com").Return(nil, shared.ErrNotFound)

		_, _, err := upsertAdmin(ctx, users, "Root", "root@example.com", "short")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
