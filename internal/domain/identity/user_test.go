package identity

import (
	"errors"
	"testing"

	"github.com/inventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(" Ada ", " Ada@Example.COM ", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, RoleStaff, u.Role)
	assert.True(t, u.Active)

	tests := []struct {
		name  string
		uname string
		email string
		role  Role
	}{
		{"empty name", "", "a@b.io", RoleStaff},
		{"bad email", "Ada", "not-an-email", RoleStaff},
		{"bad role", "Ada", "a@b.io", "OWNER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.uname, tt.email, tt.role)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestNewDirectoryUser(t *testing.T) {
	u, err := NewDirectoryUser("oid-1", "", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "oid-1", u.DirectoryID())
	assert.Equal(t, "ada@example.com", u.Name)
	assert.Equal(t, RoleStaff, u.Role)

	_, err = NewDirectoryUser(" ", "Ada", "ada@example.com")
	assert.Error(t, err)
}

func TestUser_ActivateDeactivate(t *testing.T) {
	u, err := NewUser("Ada", "ada@example.com", RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, u.Deactivate())
	err = u.Deactivate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.Equal(t, "User is already inactive", err.Error())

	require.NoError(t, u.Activate())
	assert.Error(t, u.Activate())
}

func TestUser_Password(t *testing.T) {
	u, err := NewUser("Ada", "ada@example.com", RoleAdmin)
	require.NoError(t, err)
	assert.False(t, u.VerifyPassword("anything1"))

	assert.Error(t, u.SetPassword("short1"))
	assert.Error(t, u.SetPassword("lettersonly"))
	require.NoError(t, u.SetPassword("s3cretpass"))
	assert.True(t, u.VerifyPassword("s3cretpass"))
	assert.False(t, u.VerifyPassword("wrongpass1"))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, r)

	r, err = ParseRole("auditor")
	require.NoError(t, err)
	assert.Equal(t, RoleAuditor, r)

	_, err = ParseRole("root")
	assert.Error(t, err)
}

func TestUser_HasRole(t *testing.T) {
	u, err := NewUser("Ada", "ada@example.com", RoleAuditor)
	require.NoError(t, err)
	assert.True(t, u.HasRole(RoleAdmin, RoleAuditor))
	assert.False(t, u.HasRole(RoleAdmin, RoleStaff))
}
