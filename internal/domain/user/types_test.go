//go:build unit

package user_test

import (
	"testing"

	"school-rewards/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role          user.Role
		issueVouchers bool
		manageOrders  bool
		manageCatalog bool
	}{
		{user.RoleStudent, false, false, false},
		{user.RoleTeacher, true, true, false},
		{user.RoleAdmin, true, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.role.String(), func(t *testing.T) {
			assert.Equal(t, tc.issueVouchers, tc.role.CanIssueVouchers())
			assert.Equal(t, tc.manageOrders, tc.role.CanManageOrders())
			assert.Equal(t, tc.manageCatalog, tc.role.CanManageCatalog())
		})
	}
}

func TestCanApproveFor(t *testing.T) {
	t.Run("admin approves for any student", func(t *testing.T) {
		assert.True(t, user.RoleAdmin.CanApproveFor(false))
		assert.True(t, user.RoleAdmin.CanApproveFor(true))
	})

	t.Run("teacher approves only for assigned students", func(t *testing.T) {
		assert.True(t, user.RoleTeacher.CanApproveFor(true))
		assert.False(t, user.RoleTeacher.CanApproveFor(false))
	})

	t.Run("student never approves", func(t *testing.T) {
		assert.False(t, user.RoleStudent.CanApproveFor(true))
	})
}

func TestNewRole(t *testing.T) {
	for _, s := range []string{"student", "teacher", "admin"} {
		role, err := user.NewRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	_, err := user.NewRole("principal")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestCredentials(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		creds, err := user.NewCredentials("student@school.example", "longenough")
		require.NoError(t, err)
		assert.Equal(t, "student@school.example", creds.Email().Value())
		assert.Equal(t, "longenough", creds.Password().Value())
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := user.NewCredentials("not-an-email", "longenough")
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := user.NewCredentials("student@school.example", "short")
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})

	t.Run("email is trimmed", func(t *testing.T) {
		email, err := user.NewEmail("  student@school.example  ")
		require.NoError(t, err)
		assert.Equal(t, "student@school.example", email.Value())
	})
}
