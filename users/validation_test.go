package users_test

import (
	"testing"

	"github.com/oleastore/go-admin-console/users"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	t.Run("valid email", func(t *testing.T) {
		require.NoError(t, users.ValidateEmail("ops@olea.store"))
	})

	t.Run("missing email", func(t *testing.T) {
		err := users.ValidateEmail("   ")
		require.Error(t, err)
		require.Contains(t, err.Error(), "required")
	})

	t.Run("malformed email", func(t *testing.T) {
		err := users.ValidateEmail("not-an-email")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid email format")
	})
}

func TestValidatePassword(t *testing.T) {
	t.Run("acceptable password", func(t *testing.T) {
		require.NoError(t, users.ValidatePassword("Str0ngPassword"))
	})

	t.Run("too short", func(t *testing.T) {
		err := users.ValidatePassword("short")
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least")
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		err := users.ValidatePassword(" padded-password ")
		require.Error(t, err)
		require.Contains(t, err.Error(), "whitespace")
	})
}

func TestUserValidate(t *testing.T) {
	valid := users.User{Email: "ops@olea.store", Username: "ops", Role: users.RoleAdmin}

	t.Run("valid account", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("missing username", func(t *testing.T) {
		u := valid
		u.Username = " "
		require.Error(t, u.Validate())
	})

	t.Run("unknown role", func(t *testing.T) {
		u := valid
		u.Role = users.RoleType("superhero")
		err := u.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown role")
	})
}
