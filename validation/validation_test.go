package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountportal/go-account-portal/validation"
)

func TestIsValidUsername(t *testing.T) {
	t.Run("valid usernames", func(t *testing.T) {
		for _, username := range []string{"abc", "user123", "ABC", "a1B2c3", strings.Repeat("a", 20)} {
			require.True(t, validation.IsValidUsername(username), username)
		}
	})

	t.Run("too short", func(t *testing.T) {
		require.False(t, validation.IsValidUsername("ab"))
	})

	t.Run("too long", func(t *testing.T) {
		require.False(t, validation.IsValidUsername(strings.Repeat("a", 21)))
	})

	t.Run("non-alphanumeric characters", func(t *testing.T) {
		for _, username := range []string{"user name", "user-name", "user_name", "user!", "用戶名稱"} {
			require.False(t, validation.IsValidUsername(username), username)
		}
	})

	t.Run("empty", func(t *testing.T) {
		require.False(t, validation.IsValidUsername(""))
	})
}

func TestIsValidPassword(t *testing.T) {
	t.Run("all classes present", func(t *testing.T) {
		require.True(t, validation.IsValidPassword("Abcdef1!"))
	})

	t.Run("no uppercase or symbol", func(t *testing.T) {
		require.False(t, validation.IsValidPassword("abcdefg1"))
	})

	t.Run("no digit or lowercase", func(t *testing.T) {
		require.False(t, validation.IsValidPassword("ABCDEFG!"))
	})

	t.Run("too short", func(t *testing.T) {
		require.False(t, validation.IsValidPassword("Abc1!"))
	})

	t.Run("underscore is not a special character", func(t *testing.T) {
		require.False(t, validation.IsValidPassword("Abcdefg1_"))
	})
}

func TestPasswordStrengthMessage(t *testing.T) {
	t.Run("acceptable password", func(t *testing.T) {
		require.Empty(t, validation.PasswordStrengthMessage("Abcdef1!"))
	})

	t.Run("length first", func(t *testing.T) {
		require.Contains(t, validation.PasswordStrengthMessage("Ab1!"), "at least 8 characters")
	})

	t.Run("missing uppercase", func(t *testing.T) {
		require.Contains(t, validation.PasswordStrengthMessage("abcdef1!"), "uppercase")
	})

	t.Run("missing digit", func(t *testing.T) {
		require.Contains(t, validation.PasswordStrengthMessage("Abcdefg!"), "digit")
	})

	t.Run("missing special character", func(t *testing.T) {
		require.Contains(t, validation.PasswordStrengthMessage("Abcdefg1"), "special")
	})
}

func TestIsValidPhone(t *testing.T) {
	t.Run("empty phone is valid", func(t *testing.T) {
		require.True(t, validation.IsValidPhone(""))
	})

	t.Run("ten digits", func(t *testing.T) {
		require.True(t, validation.IsValidPhone("0912345678"))
	})

	t.Run("too few digits", func(t *testing.T) {
		require.False(t, validation.IsValidPhone("12345"))
	})

	t.Run("non-digit characters", func(t *testing.T) {
		require.False(t, validation.IsValidPhone("09123456a8"))
	})

	t.Run("eleven digits", func(t *testing.T) {
		require.False(t, validation.IsValidPhone("09123456789"))
	})
}

func TestIsValidEmail(t *testing.T) {
	t.Run("valid emails", func(t *testing.T) {
		for _, email := range []string{"user@example.com", "a.b@c.co", "user+tag@mail.example.org"} {
			require.True(t, validation.IsValidEmail(email), email)
		}
	})

	t.Run("invalid emails", func(t *testing.T) {
		for _, email := range []string{"", "userexample.com", "user@examplecom", "user @example.com", "user@@example.com"} {
			require.False(t, validation.IsValidEmail(email), email)
		}
	})
}
