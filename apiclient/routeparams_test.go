package apiclient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandRouteParams(t *testing.T) {
	t.Run("no placeholders", func(t *testing.T) {
		path, err := expandRouteParams("/auth/login", nil)
		require.NoError(t, err)
		require.Equal(t, "/auth/login", path)
	})

	t.Run("substitutes placeholder", func(t *testing.T) {
		path, err := expandRouteParams("/user/:id/orders", map[string]string{"id": "42"})
		require.NoError(t, err)
		require.Equal(t, "/user/42/orders", path)
	})

	t.Run("multiple placeholders", func(t *testing.T) {
		path, err := expandRouteParams("/user/:id/orders/:orderId", map[string]string{"id": "42", "orderId": "7"})
		require.NoError(t, err)
		require.Equal(t, "/user/42/orders/7", path)
	})

	t.Run("missing param is an error", func(t *testing.T) {
		_, err := expandRouteParams("/user/:id", nil)
		require.ErrorContains(t, err, `missing route parameter "id"`)

		_, err = expandRouteParams("/user/:id/orders/:orderId", map[string]string{"id": "42"})
		require.ErrorContains(t, err, `missing route parameter "orderId"`)
	})

	t.Run("empty param value is an error", func(t *testing.T) {
		_, err := expandRouteParams("/user/:id", map[string]string{"id": ""})
		require.ErrorContains(t, err, `must not be empty`)
	})

	t.Run("collapses repeated separators", func(t *testing.T) {
		path, err := expandRouteParams("//user//:id/", map[string]string{"id": "42"})
		require.NoError(t, err)
		require.Equal(t, "/user/42", path)
	})

	t.Run("escapes param values", func(t *testing.T) {
		path, err := expandRouteParams("/user/:id", map[string]string{"id": "a b"})
		require.NoError(t, err)
		require.Equal(t, "/user/a%20b", path)
	})
}
