package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/accountportal/go-account-portal/session"
)

var tokenSecret = []byte("test-secret")

func authenticatedSession() session.Session {
	return session.Session{
		Status:       session.Authenticated,
		AccessToken:  "t-1",
		RefreshToken: "r-1",
		Subject:      session.Subject{ID: "9", DisplayName: "alice", Email: "alice@example.com"},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	sess := authenticatedSession()

	token, err := session.EncodeToken(sess, tokenSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := session.DecodeToken(token, tokenSecret)
	require.NoError(t, err)
	require.Equal(t, sess, decoded)
}

func TestEncodeTokenRequiresAuthenticated(t *testing.T) {
	_, err := session.EncodeToken(session.Session{Status: session.Anonymous}, tokenSecret, time.Hour)
	require.Error(t, err)

	_, err = session.EncodeToken(session.Session{Status: session.Authenticating}, tokenSecret, time.Hour)
	require.Error(t, err)
}

func TestDecodeToken(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		decoded, err := session.DecodeToken("", tokenSecret)
		require.Error(t, err)
		require.Equal(t, session.Anonymous, decoded.Status)
	})

	t.Run("garbage token", func(t *testing.T) {
		decoded, err := session.DecodeToken("not.a.token", tokenSecret)
		require.Error(t, err)
		require.Equal(t, session.Anonymous, decoded.Status)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := session.EncodeToken(authenticatedSession(), tokenSecret, time.Hour)
		require.NoError(t, err)

		decoded, err := session.DecodeToken(token, []byte("other-secret"))
		require.Error(t, err)
		require.Equal(t, session.Anonymous, decoded.Status)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := session.EncodeToken(authenticatedSession(), tokenSecret, -time.Minute)
		require.NoError(t, err)

		decoded, err := session.DecodeToken(token, tokenSecret)
		require.Error(t, err)
		require.Equal(t, session.Anonymous, decoded.Status)
	})
}
