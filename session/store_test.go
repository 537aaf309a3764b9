package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/accountportal/go-account-portal/apiclient"
	"github.com/accountportal/go-account-portal/session"
)

func newStoreAgainst(t *testing.T, handler http.HandlerFunc) *session.Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return session.NewStore(apiclient.New(srv.URL, zerolog.Nop()), zerolog.Nop())
}

func loginOK(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"data":{"token":"t-1","refreshToken":"r-1","user":{"id":9,"username":"alice","email":"alice@example.com"}}}`))
}

func TestBeginLogin(t *testing.T) {
	t.Run("success transitions through authenticating", func(t *testing.T) {
		store := newStoreAgainst(t, loginOK)

		var seen []session.Status
		unsubscribe := store.Subscribe(func(s session.Session) {
			seen = append(seen, s.Status)
		})
		defer unsubscribe()

		sess, err := store.BeginLogin(context.Background(), session.Credentials{Username: "alice", Password: "pw"})
		require.NoError(t, err)
		require.Equal(t, session.Authenticated, sess.Status)
		require.Equal(t, "t-1", sess.AccessToken)
		require.Equal(t, "r-1", sess.RefreshToken)
		require.Equal(t, "9", sess.Subject.ID)
		require.Equal(t, "alice", sess.Subject.DisplayName)
		require.Equal(t, []session.Status{session.Authenticating, session.Authenticated}, seen)
		require.Equal(t, sess, store.Current())
	})

	t.Run("rejected credentials return to anonymous", func(t *testing.T) {
		store := newStoreAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
		})

		_, err := store.BeginLogin(context.Background(), session.Credentials{Username: "alice", Password: "wrong"})
		require.Error(t, err)

		var apiErr *apiclient.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, session.Anonymous, store.Current().Status)
	})

	t.Run("token-less success is an authentication failure", func(t *testing.T) {
		store := newStoreAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"user":{"id":9,"username":"alice"}}}`))
		})

		_, err := store.BeginLogin(context.Background(), session.Credentials{Username: "alice", Password: "pw"})
		require.ErrorIs(t, err, session.ErrMalformedLoginResponse)
		require.Equal(t, session.Anonymous, store.Current().Status)
	})

	t.Run("second login on an authenticated store is rejected", func(t *testing.T) {
		store := newStoreAgainst(t, loginOK)

		_, err := store.BeginLogin(context.Background(), session.Credentials{Username: "alice", Password: "pw"})
		require.NoError(t, err)

		_, err = store.BeginLogin(context.Background(), session.Credentials{Username: "alice", Password: "pw"})
		require.ErrorIs(t, err, session.ErrAlreadyAuthenticated)
	})
}

func TestCompleteExternalLogin(t *testing.T) {
	t.Run("adopts external tokens", func(t *testing.T) {
		store := session.NewStore(apiclient.New("http://localhost:0", zerolog.Nop()), zerolog.Nop())

		sess, err := store.CompleteExternalLogin("ext-token", "", session.Subject{ID: "sub-1", DisplayName: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)
		require.Equal(t, session.Authenticated, sess.Status)
		require.Equal(t, "ext-token", sess.AccessToken)
		require.Equal(t, sess, store.Current())
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		store := session.NewStore(apiclient.New("http://localhost:0", zerolog.Nop()), zerolog.Nop())

		_, err := store.CompleteExternalLogin("", "", session.Subject{})
		require.ErrorIs(t, err, session.ErrMalformedLoginResponse)
		require.Equal(t, session.Anonymous, store.Current().Status)
	})
}

func TestLogout(t *testing.T) {
	t.Run("clears session and calls remote logout", func(t *testing.T) {
		var gotAuth string
		var logoutCalls int
		store := newStoreAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/logout" {
				logoutCalls++
				gotAuth = r.Header.Get("Authorization")
				_, _ = w.Write([]byte(`{"message":"logged out"}`))
				return
			}
			loginOK(w, r)
		})

		_, err := store.BeginLogin(context.Background(), session.Credentials{Username: "alice", Password: "pw"})
		require.NoError(t, err)

		require.NoError(t, store.Logout(context.Background()))
		require.Equal(t, 1, logoutCalls)
		require.Equal(t, "Bearer t-1", gotAuth)
		require.Equal(t, session.Anonymous, store.Current().Status)
	})

	t.Run("remote failure still clears local session", func(t *testing.T) {
		store := newStoreAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/logout" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			loginOK(w, r)
		})

		_, err := store.BeginLogin(context.Background(), session.Credentials{Username: "alice", Password: "pw"})
		require.NoError(t, err)

		err = store.Logout(context.Background())
		require.Error(t, err)
		require.Equal(t, session.Anonymous, store.Current().Status)
	})

	t.Run("anonymous logout is a no-op", func(t *testing.T) {
		var logoutCalls int
		store := newStoreAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			logoutCalls++
		})

		require.NoError(t, store.Logout(context.Background()))
		require.Zero(t, logoutCalls)
	})
}

func TestInvalidate(t *testing.T) {
	t.Run("authenticated becomes anonymous", func(t *testing.T) {
		store := newStoreAgainst(t, loginOK)
		_, err := store.BeginLogin(context.Background(), session.Credentials{Username: "alice", Password: "pw"})
		require.NoError(t, err)

		store.Invalidate()
		require.Equal(t, session.Anonymous, store.Current().Status)
	})

	t.Run("anonymous is untouched", func(t *testing.T) {
		store := session.NewStore(apiclient.New("http://localhost:0", zerolog.Nop()), zerolog.Nop())

		var notified bool
		defer store.Subscribe(func(session.Session) { notified = true })()

		store.Invalidate()
		require.False(t, notified)
	})
}

func TestRestore(t *testing.T) {
	t.Run("seeds from an authenticated session", func(t *testing.T) {
		seed := session.Session{
			Status:      session.Authenticated,
			AccessToken: "t-1",
			Subject:     session.Subject{ID: "9", DisplayName: "alice"},
		}
		store := session.Restore(apiclient.New("http://localhost:0", zerolog.Nop()), zerolog.Nop(), seed)
		require.Equal(t, seed, store.Current())
	})

	t.Run("ignores a token-less session", func(t *testing.T) {
		seed := session.Session{Status: session.Authenticated}
		store := session.Restore(apiclient.New("http://localhost:0", zerolog.Nop()), zerolog.Nop(), seed)
		require.Equal(t, session.Anonymous, store.Current().Status)
	})
}

func TestSubscribeUnsubscribe(t *testing.T) {
	store := newStoreAgainst(t, loginOK)

	var calls int
	unsubscribe := store.Subscribe(func(session.Session) { calls++ })
	unsubscribe()

	_, err := store.BeginLogin(context.Background(), session.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.Zero(t, calls)
}

func TestErrorUnwrapping(t *testing.T) {
	// BeginLogin wraps the dispatch failure; callers must still be able to
	// reach the typed error.
	store := newStoreAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	})

	_, err := store.BeginLogin(context.Background(), session.Credentials{Username: "a", Password: "b"})

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "bad credentials", apiErr.Message)
}
