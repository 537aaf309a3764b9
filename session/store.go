package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/accountportal/go-account-portal/apiclient"
)

var (
	// ErrLoginInFlight means a credential exchange is already running.
	ErrLoginInFlight = errors.New("login already in progress")
	// ErrAlreadyAuthenticated means BeginLogin was called on an
	// authenticated session.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	// ErrMalformedLoginResponse means the exchange succeeded at the HTTP
	// level but the payload carried no token. Treated as an
	// authentication failure, never as a crash.
	ErrMalformedLoginResponse = errors.New("login response did not contain a token")
)

// Credentials are a username/password pair. They live only for the
// duration of a login attempt and are never persisted.
type Credentials struct {
	Username string
	Password string
}

// Store owns the session state machine. It is the only writer of the
// session cell; consumers read snapshots or subscribe to transitions.
type Store struct {
	client *apiclient.Client
	log    zerolog.Logger

	mu          sync.Mutex
	current     Session
	nextSubID   int
	subscribers map[int]func(Session)
}

// NewStore creates a store in the Anonymous state.
func NewStore(client *apiclient.Client, log zerolog.Logger) *Store {
	return &Store{
		client:      client,
		log:         log,
		subscribers: make(map[int]func(Session)),
	}
}

// Restore creates a store seeded from a previously persisted session,
// typically decoded from the browser's session token.
func Restore(client *apiclient.Client, log zerolog.Logger, sess Session) *Store {
	s := NewStore(client, log)
	if sess.Authenticated() && sess.AccessToken != "" {
		s.current = sess
	}
	return s
}

// Current returns a snapshot of the session. The snapshot is always fully
// formed; no partial update is ever visible.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn to be called with each new session state. The
// returned function unsubscribes.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// set replaces the session cell and notifies subscribers. Subscribers run
// outside the lock so they can read the store.
func (s *Store) set(sess Session) {
	s.mu.Lock()
	s.current = sess
	fns := make([]func(Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}

// BeginLogin exchanges credentials for tokens: Anonymous → Authenticating
// → Authenticated on success, back to Anonymous on any failure. A second
// login while one is in flight is rejected.
func (s *Store) BeginLogin(ctx context.Context, creds Credentials) (Session, error) {
	s.mu.Lock()
	switch s.current.Status {
	case Authenticating:
		s.mu.Unlock()
		return Session{}, ErrLoginInFlight
	case Authenticated:
		s.mu.Unlock()
		return Session{}, ErrAlreadyAuthenticated
	}
	s.mu.Unlock()

	s.set(Session{Status: Authenticating})

	resp, err := apiclient.Call[apiclient.LoginResponse](ctx, s.client, apiclient.OpLogin, apiclient.Options{
		Body: apiclient.LoginRequest{Username: creds.Username, Password: creds.Password},
	})
	if err != nil {
		s.set(Session{Status: Anonymous})
		return Session{}, fmt.Errorf("[BeginLogin] credential exchange failed: %w", err)
	}

	if resp.Token == "" {
		s.log.Warn().Str("username", creds.Username).Msg("login succeeded without a token")
		s.set(Session{Status: Anonymous})
		return Session{}, ErrMalformedLoginResponse
	}

	sess := Session{
		Status:       Authenticated,
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
		Subject: Subject{
			ID:          apiclient.FormatID(resp.User.ID),
			DisplayName: resp.User.Username,
			Email:       resp.User.Email,
		},
	}
	s.set(sess)
	return sess, nil
}

// CompleteExternalLogin adopts tokens obtained through an external
// credential exchange (for example a verified Google sign-in) into the
// same Anonymous → Authenticated transition.
func (s *Store) CompleteExternalLogin(accessToken, refreshToken string, subject Subject) (Session, error) {
	if accessToken == "" {
		return Session{}, ErrMalformedLoginResponse
	}

	s.mu.Lock()
	if s.current.Status == Authenticating {
		s.mu.Unlock()
		return Session{}, ErrLoginInFlight
	}
	s.mu.Unlock()

	sess := Session{
		Status:       Authenticated,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Subject:      subject,
	}
	s.set(sess)
	return sess, nil
}

// Logout clears the session. The server-side logout is best effort: the
// local state always ends Anonymous, and a remote failure is returned so
// the caller can display it. Logging out an Anonymous session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.current.Status != Authenticated {
		s.mu.Unlock()
		return nil
	}
	accessToken := s.current.AccessToken
	s.mu.Unlock()

	_, err := s.client.Dispatch(ctx, apiclient.OpLogout, apiclient.Options{
		Headers: apiclient.BearerHeader(accessToken),
	})

	s.set(Session{Status: Anonymous})

	if err != nil {
		s.log.Warn().Err(err).Msg("server-side logout failed, local session cleared")
		return fmt.Errorf("[Logout] server-side logout failed: %w", err)
	}
	return nil
}

// Invalidate handles an externally observed token rejection (a 401 on a
// later call): Authenticated → Anonymous. Any other state is untouched.
func (s *Store) Invalidate() {
	s.mu.Lock()
	if s.current.Status != Authenticated {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.set(Session{Status: Anonymous})
}
