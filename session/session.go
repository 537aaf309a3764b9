package session

// Status is the authentication state of the current session.
type Status int

const (
	// Anonymous is the initial state: no credentials have been exchanged.
	Anonymous Status = iota
	// Authenticating is the transient state while a credential exchange
	// is in flight.
	Authenticating
	// Authenticated means the session holds a bearer token.
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// Subject identifies the authenticated user.
type Subject struct {
	ID          string
	DisplayName string
	Email       string
}

// Session is the client-held authentication state. AccessToken is
// non-empty if and only if Status is Authenticated.
type Session struct {
	Status       Status
	AccessToken  string
	RefreshToken string
	Subject      Subject
}

// Authenticated reports whether the session holds a bearer token.
func (s Session) Authenticated() bool {
	return s.Status == Authenticated
}
