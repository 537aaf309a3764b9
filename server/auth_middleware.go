package server

import (
	"context"
	"net/http"

	"github.com/accountportal/go-account-portal/guard"
	"github.com/accountportal/go-account-portal/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the session reconstructed from the browser's
// session token.
const ContextKeySession ContextKey = "session"

// SessionMiddleware rebuilds the session from the signed session cookie
// and injects it into the request context. A missing, invalid or expired
// token simply yields an Anonymous session; the guard decides what to do
// with it.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.Session{Status: session.Anonymous}

		if cookie, err := r.Cookie(s.config.GetSessionCookieName()); err == nil && cookie.Value != "" {
			decoded, err := session.DecodeToken(cookie.Value, s.config.GetSessionSecret())
			if err != nil {
				s.log.Debug().Err(err).Msg("discarding invalid session token")
				s.ClearSessionCookie(w, r)
			}
			sess = decoded
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, sess)
		next(w, r.WithContext(ctx))
	}
}

// GuardMiddleware applies the redirect policy to page routes.
func (s *Server) GuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if decision := guard.Decide(sess.Status, r.URL.Path); decision.Redirect {
			http.Redirect(w, r, decision.Location, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// SessionFromContext returns the session placed by SessionMiddleware. An
// absent value means Anonymous.
func SessionFromContext(ctx context.Context) session.Session {
	if sess, ok := ctx.Value(ContextKeySession).(session.Session); ok {
		return sess
	}
	return session.Session{Status: session.Anonymous}
}
