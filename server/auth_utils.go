package server

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/accountportal/go-account-portal/session"
)

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// SetSessionCookie persists an authenticated session as a signed token in
// an HttpOnly cookie. The store never touches this storage itself; it is
// rebuilt from the decoded claims on the next request.
func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, sess session.Session) error {
	maxAge := s.config.GetSessionMaxAge()

	token, err := session.EncodeToken(sess, s.config.GetSessionSecret(), maxAge)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(maxAge.Seconds()),
	})
	return nil
}

// ClearSessionCookie deletes the session cookie.
func (s *Server) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// restoreStore builds a session store seeded from the request's session.
func (s *Server) restoreStore(r *http.Request) *session.Store {
	return session.Restore(s.client, s.log, SessionFromContext(r.Context()))
}

// redirectSuccess sends a plain see-other redirect.
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError redirects to path with the error message as a query
// parameter for the target page to display.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(errorMsg), http.StatusSeeOther)
}
