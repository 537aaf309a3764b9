package server

import (
	"errors"
	"net/http"

	"github.com/accountportal/go-account-portal/apiclient"
	"github.com/accountportal/go-account-portal/profile"
	"github.com/accountportal/go-account-portal/validation"
)

// PortfolioPageData contains data for rendering the user portfolio page
type PortfolioPageData struct {
	AppName     string
	DisplayName string
	Profile     profile.UserProfile
	Error       string
	Message     string
	FieldErrors validation.FieldErrors
}

// PortfolioHandler renders the profile page. The profile is fetched per
// page load, never cached across requests.
func (s *Server) PortfolioHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("portfolio.html")
	if err != nil {
		panic("Failed to parse portfolio template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if !sess.Authenticated() {
			redirectSuccess(w, r, RouteLogin)
			return
		}

		prof, err := s.profiles.Get(r.Context(), sess.AccessToken)
		if err != nil {
			if s.handleExpiredSession(w, r, err) {
				return
			}
			s.log.Err(err).Msg("Failed to fetch profile")
			prof = profile.UserProfile{}
		}

		data := PortfolioPageData{
			AppName:     s.config.GetAppName(),
			DisplayName: sess.Subject.DisplayName,
			Profile:     prof,
			Error:       r.URL.Query().Get("error"),
			Message:     r.URL.Query().Get("message"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// ProfileUpdateHandler processes the profile edit form
func (s *Server) ProfileUpdateHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("portfolio.html")
	if err != nil {
		panic("Failed to parse portfolio template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if !sess.Authenticated() {
			redirectSuccess(w, r, RouteLogin)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		form := validation.UpdateProfileForm{
			Username: r.FormValue("username"),
			Phone:    r.FormValue("phone"),
		}

		update, fieldErrs := form.Validate()
		if fieldErrs != nil {
			// Re-render with the current profile so the page stays
			// complete.
			prof, profErr := s.profiles.Get(r.Context(), sess.AccessToken)
			if profErr != nil && s.handleExpiredSession(w, r, profErr) {
				return
			}
			data := PortfolioPageData{
				AppName:     s.config.GetAppName(),
				DisplayName: sess.Subject.DisplayName,
				Profile:     prof,
				FieldErrors: fieldErrs,
			}
			w.Header().Set("Content-Type", contentTypeHTML)
			w.WriteHeader(http.StatusBadRequest)
			_ = tmpl.Execute(w, data)
			return
		}

		_, err := s.profiles.Update(r.Context(), sess.AccessToken, profile.UpdateRequest{
			Username: update.Username,
			Phone:    update.Phone,
		})
		if err != nil {
			if s.handleExpiredSession(w, r, err) {
				return
			}
			message := "Profile update failed"
			var apiErr *apiclient.Error
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				message = apiErr.Message
			}
			redirectWithError(w, r, RoutePortfolio, message)
			return
		}

		redirectSuccess(w, r, RoutePortfolio+"?message=Profile+updated")
	}
}

// handleExpiredSession checks whether err is the remote API rejecting the
// bearer token. A 401 is an implicit Authenticated → Anonymous
// transition: the local session is invalidated, the cookie cleared and
// the browser sent back to the login page.
func (s *Server) handleExpiredSession(w http.ResponseWriter, r *http.Request, err error) bool {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		return false
	}

	store := s.restoreStore(r)
	store.Invalidate()
	s.ClearSessionCookie(w, r)
	redirectWithError(w, r, RouteLogin, "Session expired, please sign in again")
	return true
}
