package server

import (
	"errors"
	"net/http"

	"github.com/accountportal/go-account-portal/apiclient"
	"github.com/accountportal/go-account-portal/session"
	"github.com/accountportal/go-account-portal/validation"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName       string
	Error         string
	Message       string
	Username      string // Preserve username on error
	FieldErrors   validation.FieldErrors
	GoogleEnabled bool
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:       s.config.GetAppName(),
			Error:         r.URL.Query().Get("error"),
			Message:       r.URL.Query().Get("message"),
			Username:      r.URL.Query().Get("username"),
			GoogleEnabled: s.config.GoogleEnabled(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			s.log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	renderError := func(w http.ResponseWriter, data LoginPageData, status int) {
		data.AppName = s.config.GetAppName()
		w.Header().Set("Content-Type", contentTypeHTML)
		w.WriteHeader(status)
		_ = loginTmpl.Execute(w, data)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// A browser that already holds a session just goes to the
		// landing page.
		if SessionFromContext(r.Context()).Authenticated() {
			redirectSuccess(w, r, RoutePortfolio)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		form := validation.LoginForm{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}

		creds, fieldErrs := form.Validate()
		if fieldErrs != nil {
			renderError(w, LoginPageData{
				Username:      form.Username,
				FieldErrors:   fieldErrs,
				GoogleEnabled: s.config.GoogleEnabled(),
			}, http.StatusBadRequest)
			return
		}

		store := session.NewStore(s.client, s.log)
		sess, err := store.BeginLogin(r.Context(), session.Credentials{
			Username: creds.Username,
			Password: creds.Password,
		})
		if err != nil {
			renderError(w, LoginPageData{
				Username:      form.Username,
				Error:         loginErrorMessage(err),
				GoogleEnabled: s.config.GoogleEnabled(),
			}, http.StatusUnauthorized)
			return
		}

		if err := s.SetSessionCookie(w, r, sess); err != nil {
			s.log.Err(err).Msg("Failed to issue session token")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		redirectSuccess(w, r, RoutePortfolio)
	}
}

// loginErrorMessage maps a credential-exchange failure onto what the
// login page displays.
func loginErrorMessage(err error) string {
	if errors.Is(err, session.ErrMalformedLoginResponse) {
		return "Invalid username or password"
	}

	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Login failed, please try again"
}

// LogoutHandler ends the session. The remote logout is best effort; the
// cookie is cleared even when the remote call fails, and the failure is
// shown on the login page.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := s.restoreStore(r)

		err := store.Logout(r.Context())
		s.ClearSessionCookie(w, r)

		if err != nil {
			redirectWithError(w, r, RouteLogin, "Signed out locally, but the server-side logout failed")
			return
		}
		redirectSuccess(w, r, RouteLogin)
	}
}
