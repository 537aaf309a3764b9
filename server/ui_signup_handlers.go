package server

import (
	"errors"
	"net/http"

	"github.com/accountportal/go-account-portal/apiclient"
	"github.com/accountportal/go-account-portal/validation"
)

// SignupPageData contains data for rendering the signup page
type SignupPageData struct {
	AppName     string
	Error       string
	FieldErrors validation.FieldErrors
	Form        validation.SignupForm // Preserve input on error
}

// SignupPageHandler renders the signup page
func (s *Server) SignupPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("signup.html")
	if err != nil {
		panic("Failed to parse signup template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := SignupPageData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// SignupSubmissionHandler handles registration form submission
func (s *Server) SignupSubmissionHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("signup.html")
	if err != nil {
		panic("Failed to parse signup template: " + err.Error())
	}

	renderError := func(w http.ResponseWriter, data SignupPageData, status int) {
		data.AppName = s.config.GetAppName()
		w.Header().Set("Content-Type", contentTypeHTML)
		w.WriteHeader(status)
		_ = tmpl.Execute(w, data)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		form := validation.SignupForm{
			Username:        r.FormValue("username"),
			Email:           r.FormValue("email"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirmPassword"),
			Phone:           r.FormValue("phone"),
		}

		// Field errors block submission; nothing reaches the network.
		data, fieldErrs := form.Validate()
		if fieldErrs != nil {
			renderError(w, SignupPageData{FieldErrors: fieldErrs, Form: form}, http.StatusBadRequest)
			return
		}

		_, err := apiclient.Call[apiclient.RegisteredUser](r.Context(), s.client, apiclient.OpRegister, apiclient.Options{
			Body: apiclient.RegisterRequest{
				Username:        data.Username,
				Email:           data.Email,
				Password:        data.Password,
				ConfirmPassword: data.ConfirmPassword,
				Phone:           data.Phone,
			},
		})
		if err != nil {
			message := "Registration failed, please try again"
			var apiErr *apiclient.Error
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				message = apiErr.Message
			}
			renderError(w, SignupPageData{Error: message, Form: form}, http.StatusBadRequest)
			return
		}

		redirectSuccess(w, r, RouteLogin+"?message=Account+created,+please+sign+in")
	}
}

// ForgotPasswordPageHandler renders the forgot-password page
func (s *Server) ForgotPasswordPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("forget_pwd.html")
	if err != nil {
		panic("Failed to parse forgot password template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := SignupPageData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// ForgotPasswordSubmissionHandler handles forgot password submissions
// (stub: the remote API exposes no reset operation yet)
func (s *Server) ForgotPasswordSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectWithError(w, r, RouteLogin, "Password reset not yet available")
	}
}
