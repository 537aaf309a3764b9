package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/accountportal/go-account-portal/server/authflowrepo"
	"github.com/accountportal/go-account-portal/session"
)

// getGoogleOidcConfig discovers the Google provider once and caches it.
func (s *Server) getGoogleOidcConfig(ctx context.Context) (*OidcConfig, error) {
	s.googleOidcLock.RLock()
	cached := s.googleOidc
	s.googleOidcLock.RUnlock()
	if cached != nil {
		return cached, nil
	}

	provider, err := oidc.NewProvider(ctx, s.config.GetGoogleIssuer())
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	oidcConfig := &OidcConfig{
		OidcProvider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     s.config.GetGoogleClientID(),
			ClientSecret: s.config.GetGoogleClientSecret(),
			Endpoint:     provider.Endpoint(),
			RedirectURL:  s.config.GetBaseURL() + RouteCallback,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		OidcVerifier: provider.Verifier(&oidc.Config{
			ClientID: s.config.GetGoogleClientID(),
		}),
	}

	s.googleOidcLock.Lock()
	s.googleOidc = oidcConfig
	s.googleOidcLock.Unlock()

	return oidcConfig, nil
}

// GoogleLoginHandler starts the Google sign-in flow: an alternate
// credential exchange that ends in the same session transitions as the
// password login.
func (s *Server) GoogleLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.config.GoogleEnabled() {
			redirectWithError(w, r, RouteLogin, "Google sign-in is not configured")
			return
		}

		oidcConfig, err := s.getGoogleOidcConfig(r.Context())
		if err != nil {
			s.log.Err(err).Msg("Google provider discovery failed")
			redirectWithError(w, r, RouteLogin, "Google sign-in is unavailable")
			return
		}

		state := uuid.NewString()
		nonce := generateRandomString(32)
		verifier := oauth2.GenerateVerifier()

		if err := s.flows.Upsert(state, &authflowrepo.AuthFlowState{
			CodeVerifier: verifier,
			Nonce:        nonce,
			ReturnURL:    RoutePortfolio,
			CreatedAt:    time.Now(),
		}); err != nil {
			s.log.Err(err).Msg("Failed to store auth flow state")
			redirectWithError(w, r, RouteLogin, "Google sign-in is unavailable")
			return
		}

		authURL := oidcConfig.OAuth2Config.AuthCodeURL(state,
			oidc.Nonce(nonce),
			oauth2.S256ChallengeOption(verifier),
		)
		http.Redirect(w, r, authURL, http.StatusSeeOther)
	}
}

// GoogleCallbackHandler completes the Google sign-in flow.
func (s *Server) GoogleCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Parse form to support both GET (query params) and POST (form_post response mode)
		// r.FormValue works for both query params and POST form data
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")

		// Check for authorization errors
		if errorParam != "" {
			redirectWithError(w, r, RouteLogin, "Google sign-in was cancelled")
			return
		}

		if code == "" || state == "" {
			http.Error(w, "Missing code or state parameter", http.StatusBadRequest)
			return
		}

		authState, err := s.flows.Get(state)
		if err != nil || authState == nil {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		// Clean up state after use
		if err := s.flows.Delete(state); err != nil {
			http.Error(w, "Invalid state parameter", http.StatusInternalServerError)
			return
		}

		oidcConfig, err := s.getGoogleOidcConfig(r.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get OIDC config: %v", err), http.StatusInternalServerError)
			return
		}

		// Exchange authorization code for tokens using standard oauth2 library
		oauth2Token, err := oidcConfig.OAuth2Config.Exchange(
			r.Context(),
			code,
			oauth2.VerifierOption(authState.CodeVerifier),
		)
		if err != nil {
			redirectWithError(w, r, RouteLogin, "Google sign-in failed")
			return
		}

		// Extract ID token and verify it
		rawIDToken, ok := oauth2Token.Extra("id_token").(string)
		if !ok {
			http.Error(w, "No ID token in response", http.StatusInternalServerError)
			return
		}

		idToken, err := oidcConfig.OidcVerifier.Verify(r.Context(), rawIDToken)
		if err != nil {
			http.Error(w, fmt.Sprintf("ID token verification failed: %v", err), http.StatusInternalServerError)
			return
		}

		// Extract and validate claims in one pass
		var claims struct {
			Nonce string `json:"nonce"`
			Sub   string `json:"sub"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := idToken.Claims(&claims); err != nil {
			http.Error(w, fmt.Sprintf("Failed to extract claims: %v", err), http.StatusInternalServerError)
			return
		}

		// Validate nonce to prevent replay attacks
		if claims.Nonce != authState.Nonce {
			http.Error(w, "Invalid nonce", http.StatusUnauthorized)
			return
		}

		// Feed the verified exchange into the session state machine.
		store := session.NewStore(s.client, s.log)
		sess, err := store.CompleteExternalLogin(oauth2Token.AccessToken, oauth2Token.RefreshToken, session.Subject{
			ID:          claims.Sub,
			DisplayName: claims.Name,
			Email:       claims.Email,
		})
		if err != nil {
			redirectWithError(w, r, RouteLogin, "Google sign-in failed")
			return
		}

		if err := s.SetSessionCookie(w, r, sess); err != nil {
			s.log.Err(err).Msg("Failed to issue session token")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		returnURL := authState.ReturnURL
		if returnURL == "" || returnURL == "/" {
			returnURL = RoutePortfolio
		}
		redirectSuccess(w, r, returnURL)
	}
}
