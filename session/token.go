package session

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the claim set of the persisted session token. The
// browser stores the signed token in an HttpOnly cookie and resubmits it
// on every request; the in-memory session is rebuilt from these claims.
type tokenClaims struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	DisplayName  string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	jwtlib.RegisteredClaims
}

// EncodeToken signs an Authenticated session into a compact JWT valid for
// ttl.
func EncodeToken(sess Session, secret []byte, ttl time.Duration) (string, error) {
	if !sess.Authenticated() {
		return "", errors.New("[EncodeToken] only authenticated sessions can be persisted")
	}

	now := time.Now()
	claims := tokenClaims{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		DisplayName:  sess.Subject.DisplayName,
		Email:        sess.Subject.Email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   sess.Subject.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("[EncodeToken] failed to sign session token: %w", err)
	}
	return signed, nil
}

// DecodeToken verifies a persisted session token and rebuilds the
// session. Any invalid, expired or token-less input yields an Anonymous
// session together with the verification error.
func DecodeToken(tokenString string, secret []byte) (Session, error) {
	anonymous := Session{Status: Anonymous}

	if tokenString == "" {
		return anonymous, errors.New("empty session token")
	}

	var claims tokenClaims
	token, err := jwtlib.ParseWithClaims(tokenString, &claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("invalid session token")
		}
		return anonymous, fmt.Errorf("[DecodeToken] %w", err)
	}

	if claims.AccessToken == "" {
		return anonymous, errors.New("[DecodeToken] session token missing access token claim")
	}

	return Session{
		Status:       Authenticated,
		AccessToken:  claims.AccessToken,
		RefreshToken: claims.RefreshToken,
		Subject: Subject{
			ID:          claims.Subject,
			DisplayName: claims.DisplayName,
			Email:       claims.Email,
		},
	}, nil
}
