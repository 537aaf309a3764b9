package config

import (
	"strconv"
	"time"
)

type SessionConfig interface {
	GetSessionSecret() []byte
	GetSessionMaxAge() time.Duration
	GetSessionCookieName() string
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionSecret returns the HMAC key for the session token. The
// default only exists so a dev instance starts without a .env file.
func (Session) GetSessionSecret() []byte {
	return []byte(GetEnv("SESSION_SECRET", "dev-session-secret-change-me"))
}

func (Session) GetSessionMaxAge() time.Duration {
	raw := GetEnv("SESSION_MAX_AGE", "")
	if raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return 24 * time.Hour
}

func (Session) GetSessionCookieName() string {
	return "portal_session"
}
