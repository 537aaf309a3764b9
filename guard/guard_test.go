package guard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountportal/go-account-portal/guard"
	"github.com/accountportal/go-account-portal/session"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		status session.Status
		path   string
		want   guard.Decision
	}{
		{"anonymous on login page stays", session.Anonymous, "/login", guard.None},
		{"anonymous on signup page stays", session.Anonymous, "/signup", guard.None},
		{"anonymous on index stays", session.Anonymous, "/", guard.None},
		{"anonymous on protected page redirects to login", session.Anonymous, "/user-portfolio", guard.Decision{Redirect: true, Location: guard.RouteLogin}},
		{"anonymous on protected subpage redirects to login", session.Anonymous, "/user-portfolio/update", guard.Decision{Redirect: true, Location: guard.RouteLogin}},
		{"authenticated on login page redirects to landing", session.Authenticated, "/login", guard.Decision{Redirect: true, Location: guard.RouteLanding}},
		{"authenticated on signup page redirects to landing", session.Authenticated, "/signup", guard.Decision{Redirect: true, Location: guard.RouteLanding}},
		{"authenticated on forgot-password page redirects to landing", session.Authenticated, "/forget-pwd", guard.Decision{Redirect: true, Location: guard.RouteLanding}},
		{"authenticated on protected page stays", session.Authenticated, "/user-portfolio", guard.None},
		{"authenticated on index stays", session.Authenticated, "/", guard.None},
		{"authenticating makes no decision on protected page", session.Authenticating, "/user-portfolio", guard.None},
		{"authenticating makes no decision on login page", session.Authenticating, "/login", guard.None},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, guard.Decide(tc.status, tc.path))
		})
	}
}
