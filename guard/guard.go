// Package guard decides navigation redirects from session state and the
// current path. The policy is pure so it can be exercised without any
// HTTP machinery.
package guard

import (
	"strings"

	"github.com/accountportal/go-account-portal/session"
)

const (
	// RouteLogin is where anonymous visitors of protected pages land.
	RouteLogin = "/login"
	// RouteLanding is where authenticated visitors of public-only pages
	// land.
	RouteLanding = "/user-portfolio"
)

// Public-only paths bounce authenticated users; protected paths bounce
// anonymous users. Matching is by prefix, like the original navigation
// wrapper.
var (
	publicOnlyPaths = []string{"/login", "/signup", "/forget-pwd"}
	protectedPaths  = []string{"/user-portfolio"}
)

// Decision is the outcome of a guard check.
type Decision struct {
	Redirect bool
	Location string
}

// None is the no-action decision.
var None = Decision{}

// Decide classifies path against status. While a credential exchange is
// in flight no decision is made, so the page never flickers between
// redirects.
func Decide(status session.Status, path string) Decision {
	if status == session.Authenticating {
		return None
	}

	if status == session.Authenticated && hasPrefixAny(path, publicOnlyPaths) {
		return Decision{Redirect: true, Location: RouteLanding}
	}
	if status == session.Anonymous && hasPrefixAny(path, protectedPaths) {
		return Decision{Redirect: true, Location: RouteLogin}
	}
	return None
}

func hasPrefixAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
