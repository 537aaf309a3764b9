package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Pages
	RouteIndex          = "/"
	RouteLogin          = "/login"
	RouteSignup         = "/signup"
	RouteForgotPassword = "/forget-pwd"
	RoutePortfolio      = "/user-portfolio"

	// Form submission routes
	RouteAuthLogin          = "/auth/login"
	RouteAuthSignup         = "/auth/signup"
	RouteAuthLogout         = "/auth/logout"
	RouteAuthForgotPassword = "/auth/forgot-password"
	RouteProfileUpdate      = "/user-portfolio/update"

	// Google sign-in
	RouteGoogleLogin = "/auth/google"
	RouteCallback    = "/callback"
)
