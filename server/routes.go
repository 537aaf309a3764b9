package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// PAGES (guarded: authenticated users bounce off public-only pages,
	// anonymous users bounce off protected ones)
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare(s.GuardMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteSignup, ChainMiddleware(s.SignupPageHandler(), s.HTMLMiddleWare(s.GuardMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordPageHandler(), s.HTMLMiddleWare(s.GuardMiddleware)...))
	s.RegisterRouteHandler("GET "+RoutePortfolio, ChainMiddleware(s.PortfolioHandler(), s.HTMLMiddleWare(s.GuardMiddleware)...))

	// FORM SUBMISSIONS
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare(s.CorsMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthSignup, ChainMiddleware(s.SignupSubmissionHandler(), s.HTMLMiddleWare(s.CorsMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthForgotPassword, ChainMiddleware(s.ForgotPasswordSubmissionHandler(), s.HTMLMiddleWare(s.CorsMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteProfileUpdate, ChainMiddleware(s.ProfileUpdateHandler(), s.HTMLMiddleWare(s.CorsMiddleware)...))

	// GOOGLE SIGN-IN (alternate credential exchange, same session
	// transitions)
	s.RegisterRouteHandler("GET "+RouteGoogleLogin, ChainMiddleware(s.GoogleLoginHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.GoogleCallbackHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteCallback, ChainMiddleware(s.GoogleCallbackHandler(), s.HTMLMiddleWare()...)) // For form_post response mode
}
