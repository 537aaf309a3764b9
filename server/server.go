package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/accountportal/go-account-portal/apiclient"
	"github.com/accountportal/go-account-portal/internal/config"
	"github.com/accountportal/go-account-portal/profile"
	"github.com/accountportal/go-account-portal/server/authflowrepo"
)

// OidcConfig bundles the discovered Google provider with its OAuth2
// client configuration.
type OidcConfig struct {
	OidcProvider *oidc.Provider
	OAuth2Config *oauth2.Config
	OidcVerifier *oidc.IDTokenVerifier
}

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	client   *apiclient.Client
	profiles *profile.Service
	flows    authflowrepo.Repo
	log      zerolog.Logger

	googleOidc     *OidcConfig
	googleOidcLock sync.RWMutex
}

func New(cfg config.Config, flowRepo authflowrepo.Repo) (*Server, error) {
	if cfg.GetAPIBaseURL() == "" {
		return nil, fmt.Errorf("[Server New] API base URL is required")
	}

	logger := log.With().Str("component", "server").Logger()
	client := apiclient.New(cfg.GetAPIBaseURL()+"/api", logger)

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		client:   client,
		profiles: profile.NewService(client),
		flows:    flowRepo,
		log:      logger,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

// Client exposes the dispatcher, mainly for tests.
func (s *Server) Client() *apiclient.Client {
	return s.client
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	fmt.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
