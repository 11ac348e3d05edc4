package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/oleastore/go-admin-console/apiclient"
	"github.com/oleastore/go-admin-console/internal/config"
	"github.com/oleastore/go-admin-console/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Server is the admin console gateway. It holds the operator's session and
// forwards admin resource calls to the store backend through the api client.
type Server struct {
	env     string // Environment (e.g., "DEV", "production")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	session *session.Manager
	api     *apiclient.Client
	log     zerolog.Logger
}

type ServerOption func(*Server)

func WithLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.log = logger
	}
}

func New(cfg config.Config, sessionManager *session.Manager, api *apiclient.Client, options ...ServerOption) (*Server, error) {
	if sessionManager == nil {
		return nil, errors.New("[Server New] session manager is required")
	}
	if api == nil {
		return nil, errors.New("[Server New] api client is required")
	}

	s := &Server{
		mux:     http.NewServeMux(),
		config:  cfg,
		session: sessionManager,
		api:     api,
		log:     zerolog.Nop(),
	}
	s.env = cfg.GetEnv()

	for _, option := range options {
		option(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
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
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
