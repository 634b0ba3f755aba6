// Package api exposes the HTTP surface: account and project management
// plus the websocket entry point that hands authorized connections to
// the collaboration hub.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/codecollab/editor-server/internal/acl"
	"github.com/codecollab/editor-server/internal/auth"
	"github.com/codecollab/editor-server/internal/projects"
	"github.com/codecollab/editor-server/internal/users"
	"github.com/codecollab/editor-server/internal/ws"
)

// Server handles HTTP requests for the collaboration API.
type Server struct {
	users    users.Store
	projects projects.Store
	access   acl.Store
	checker  *acl.Checker
	tokens   *auth.TokenStore
	hub      ws.Hub

	pingInterval  time.Duration
	clientTimeout time.Duration

	upgrader websocket.Upgrader
}

// Config holds the collaborators a server needs.
type Config struct {
	Users    users.Store
	Projects projects.Store
	Access   acl.Store
	Tokens   *auth.TokenStore
	Hub      ws.Hub

	AllowedOrigins []string
	PingInterval   time.Duration
	ClientTimeout  time.Duration
}

// NewServer creates a new API server.
func NewServer(cfg Config) *Server {
	return &Server{
		users:         cfg.Users,
		projects:      cfg.Projects,
		access:        cfg.Access,
		checker:       acl.NewChecker(cfg.Access),
		tokens:        cfg.Tokens,
		hub:           cfg.Hub,
		pingInterval:  cfg.PingInterval,
		clientTimeout: cfg.ClientTimeout,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(cfg.AllowedOrigins),
		},
	}
}

// Handler returns an http.Handler with all routes configured.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)

	mux.Handle("/logout", s.authMiddleware(http.HandlerFunc(s.handleLogout)))
	mux.Handle("/projects", s.authMiddleware(http.HandlerFunc(s.handleProjects)))
	mux.Handle("/projects/", s.authMiddleware(http.HandlerFunc(s.handleProjectByID)))

	mux.Handle("/ws", s.authMiddleware(http.HandlerFunc(s.handleWebSocket)))

	return mux
}

// originChecker allows requests without an Origin header (non-browser
// clients) and browser requests from a configured origin. "*" opens the
// endpoint to every origin.
func originChecker(allowed []string) func(*http.Request) bool {
	allowAll := false
	origins := make(map[string]struct{}, len(allowed))

	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
		}

		origins[origin] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}

		_, ok := origins[origin]

		return ok
	}
}
