package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"github.com/authgate/authgate"
)

// Server defines a public type used by authgate APIs.
//
// Server instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Server struct {
	engine *authgate.Engine
	logger *slog.Logger

	cookieName   string
	cookieMaxAge int
}

// NewServer wires the engine to the HTTP edge. The session cookie name
// must match the route gate's; it defaults to "auth_token" with a 1h
// lifetime matching the token TTL.
func NewServer(engine *authgate.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:       engine,
		logger:       logger,
		cookieName:   "auth_token",
		cookieMaxAge: 3600,
	}
}

// Routes returns a mux with every auth endpoint registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/verify", s.handleVerify)
	mux.HandleFunc("POST /api/auth/forgot-password", s.handleForgotPassword)
	mux.HandleFunc("POST /api/auth/verify-reset-code", s.handleVerifyResetCode)
	mux.HandleFunc("POST /api/auth/reset-password", s.handleResetPassword)
	mux.HandleFunc("GET /api/me", s.handleMe)
	return mux
}

// requestContext attaches the caller's IP for audit events.
func requestContext(r *http.Request) context.Context {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return authgate.WithClientIP(r.Context(), ip)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(r *http.Request, into any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(into)
}
