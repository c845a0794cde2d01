// Package api exposes the progression core over HTTP: the learning path
// view, result submission, single-unit progress, and a websocket stream of
// staleness events.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sinavyolu/lgs-backend/internal/auth"
	"github.com/sinavyolu/lgs-backend/internal/catalog"
	"github.com/sinavyolu/lgs-backend/internal/notify"
	"github.com/sinavyolu/lgs-backend/internal/profile"
	"github.com/sinavyolu/lgs-backend/internal/progression"
)

// IdentityResolver turns a request credential into a user ID.
type IdentityResolver interface {
	Resolve(ctx context.Context, apiKey string) (string, error)
}

// ServerConfig holds dependencies for the API server.
type ServerConfig struct {
	Catalog  *catalog.Catalog
	Service  *progression.Service
	Profiles profile.Store
	Resolver IdentityResolver
	Hub      *notify.Hub
}

// Server handles the UI-facing API.
type Server struct {
	catalog  *catalog.Catalog
	service  *progression.Service
	profiles profile.Store
	resolver IdentityResolver
	hub      *notify.Hub
}

// NewServer creates an API server.
func NewServer(cfg ServerConfig) *Server {
	return &Server{
		catalog:  cfg.Catalog,
		service:  cfg.Service,
		profiles: cfg.Profiles,
		resolver: cfg.Resolver,
		hub:      cfg.Hub,
	}
}

// Routes registers all API routes on a new mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/path", s.handlePath)
	mux.HandleFunc("POST /api/results", s.handleSubmitResult)
	mux.HandleFunc("GET /api/progress/{unitID}", s.handleUnitProgress)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	return mux
}

// authenticate resolves the Bearer credential on the request.
func (s *Server) authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	key, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || key == "" {
		return "", auth.ErrNotAuthenticated
	}
	return s.resolver.Resolve(r.Context(), key)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the core error taxonomy onto HTTP statuses: missing
// identity is 401, bad input is 400, everything else (storage and friends)
// surfaces as 500 and the UI offers a retry.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, progression.ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	case errors.Is(err, progression.ErrInvalidTier):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
