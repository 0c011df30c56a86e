package devserver

import (
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/epicabdou/hse-inspector/internal/hazard"
)

// Server is an in-memory stand-in for the remote hazard service. It
// implements the same four endpoints the real service exposes, so the
// client, CLI and integration tests can run without network access.
type Server struct {
	token          string
	maxUploadBytes int64

	mu          sync.RWMutex
	uploads     map[string][]byte
	inspections map[string]*hazard.Inspection
	order       []string
}

// New builds a server that accepts the given bearer token. An empty
// token accepts any non-empty bearer. maxUploadBytes bounds decoded
// upload size; larger payloads get a 413.
func New(token string, maxUploadBytes int64) *Server {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 4_000_000
	}
	return &Server{
		token:          token,
		maxUploadBytes: maxUploadBytes,
		uploads:        make(map[string][]byte),
		inspections:    make(map[string]*hazard.Inspection),
	}
}

// Router wires the service routes behind auth.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/api/uploads/base64", s.handleUpload)
		r.Post("/api/inspections/analyze", s.handleAnalyze)
		r.Get("/api/inspections/list", s.handleList)
		r.Get("/api/inspections/{id}", s.handleGet)
	})

	return r
}

// requireAuth rejects requests without a valid bearer token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if auth == "" || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if s.token != "" && token != s.token {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
