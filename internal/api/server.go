// Package api exposes the MVI workflow over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/bilal-bim/devbrain-ai/internal/agents"
	"github.com/bilal-bim/devbrain-ai/internal/linear"
	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
)

const Version = "1.0.0"

// Notifier is told about sessions that produced their MVI package
type Notifier interface {
	NotifyComplete(ctx context.Context, project *models.Project) error
}

// LinearClient creates issues and lists teams in Linear
type LinearClient interface {
	linear.IssueCreator
	Teams(ctx context.Context) ([]linear.Team, error)
}

// Options wires the server's collaborators. Notifier, Linear, Lister and
// StoreCheck are optional.
type Options struct {
	Generator  *mvi.Generator
	Advisor    *agents.Advisor
	Lister     mvi.SessionLister
	Notifier   Notifier
	Linear     LinearClient
	Origins    []string
	StoreName  string
	StoreCheck func(ctx context.Context) error
}

// Server wraps the HTTP handlers for the MVI API
type Server struct {
	generator  *mvi.Generator
	advisor    *agents.Advisor
	lister     mvi.SessionLister
	notifier   Notifier
	linear     LinearClient
	origins    []string
	storeName  string
	storeCheck func(ctx context.Context) error
}

func New(opts Options) *Server {
	advisor := opts.Advisor
	if advisor == nil {
		advisor = agents.NewAdvisor(nil, "", 0)
	}
	return &Server{
		generator:  opts.Generator,
		advisor:    advisor,
		lister:     opts.Lister,
		notifier:   opts.Notifier,
		linear:     opts.Linear,
		origins:    opts.Origins,
		storeName:  opts.StoreName,
		storeCheck: opts.StoreCheck,
	}
}

// Register wires the API routes onto the supplied mux
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/mvi/start", s.handleStart)
	mux.HandleFunc("POST /api/mvi/continue", s.handleContinue)
	mux.HandleFunc("POST /api/mvi/export", s.handleExport)
	mux.HandleFunc("GET /api/mvi/download/{sessionId}/{format}", s.handleDownload)
	mux.HandleFunc("GET /api/mvi/session/{sessionId}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/mvi/session/{sessionId}", s.handleDeleteSession)
	mux.HandleFunc("GET /api/mvi/sessions", s.handleListSessions)
	mux.HandleFunc("POST /api/mvi/linear", s.handleLinearSync)
	mux.HandleFunc("GET /api/linear/teams", s.handleLinearTeams)

	mux.HandleFunc("GET /api/library/features", s.handleLibraryFeatures)
	mux.HandleFunc("GET /api/library/pack/{packId}", s.handleLibraryPack)
	mux.HandleFunc("POST /api/library/add-to-project", s.handleAddToProject)

	mux.HandleFunc("POST /api/ai/chat", s.handleChat)
	mux.HandleFunc("GET /api/health", s.handleHealth)
}

// Handler returns the routes wrapped in CORS and request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return withLogging(withCORS(s.origins, mux))
}

func withCORS(origins []string, next http.Handler) http.Handler {
	allowAll := slices.Contains(origins, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimRight(r.Header.Get("Origin"), "/")
		if origin != "" && (allowAll || slices.Contains(origins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeErrorString(w, status, err.Error())
}

func writeErrorString(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

// writeLookupError maps a repository error onto 404 or 500
func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, mvi.ErrSessionNotFound) {
		writeErrorString(w, http.StatusNotFound, "Session not found")
		return
	}
	log.Printf("❌ Session lookup failed: %v", err)
	writeErrorString(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	return json.NewDecoder(io.LimitReader(body, 1<<20)).Decode(dest)
}
