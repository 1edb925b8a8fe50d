package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"booksearch/internal/logger"
	"booksearch/internal/middleware"
	"booksearch/internal/query"
	"booksearch/internal/render"
	"booksearch/internal/search"
	"booksearch/internal/view"
)

// Submitter accepts form submissions (search.Controller).
type Submitter interface {
	SubmitQuery(ctx context.Context, rawInput string)
}

type Server struct {
	Log        *logrus.Logger
	Controller Submitter
	Page       *view.Page
	HTML       *render.HTML
}

// Routes returns the adapter's handler with logging, CORS and metrics applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.Index)
	mux.HandleFunc("POST /search", s.Search)
	mux.HandleFunc("GET /search", s.Search)
	mux.HandleFunc("GET /api/state", s.State)
	mux.HandleFunc("GET /healthz", s.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Chain(mux, middleware.RequestLogger(s.Log), middleware.CORS, middleware.Metrics)
}

// GET /
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	vs, q := s.Page.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.HTML.Page(w, vs, q); err != nil {
		logger.For(r.Context()).WithError(err).Error("page.render.failed")
	}
}

// POST /search (form field q), GET /search?q=
// Blank input changes nothing; both cases land back on the page.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid form body", err.Error())
		return
	}
	raw := r.Form.Get("q")
	if q, ok := query.Normalize(raw); ok {
		s.Page.SetQuery(q)
		s.Controller.SubmitQuery(r.Context(), q)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type stateResponse struct {
	Query string `json:"query"`
	search.ViewState
}

// GET /api/state
func (s *Server) State(w http.ResponseWriter, r *http.Request) {
	vs, q := s.Page.Snapshot()
	writeJSON(w, http.StatusOK, stateResponse{Query: q, ViewState: vs})
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ErrorEnvelope is the body of every JSON error.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, ErrorEnvelope{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
