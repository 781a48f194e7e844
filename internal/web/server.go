// Package web implements the HTTP surface of the to-do app.
//
// Three routes: GET / renders the page, POST /add appends the submitted task
// and redirects back, GET /tasks returns the list as a JSON array of strings.
package web

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"todoweb/internal/store"
)

//go:embed index.html.tmpl
var indexSource string

var indexTmpl = template.Must(template.New("index").Parse(indexSource))

// Server routes requests to the injected store.
type Server struct {
	store store.Store
	log   *slog.Logger
	mux   *http.ServeMux
}

// New creates a Server backed by st. The logger receives one line per request.
func New(st store.Store, logger *slog.Logger) *Server {
	s := &Server{
		store: st,
		log:   logger,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /add", s.handleAdd)
	s.mux.HandleFunc("GET /tasks", s.handleTasks)
	return s
}

// ServeHTTP implements http.Handler with access logging around the mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logRequest(s.log, w, r, s.mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list tasks", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, struct{ Tasks []string }{Tasks: tasks}); err != nil {
		s.log.Error("render page", "error", err)
	}
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	// No validation and no size bound: whatever is in the task field is
	// appended, including the empty string when the field is missing.
	text := r.FormValue("task")
	if err := s.store.Add(r.Context(), text); err != nil {
		s.log.Error("add task", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list tasks", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if tasks == nil {
		tasks = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tasks); err != nil {
		s.log.Error("encode tasks", "error", err)
	}
}
