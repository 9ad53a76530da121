// Save as: internal/server/server.go
package server

import (
	"log"
	"net/http"
	"time"

	"newswire/internal/database"
)

// Server exposes the read API over the article store.
type Server struct {
	db     *database.DB
	logger *log.Logger
	mux    *http.ServeMux
}

func NewServer(db *database.DB, logger *log.Logger) *Server {
	s := &Server{
		db:     db,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/articles", s.handleListArticles)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.serverError(w, "database unreachable")
		return
	}
	s.success(w, nil, "ok")
}
