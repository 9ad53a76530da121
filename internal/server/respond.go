// Save as: internal/server/respond.go
package server

import (
	"encoding/json"
	"net/http"

	"newswire/internal/database"
)

// envelope is the uniform response wrapper for every API reply.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Meta    *paginationMeta     `json:"meta,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// paginationMeta mirrors the store's pagination block. From and To are
// pointers so an empty page serializes them as null instead of 0.
type paginationMeta struct {
	CurrentPage int  `json:"current_page"`
	LastPage    int  `json:"last_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	From        *int `json:"from"`
	To          *int `json:"to"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Printf("Error writing response: %v", err)
	}
}

func (s *Server) success(w http.ResponseWriter, data any, message string) {
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func (s *Server) paginated(w http.ResponseWriter, data any, p database.Pagination, message string) {
	meta := &paginationMeta{
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		PerPage:     p.PerPage,
		Total:       p.Total,
	}
	if p.From > 0 {
		from, to := p.From, p.To
		meta.From = &from
		meta.To = &to
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data, Meta: meta})
}

func (s *Server) validationError(w http.ResponseWriter, errs map[string][]string) {
	s.writeJSON(w, http.StatusUnprocessableEntity, envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func (s *Server) serverError(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: message})
}
