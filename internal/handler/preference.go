package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PutPreferenceRequest is the body of PUT /preferences/{key}.
type PutPreferenceRequest struct {
	Value string `json:"value"`
}

// GetPreference handles GET /preferences/{key}.
func (s *Server) GetPreference(w http.ResponseWriter, r *http.Request) {
	p, err := s.preferences.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PutPreference handles PUT /preferences/{key}.
func (s *Server) PutPreference(w http.ResponseWriter, r *http.Request) {
	var body PutPreferenceRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	p, err := s.preferences.Set(r.Context(), chi.URLParam(r, "key"), body.Value)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
