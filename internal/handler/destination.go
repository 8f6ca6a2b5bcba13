package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetDestination handles GET /destinations/{name}.
// Provider failures degrade parts of the body rather than failing the
// request, so this only errors on an invalid name.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	info, err := s.destinations.Info(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
