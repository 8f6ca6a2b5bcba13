package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripplanner/internal/planner"
)

// SessionErrorResponse is an ErrorResponse that also carries the session
// state, so the page can re-render (e.g. the reverted checkbox and visible
// warning after a rejected selection).
type SessionErrorResponse struct {
	Error ErrorDetail    `json:"error"`
	State *planner.State `json:"state,omitempty"`
}

// SetDestinationRequest is the body of PUT /sessions/{id}/destination.
type SetDestinationRequest struct {
	Name string `json:"name"`
}

// ToggleSelectionRequest is the body of POST /sessions/{id}/selection/{placeId}.
type ToggleSelectionRequest struct {
	Checked bool `json:"checked"`
}

// PlanTripRequest is the body of POST /sessions/{id}/plan.
type PlanTripRequest struct {
	StartDate *openapi_types.Date `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date"`
}

// PlanTripResponse is returned after a successful plan.
type PlanTripResponse struct {
	Itinerary Itinerary     `json:"itinerary"`
	State     planner.State `json:"state"`
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID().String())
	writeJSON(w, http.StatusCreated, sess.State())
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.sessions.Delete(sess.ID())
	w.WriteHeader(http.StatusNoContent)
}

// SetSessionDestination handles PUT /sessions/{id}/destination.
func (s *Server) SetSessionDestination(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body SetDestinationRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	// The geocoder is rate limited, so a destination change may outlive the
	// request; a cancelled client must not cancel the fetch half way.
	st, err := sess.SetDestination(context.WithoutCancel(r.Context()), body.Name)
	s.respondState(w, r, http.StatusOK, st, err)
}

// ToggleSelection handles POST /sessions/{id}/selection/{placeId}.
func (s *Server) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	placeID, ok := pathUUID(w, chi.URLParam(r, "placeId"), "place id")
	if !ok {
		return
	}
	var body ToggleSelectionRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	st, err := sess.Toggle(placeID, body.Checked)
	s.respondState(w, r, http.StatusOK, st, err)
}

// CarouselNext handles POST /sessions/{id}/carousel/next.
func (s *Server) CarouselNext(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	st, err := sess.CarouselNext()
	s.respondState(w, r, http.StatusOK, st, err)
}

// CarouselPrev handles POST /sessions/{id}/carousel/prev.
func (s *Server) CarouselPrev(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	st, err := sess.CarouselPrev()
	s.respondState(w, r, http.StatusOK, st, err)
}

// PlanTrip handles POST /sessions/{id}/plan.
func (s *Server) PlanTrip(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body PlanTripRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.StartDate == nil || body.EndDate == nil {
		requestError(w, "start_date and end_date are required")
		return
	}

	entry, st, err := sess.Plan(r.Context(), body.StartDate.Time, body.EndDate.Time)
	if err != nil {
		s.respondState(w, r, http.StatusOK, st, err)
		return
	}
	writeJSON(w, http.StatusCreated, PlanTripResponse{Itinerary: itineraryToResponse(entry), State: st})
}

// DeleteSessionItinerary handles DELETE /sessions/{id}/itineraries/{itineraryId}.
// It deletes the entry and removes its marker from the session map.
func (s *Server) DeleteSessionItinerary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, chi.URLParam(r, "itineraryId"), "itinerary id")
	if !ok {
		return
	}
	st, err := sess.DeleteItinerary(r.Context(), id)
	s.respondState(w, r, http.StatusOK, st, err)
}

// GetSessionMap handles GET /sessions/{id}/map.
// The body is a GeoJSON FeatureCollection of the session's markers.
func (s *Server) GetSessionMap(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	raw, err := sess.State().Map.FeatureCollection().MarshalJSON()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// session looks up the session named in the URL, writing the error response
// when it does not exist.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*planner.Session, bool) {
	id, ok := pathUUID(w, chi.URLParam(r, "id"), "session id")
	if !ok {
		return nil, false
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.respondError(w, r, err)
		return nil, false
	}
	return sess, true
}

// respondState writes st with status on success, or the mapped error with
// st attached.
func (s *Server) respondState(w http.ResponseWriter, r *http.Request, status int, st planner.State, err error) {
	if err == nil {
		writeJSON(w, status, st)
		return
	}
	code, errCode, msg := classify(err)
	if code >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "session request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, code, SessionErrorResponse{
		Error: ErrorDetail{Code: errCode, Message: msg},
		State: &st,
	})
}
