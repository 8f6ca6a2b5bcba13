package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripplanner/internal/domain"
)

// Itinerary is the JSON representation of an itinerary entry.
type Itinerary struct {
	ID          uuid.UUID          `json:"id"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Activities  []string           `json:"activities"`
	Marker      *domain.Marker     `json:"marker,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CreateItineraryRequest is the body of POST /itineraries.
type CreateItineraryRequest struct {
	Destination string              `json:"destination"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	Activities  []string            `json:"activities"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// ItineraryList is the body of GET /itineraries.
type ItineraryList struct {
	Data       []Itinerary `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// CreateItinerary handles POST /itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var body CreateItineraryRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.itineraries.Create(r.Context(), requestToItinerary(body))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// ListItineraries handles GET /itineraries.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	params := domain.NewPaginationParams(page, limit)

	entries, total, err := s.itineraries.ListPaged(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	data := make([]Itinerary, len(entries))
	for i, e := range entries {
		data[i] = itineraryToResponse(e)
	}
	writeJSON(w, http.StatusOK, ItineraryList{
		Data: data,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: params.TotalPages(total),
		},
	})
}

// GetItinerary handles GET /itineraries/{id}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, chi.URLParam(r, "id"), "itinerary id")
	if !ok {
		return
	}
	e, err := s.itineraries.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(e))
}

// DeleteItinerary handles DELETE /itineraries/{id}.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, chi.URLParam(r, "id"), "itinerary id")
	if !ok {
		return
	}
	if err := s.itineraries.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToItinerary converts a create request into a domain entry.
// Missing dates stay zero and are rejected by the service.
func requestToItinerary(body CreateItineraryRequest) domain.ItineraryEntry {
	e := domain.ItineraryEntry{
		Destination: body.Destination,
		Activities:  body.Activities,
	}
	if body.StartDate != nil {
		e.StartDate = body.StartDate.Time
	}
	if body.EndDate != nil {
		e.EndDate = body.EndDate.Time
	}
	return e
}

// itineraryToResponse converts a domain entry into its JSON representation.
func itineraryToResponse(e domain.ItineraryEntry) Itinerary {
	activities := e.Activities
	if activities == nil {
		activities = []string{}
	}
	return Itinerary{
		ID:          e.ID,
		Destination: e.Destination,
		StartDate:   openapi_types.Date{Time: e.StartDate},
		EndDate:     openapi_types.Date{Time: e.EndDate},
		Activities:  activities,
		Marker:      e.Marker,
		CreatedAt:   e.CreatedAt,
	}
}

// queryInt parses an optional integer query parameter. It writes a 422 and
// returns false when the value is present but not an integer.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		requestError(w, "invalid "+name+": must be an integer")
		return nil, false
	}
	return &v, true
}
