// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, itinerary.go, session.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/planner"
)

// ItineraryServicer defines the business operations the itinerary handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching the database.
type ItineraryServicer interface {
	Create(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryEntry, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ItineraryEntry, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExportServicer produces the flat itinerary export.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// PreferenceServicer reads and writes persistent preferences.
type PreferenceServicer interface {
	Get(ctx context.Context, key string) (domain.Preference, error)
	Set(ctx context.Context, key, value string) (domain.Preference, error)
}

// DestinationServicer assembles destination information pages.
type DestinationServicer interface {
	Info(ctx context.Context, name string) (domain.DestinationInfo, error)
}

// SessionStore holds planner sessions.
type SessionStore interface {
	Create(ctx context.Context) (*planner.Session, error)
	Get(id uuid.UUID) (*planner.Session, error)
	Delete(id uuid.UUID)
}

// Deps are the services a Server routes to. Any of them may be nil; the
// routes for a nil service are not registered.
type Deps struct {
	Itineraries  ItineraryServicer
	Export       ExportServicer
	Preferences  PreferenceServicer
	Destinations DestinationServicer
	Sessions     SessionStore
	// OpenAPI, when set, is served verbatim at GET /openapi.yaml.
	OpenAPI []byte
	Log     *slog.Logger
}

// Server holds the dependencies of every handler.
type Server struct {
	itineraries  ItineraryServicer
	export       ExportServicer
	preferences  PreferenceServicer
	destinations DestinationServicer
	sessions     SessionStore
	openAPI      []byte
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		itineraries:  deps.Itineraries,
		export:       deps.Export,
		preferences:  deps.Preferences,
		destinations: deps.Destinations,
		sessions:     deps.Sessions,
		openAPI:      deps.OpenAPI,
		log:          log,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Deps{})
}

// Routes returns the API router. Mount it under the middleware stack in
// main.go.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	if len(s.openAPI) > 0 {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	if s.itineraries != nil {
		r.Route("/itineraries", func(r chi.Router) {
			r.Get("/", s.ListItineraries)
			r.Post("/", s.CreateItinerary)
			r.Get("/{id}", s.GetItinerary)
			r.Delete("/{id}", s.DeleteItinerary)
		})
	}
	if s.export != nil {
		r.Get("/export", s.GetExport)
	}
	if s.preferences != nil {
		r.Get("/preferences/{key}", s.GetPreference)
		r.Put("/preferences/{key}", s.PutPreference)
	}
	if s.destinations != nil {
		r.Get("/destinations/{name}", s.GetDestination)
	}
	if s.sessions != nil {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetSession)
				r.Delete("/", s.DeleteSession)
				r.Put("/destination", s.SetSessionDestination)
				r.Post("/selection/{placeId}", s.ToggleSelection)
				r.Post("/carousel/next", s.CarouselNext)
				r.Post("/carousel/prev", s.CarouselPrev)
				r.Post("/plan", s.PlanTrip)
				r.Delete("/itineraries/{itineraryId}", s.DeleteSessionItinerary)
				r.Get("/map", s.GetSessionMap)
			})
		})
	}
	return r
}
