// Package planner holds the interactive trip-planning session: the
// destination, the candidate places, the bounded selection, the photo
// carousel and the map, kept consistent with each other.
//
// A Session is safe for concurrent use. Its lock is never held across a
// network call; every destination change starts a new generation and any
// response that arrives for an older generation is discarded.
package planner

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
)

// Geocoder resolves a free-text destination to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Destination, error)
}

// PlaceSearcher finds points of interest around a destination.
type PlaceSearcher interface {
	Search(ctx context.Context, q domain.PlaceQuery) ([]domain.Place, error)
}

// PhotoSearcher finds stock photos for a destination.
type PhotoSearcher interface {
	Search(ctx context.Context, query string, perPage int) ([]domain.Photo, error)
}

// Itineraries persists planned trips.
type Itineraries interface {
	Create(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Preferences remembers the selected destination across sessions.
type Preferences interface {
	SelectedDestination(ctx context.Context) (string, error)
	SetSelectedDestination(ctx context.Context, name string) error
}

// Deps are the collaborators shared by every session.
// Places and Photos may be nil when no provider is configured; the matching
// region of the session then reports an error.
type Deps struct {
	Geocoder      Geocoder
	Places        PlaceSearcher
	Photos        PhotoSearcher
	Itineraries   Itineraries
	Preferences   Preferences
	PlacesRadiusM int
	PlacesLimit   int
	PhotosPerPage int
	Log           *slog.Logger
}

func (d *Deps) logger() *slog.Logger {
	if d.Log == nil {
		return slog.Default()
	}
	return d.Log
}
