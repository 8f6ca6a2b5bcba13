package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripplanner/internal/domain"
)

// Session is one user's planning page.
type Session struct {
	id   uuid.UUID
	deps *Deps

	mu                 sync.Mutex
	// requests orders SetDestination calls; only the latest may commit its
	// geocode result. generation changes only when a destination is
	// committed, so a failed lookup never invalidates the one on screen.
	requests           uint64
	generation         uint64
	initialDestination string
	destination        *domain.Destination
	candidates         []domain.Place
	selection          domain.Selection
	mapView            MapView
	photos             []domain.Photo
	carousel           *domain.Carousel
	placesErr          error
	photosErr          error
}

// Candidate is a place the user can tick, with its checkbox state.
type Candidate struct {
	domain.Place
	Selected bool `json:"selected"`
}

// CarouselState is the photo strip as the page shows it.
type CarouselState struct {
	Photos   []domain.Photo `json:"photos"`
	Index    int            `json:"index"`
	// Current is the URL on display; empty in the "no images" state.
	Current  string `json:"current,omitempty"`
	NoImages bool   `json:"no_images"`
}

// State is a consistent snapshot of a session.
type State struct {
	ID                 uuid.UUID           `json:"id"`
	// Generation counts committed destinations.
	Generation         uint64              `json:"generation"`
	InitialDestination string              `json:"initial_destination,omitempty"`
	Destination        *domain.Destination `json:"destination,omitempty"`
	Candidates         []Candidate         `json:"candidates"`
	Selection          []domain.Place      `json:"selection"`
	CanPlan            bool                `json:"can_plan"`
	CapacityWarning    bool                `json:"capacity_warning"`
	Map                MapState            `json:"map"`
	Carousel           CarouselState       `json:"carousel"`
	PlacesError        string              `json:"places_error,omitempty"`
	PhotosError        string              `json:"photos_error,omitempty"`
}

func newSession(id uuid.UUID, deps *Deps, initialDestination string) *Session {
	return &Session{
		id:                 id,
		deps:               deps,
		initialDestination: initialDestination,
		carousel:           domain.NewCarousel(nil),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// SetDestination geocodes name, recentres the map on it and loads the
// candidate places and photos for it.
//
// If geocoding finds nothing the session is left untouched, including any
// places and photos still loading for the current destination, and the
// error wraps domain.ErrLocationNotFound. If a newer SetDestination started
// before this one's geocode returned, or committed before its places and
// photos returned, its results are dropped and the error wraps
// domain.ErrStaleResponse. Places and photo failures do not fail the call;
// they are reported in State.PlacesError and State.PhotosError.
func (s *Session) SetDestination(ctx context.Context, name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.State(), fmt.Errorf("planner.Session.SetDestination: destination is required: %w", domain.ErrValidation)
	}

	s.mu.Lock()
	s.requests++
	req := s.requests
	s.mu.Unlock()

	dest, err := s.deps.Geocoder.Geocode(ctx, name)
	if err != nil {
		if stale := s.checkLatestRequest(req); stale != nil {
			return s.State(), fmt.Errorf("planner.Session.SetDestination: %w", stale)
		}
		return s.State(), fmt.Errorf("planner.Session.SetDestination: %w", err)
	}
	if dest.Name == "" {
		dest.Name = name
	}

	s.mu.Lock()
	if req != s.requests {
		st := s.stateLocked()
		s.mu.Unlock()
		return st, fmt.Errorf("planner.Session.SetDestination: %w", domain.ErrStaleResponse)
	}
	s.generation++
	gen := s.generation
	s.destination = &dest
	s.mapView.SetView(dest.Coordinates, DefaultZoom)
	s.mapView.SetDestinationMarker(domain.Marker{
		Label: dest.Name,
		Lat:   dest.Coordinates.Lat,
		Lon:   dest.Coordinates.Lon,
		Popup: dest.Name,
	})
	s.resetPlanLocked()
	s.photos = nil
	s.carousel = domain.NewCarousel(nil)
	s.placesErr, s.photosErr = nil, nil
	s.mu.Unlock()

	if s.deps.Preferences != nil {
		if err := s.deps.Preferences.SetSelectedDestination(ctx, dest.Name); err != nil {
			s.deps.logger().WarnContext(ctx, "remember selected destination",
				"session_id", s.id, "destination", dest.Name, "error", err)
		}
	}

	places, placesErr, photos, photosErr := s.fetchRegions(ctx, dest)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return s.stateLocked(), fmt.Errorf("planner.Session.SetDestination: %w", domain.ErrStaleResponse)
	}
	s.candidates, s.placesErr = places, placesErr
	s.photos, s.photosErr = photos, photosErr
	s.carousel = domain.NewCarousel(photoURLs(photos))
	return s.stateLocked(), nil
}

// fetchRegions loads places and photos concurrently. Each region records
// its own failure; neither blocks the other.
func (s *Session) fetchRegions(ctx context.Context, dest domain.Destination) (
	places []domain.Place, placesErr error, photos []domain.Photo, photosErr error,
) {
	var g errgroup.Group
	g.Go(func() error {
		if s.deps.Places == nil {
			placesErr = fmt.Errorf("no places provider configured: %w", domain.ErrFetchFailed)
			return nil
		}
		center := dest.Coordinates
		places, placesErr = s.deps.Places.Search(ctx, domain.PlaceQuery{
			Near:    dest.Name,
			Center:  &center,
			RadiusM: s.deps.PlacesRadiusM,
			Limit:   s.deps.PlacesLimit,
		})
		return nil
	})
	g.Go(func() error {
		if s.deps.Photos == nil {
			photosErr = fmt.Errorf("no photo provider configured: %w", domain.ErrNoImages)
			return nil
		}
		photos, photosErr = s.deps.Photos.Search(ctx, dest.Name, s.deps.PhotosPerPage)
		if photosErr == nil && len(photos) == 0 {
			photosErr = domain.ErrNoImages
		}
		return nil
	})
	_ = g.Wait()

	log := s.deps.logger()
	if placesErr != nil {
		places = nil
		log.WarnContext(ctx, "places unavailable", "session_id", s.id, "destination", dest.Name, "error", placesErr)
	}
	if photosErr != nil {
		photos = nil
		if !errors.Is(photosErr, domain.ErrNoImages) {
			log.WarnContext(ctx, "photos unavailable", "session_id", s.id, "destination", dest.Name, "error", photosErr)
		}
	}
	return places, placesErr, photos, photosErr
}

// Toggle checks or unchecks a candidate place.
//
// Checking appends the place and its numbered marker; checking when the
// selection is full is rejected with domain.ErrCapacityExceeded and raises
// the capacity warning. Unchecking removes the place and renumbers every
// activity marker. Checking a selected place or unchecking an unselected one
// changes nothing. Unknown ids return domain.ErrNotFound.
func (s *Session) Toggle(placeID uuid.UUID, checked bool) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.candidateLocked(placeID)
	if !ok {
		return s.stateLocked(), fmt.Errorf("planner.Session.Toggle: place %s: %w", placeID, domain.ErrNotFound)
	}

	if checked {
		if s.selection.Contains(p.ID) {
			return s.stateLocked(), nil
		}
		if err := s.selection.Add(p); err != nil {
			return s.stateLocked(), fmt.Errorf("planner.Session.Toggle: %w", err)
		}
		s.mapView.AddActivityMarker(p)
		return s.stateLocked(), nil
	}

	if s.selection.Remove(p.ID) {
		s.mapView.RebuildActivityMarkers(s.selection.Places())
	}
	return s.stateLocked(), nil
}

// CarouselNext advances the photo carousel.
func (s *Session) CarouselNext() (State, error) {
	return s.moveCarousel((*domain.Carousel).Next)
}

// CarouselPrev steps the photo carousel back.
func (s *Session) CarouselPrev() (State, error) {
	return s.moveCarousel((*domain.Carousel).Prev)
}

func (s *Session) moveCarousel(move func(*domain.Carousel) (int, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := move(s.carousel); err != nil {
		return s.stateLocked(), fmt.Errorf("planner.Session.Carousel: %w", err)
	}
	return s.stateLocked(), nil
}

// Plan records an itinerary entry for the current destination with the
// selected activities in selection order, then clears the selection, the
// candidate list and the activity markers. The destination marker stays on
// the map and is stored on the entry.
func (s *Session) Plan(ctx context.Context, start, end time.Time) (domain.ItineraryEntry, State, error) {
	s.mu.Lock()
	if s.destination == nil {
		s.mu.Unlock()
		return domain.ItineraryEntry{}, s.State(), fmt.Errorf("planner.Session.Plan: no destination set: %w", domain.ErrValidation)
	}
	if !s.selection.CanPlan() {
		s.mu.Unlock()
		return domain.ItineraryEntry{}, s.State(), fmt.Errorf("planner.Session.Plan: no activities selected: %w", domain.ErrValidation)
	}
	gen := s.generation
	entry := domain.ItineraryEntry{
		Destination: s.destination.Name,
		StartDate:   start,
		EndDate:     end,
		Activities:  s.selection.Names(),
		Marker:      s.mapView.DestinationMarker(),
	}
	s.mu.Unlock()

	created, err := s.deps.Itineraries.Create(ctx, entry)
	if err != nil {
		return domain.ItineraryEntry{}, s.State(), fmt.Errorf("planner.Session.Plan: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A destination committed while saving already reset the plan state.
	if gen == s.generation {
		s.resetPlanLocked()
	}
	return created, s.stateLocked(), nil
}

// DeleteItinerary deletes an entry and removes its marker from the map if
// that marker is still shown. Other entries' markers are never touched.
func (s *Session) DeleteItinerary(ctx context.Context, id uuid.UUID) (State, error) {
	entry, err := s.deps.Itineraries.GetByID(ctx, id)
	if err != nil {
		return s.State(), fmt.Errorf("planner.Session.DeleteItinerary: %w", err)
	}
	if err := s.deps.Itineraries.Delete(ctx, id); err != nil {
		return s.State(), fmt.Errorf("planner.Session.DeleteItinerary: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapView.ClearDestinationMarker(entry.Marker)
	return s.stateLocked(), nil
}

// checkLatestRequest returns domain.ErrStaleResponse if a newer
// SetDestination has started since req.
func (s *Session) checkLatestRequest(req uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req != s.requests {
		return domain.ErrStaleResponse
	}
	return nil
}

func (s *Session) resetPlanLocked() {
	s.candidates = nil
	s.selection.Reset()
	s.mapView.ClearActivityMarkers()
}

func (s *Session) candidateLocked(id uuid.UUID) (domain.Place, bool) {
	for _, p := range s.candidates {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Place{}, false
}

func (s *Session) stateLocked() State {
	st := State{
		ID:                 s.id,
		Generation:         s.generation,
		InitialDestination: s.initialDestination,
		Candidates:         make([]Candidate, len(s.candidates)),
		Selection:          s.selection.Places(),
		CanPlan:            s.selection.CanPlan(),
		CapacityWarning:    s.selection.Warning(),
		Map:                s.mapView.State(),
		Carousel: CarouselState{
			Photos:   make([]domain.Photo, len(s.photos)),
			Index:    s.carousel.Index(),
			NoImages: s.carousel.Empty(),
		},
	}
	if s.destination != nil {
		d := *s.destination
		st.Destination = &d
	}
	for i, p := range s.candidates {
		st.Candidates[i] = Candidate{Place: p, Selected: s.selection.Contains(p.ID)}
	}
	copy(st.Carousel.Photos, s.photos)
	if cur, err := s.carousel.Current(); err == nil {
		st.Carousel.Current = cur
	}
	if s.placesErr != nil {
		st.PlacesError = s.placesErr.Error()
	}
	if s.photosErr != nil {
		st.PhotosError = s.photosErr.Error()
	}
	return st
}

func photoURLs(photos []domain.Photo) []string {
	urls := make([]string, len(photos))
	for i, p := range photos {
		urls[i] = p.URL
	}
	return urls
}
