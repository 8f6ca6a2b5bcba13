package planner_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/planner"
)

type fakeGeocoder struct {
	geocode func(ctx context.Context, query string) (domain.Destination, error)
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (domain.Destination, error) {
	return f.geocode(ctx, query)
}

type fakePlaces struct {
	search func(ctx context.Context, q domain.PlaceQuery) ([]domain.Place, error)
}

func (f *fakePlaces) Search(ctx context.Context, q domain.PlaceQuery) ([]domain.Place, error) {
	return f.search(ctx, q)
}

type fakePhotos struct {
	search func(ctx context.Context, query string, perPage int) ([]domain.Photo, error)
}

func (f *fakePhotos) Search(ctx context.Context, query string, perPage int) ([]domain.Photo, error) {
	return f.search(ctx, query, perPage)
}

// memItineraries is an in-memory planner.Itineraries.
type memItineraries struct {
	mu      sync.Mutex
	entries map[uuid.UUID]domain.ItineraryEntry
}

func newMemItineraries() *memItineraries {
	return &memItineraries{entries: map[uuid.UUID]domain.ItineraryEntry{}}
}

func (m *memItineraries) Create(_ context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.New()
	m.entries[e.ID] = e
	return e, nil
}

func (m *memItineraries) GetByID(_ context.Context, id uuid.UUID) (domain.ItineraryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return domain.ItineraryEntry{}, domain.ErrNotFound
	}
	return e, nil
}

func (m *memItineraries) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

type memPreferences struct {
	mu    sync.Mutex
	value string
	reads int
}

func (m *memPreferences) SelectedDestination(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return m.value, nil
}

func (m *memPreferences) SetSelectedDestination(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = name
	return nil
}

var (
	_ planner.Geocoder      = (*fakeGeocoder)(nil)
	_ planner.PlaceSearcher = (*fakePlaces)(nil)
	_ planner.PhotoSearcher = (*fakePhotos)(nil)
	_ planner.Itineraries   = (*memItineraries)(nil)
	_ planner.Preferences   = (*memPreferences)(nil)
)

// ---- fixtures --------------------------------------------------------------

var coords = map[string]domain.Coordinates{
	"Lisbon": {Lat: 38.7223, Lon: -9.1393},
	"Rome":   {Lat: 41.8933, Lon: 12.4829},
	"Paris":  {Lat: 48.8566, Lon: 2.3522},
}

func knownGeocoder() *fakeGeocoder {
	return &fakeGeocoder{geocode: func(_ context.Context, q string) (domain.Destination, error) {
		c, ok := coords[q]
		if !ok {
			return domain.Destination{}, domain.ErrLocationNotFound
		}
		return domain.Destination{Name: q, Coordinates: c}, nil
	}}
}

// placesAround returns n distinct places near the queried destination.
func placesAround(n int) *fakePlaces {
	return &fakePlaces{search: func(_ context.Context, q domain.PlaceQuery) ([]domain.Place, error) {
		out := make([]domain.Place, n)
		for i := range out {
			out[i] = domain.NewPlace("test", i, fmt.Sprintf("%s spot %d", q.Near, i+1),
				q.Center.Lat+float64(i)*0.001, q.Center.Lon, "museum")
		}
		return out, nil
	}}
}

func photosOf(urls ...string) *fakePhotos {
	return &fakePhotos{search: func(_ context.Context, _ string, _ int) ([]domain.Photo, error) {
		out := make([]domain.Photo, len(urls))
		for i, u := range urls {
			out[i] = domain.Photo{Photographer: "p", URL: u}
		}
		return out, nil
	}}
}

type harness struct {
	store *planner.Store
	deps  planner.Deps
	items *memItineraries
	prefs *memPreferences
}

func newHarness(mutate ...func(*planner.Deps)) *harness {
	h := &harness{items: newMemItineraries(), prefs: &memPreferences{}}
	h.deps = planner.Deps{
		Geocoder:      knownGeocoder(),
		Places:        placesAround(12),
		Photos:        photosOf("a.jpg", "b.jpg", "c.jpg"),
		Itineraries:   h.items,
		Preferences:   h.prefs,
		PlacesRadiusM: 1000,
		PlacesLimit:   12,
		PhotosPerPage: 10,
	}
	for _, m := range mutate {
		m(&h.deps)
	}
	h.store = planner.NewStore(h.deps, 0)
	return h
}
