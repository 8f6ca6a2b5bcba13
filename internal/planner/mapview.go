package planner

import (
	"strconv"

	geojson "github.com/paulmach/go.geojson"

	"github.com/pkordes/tripplanner/internal/domain"
)

// DefaultZoom is the zoom level used when centring on a destination.
const DefaultZoom = 12

// Marker colours, in the simplestyle "marker-color" property.
const (
	destinationColor = "#e74c3c"
	activityColor    = "#3498db"
)

// MapView is the server-side model of the page map: a view centre, a
// destination marker and numbered activity markers. Activity marker i always
// mirrors the i-th selected place.
type MapView struct {
	center      *domain.Coordinates
	zoom        int
	destination *domain.Marker
	activities  []domain.Marker
}

// MapState is a read-only copy of a MapView.
type MapState struct {
	Center            *domain.Coordinates `json:"center,omitempty"`
	Zoom              int                 `json:"zoom"`
	DestinationMarker *domain.Marker      `json:"destination_marker,omitempty"`
	ActivityMarkers   []domain.Marker     `json:"activity_markers"`
}

// SetView recentres the map.
func (m *MapView) SetView(c domain.Coordinates, zoom int) {
	m.center = &c
	m.zoom = zoom
}

// SetDestinationMarker places mk, replacing any previous destination marker.
func (m *MapView) SetDestinationMarker(mk domain.Marker) {
	m.destination = &mk
}

// DestinationMarker returns a copy of the destination marker, or nil.
func (m *MapView) DestinationMarker() *domain.Marker {
	if m.destination == nil {
		return nil
	}
	mk := *m.destination
	return &mk
}

// ClearDestinationMarker removes the destination marker if it is mk.
// It reports whether the marker was removed.
func (m *MapView) ClearDestinationMarker(mk *domain.Marker) bool {
	if mk == nil || m.destination == nil || *m.destination != *mk {
		return false
	}
	m.destination = nil
	return true
}

// AddActivityMarker appends a marker for p labelled with its 1-based
// position.
func (m *MapView) AddActivityMarker(p domain.Place) {
	m.activities = append(m.activities, activityMarker(len(m.activities)+1, p))
}

// RebuildActivityMarkers clears every activity marker and adds one per
// place, labelled 1..N in order.
func (m *MapView) RebuildActivityMarkers(places []domain.Place) {
	m.activities = make([]domain.Marker, 0, len(places))
	for i, p := range places {
		m.activities = append(m.activities, activityMarker(i+1, p))
	}
}

// ClearActivityMarkers removes every activity marker.
func (m *MapView) ClearActivityMarkers() {
	m.activities = nil
}

// State returns a copy of the map.
func (m *MapView) State() MapState {
	st := MapState{
		Zoom:              m.zoom,
		DestinationMarker: m.DestinationMarker(),
		ActivityMarkers:   make([]domain.Marker, len(m.activities)),
	}
	if m.center != nil {
		c := *m.center
		st.Center = &c
	}
	copy(st.ActivityMarkers, m.activities)
	return st
}

func activityMarker(n int, p domain.Place) domain.Marker {
	return domain.Marker{Label: strconv.Itoa(n), Lat: p.Lat, Lon: p.Lon, Popup: p.Name}
}

// FeatureCollection renders st as GeoJSON: the destination marker first,
// then the activity markers in label order.
func (st MapState) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if st.DestinationMarker != nil {
		fc.AddFeature(markerFeature(*st.DestinationMarker, "destination", destinationColor))
	}
	for _, mk := range st.ActivityMarkers {
		fc.AddFeature(markerFeature(mk, "activity", activityColor))
	}
	return fc
}

func markerFeature(mk domain.Marker, kind, color string) *geojson.Feature {
	// GeoJSON positions are [lon, lat].
	f := geojson.NewPointFeature([]float64{mk.Lon, mk.Lat})
	f.SetProperty("kind", kind)
	f.SetProperty("label", mk.Label)
	f.SetProperty("popup", mk.Popup)
	f.SetProperty("marker-color", color)
	return f
}
