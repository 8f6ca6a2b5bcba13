package planner_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/planner"
)

func TestMapView_ActivityMarkersFollowPlaces(t *testing.T) {
	var m planner.MapView
	a := domain.NewPlace("test", 0, "A", 1, 1, "")
	b := domain.NewPlace("test", 1, "B", 2, 2, "")
	c := domain.NewPlace("test", 2, "C", 3, 3, "")

	m.AddActivityMarker(a)
	m.AddActivityMarker(b)
	m.AddActivityMarker(c)
	assert.Equal(t, []string{"1", "2", "3"}, labels(m.State().ActivityMarkers))

	m.RebuildActivityMarkers([]domain.Place{a, c})
	st := m.State()
	assert.Equal(t, []string{"1", "2"}, labels(st.ActivityMarkers))
	assert.Equal(t, "C", st.ActivityMarkers[1].Popup)

	m.ClearActivityMarkers()
	assert.Empty(t, m.State().ActivityMarkers)
}

func TestMapView_ClearDestinationMarkerOnlyIfSame(t *testing.T) {
	var m planner.MapView
	lisbon := domain.Marker{Label: "Lisbon", Lat: 38.7, Lon: -9.1, Popup: "Lisbon"}
	rome := domain.Marker{Label: "Rome", Lat: 41.9, Lon: 12.5, Popup: "Rome"}

	m.SetDestinationMarker(rome)

	assert.False(t, m.ClearDestinationMarker(&lisbon))
	assert.False(t, m.ClearDestinationMarker(nil))
	require.NotNil(t, m.DestinationMarker())

	assert.True(t, m.ClearDestinationMarker(&rome))
	assert.Nil(t, m.DestinationMarker())
}

func TestMapState_FeatureCollection(t *testing.T) {
	var m planner.MapView
	m.SetView(domain.Coordinates{Lat: 38.7, Lon: -9.1}, planner.DefaultZoom)
	m.SetDestinationMarker(domain.Marker{Label: "Lisbon", Lat: 38.7, Lon: -9.1, Popup: "Lisbon"})
	m.AddActivityMarker(domain.NewPlace("test", 0, "Tower", 38.69, -9.21, ""))

	raw, err := m.State().FeatureCollection().MarshalJSON()
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 2)
	assert.Equal(t, "Point", doc.Features[0].Geometry.Type)
	assert.Equal(t, []float64{-9.1, 38.7}, doc.Features[0].Geometry.Coordinates, "GeoJSON is lon,lat")
	assert.Equal(t, "destination", doc.Features[0].Properties["kind"])
	assert.Equal(t, "1", doc.Features[1].Properties["label"])
	assert.Equal(t, "Tower", doc.Features[1].Properties["popup"])
}
