package domain

// Marker is a pin on the map view.
// Activity markers are labelled with their 1-based position in the
// selection; the destination marker is labelled with the destination name.
type Marker struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Popup string  `json:"popup,omitempty"`
}
