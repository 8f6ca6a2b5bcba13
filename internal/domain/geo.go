package domain

import "fmt"

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String formats c as "lat,lon", the form most place APIs accept.
func (c Coordinates) String() string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lon)
}

// Destination is a geocoded free-text place name.
type Destination struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// PlaceQuery asks a places provider for points of interest. Providers that
// search by coordinates use Center and RadiusM; providers that search by
// text use Near. Limit caps the number of results.
type PlaceQuery struct {
	Near    string
	Center  *Coordinates
	RadiusM int
	Limit   int
}
