package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// placeNamespace scopes the UUIDv5 identifiers minted for fetched places.
var placeNamespace = uuid.MustParse("3a6f1d2e-8c4b-5e7a-9f10-2b3c4d5e6f70")

// Place is a point of interest near a destination that the user can select
// as an activity.
//
// ID is derived from the source, name and coordinates, so two places that
// share a display name but sit at different coordinates never collide, and
// the same record fetched twice keeps its ID.
type Place struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Lat      float64   `json:"lat"`
	Lon      float64   `json:"lon"`
	Category string    `json:"category,omitempty"`
	Source   string    `json:"source"`
}

// NewPlace builds a Place from a raw provider record. index is the record's
// zero-based position in the provider response and is only used to
// synthesize a placeholder name when name is blank.
func NewPlace(source string, index int, name string, lat, lon float64, category string) Place {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Unnamed place %d", index+1)
	}
	return Place{
		ID:       PlaceID(source, name, lat, lon),
		Name:     name,
		Lat:      lat,
		Lon:      lon,
		Category: category,
		Source:   source,
	}
}

// PlaceID returns the stable identifier for a place record.
func PlaceID(source, name string, lat, lon float64) uuid.UUID {
	key := fmt.Sprintf("%s|%s|%.6f|%.6f", source, name, lat, lon)
	return uuid.NewSHA1(placeNamespace, []byte(key))
}

// Coordinates returns the place's position.
func (p Place) Coordinates() Coordinates {
	return Coordinates{Lat: p.Lat, Lon: p.Lon}
}

// Photo is a stock photo of a destination.
type Photo struct {
	Photographer string `json:"photographer"`
	URL          string `json:"url"`
	LargeURL     string `json:"large_url,omitempty"`
}
