// Package domain contains the core data types for the trip planner.
// It is imported by every other internal package (repo, service, planner,
// handler) and depends on nothing internal.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItineraryEntry is a saved trip: a destination, a date range and the
// activities picked for it. Entries are never edited; they are created from
// a planner session and may be deleted.
//
// Marker is the destination marker that was on the map when the entry was
// planned. It belongs to the entry, so deleting one entry only clears its
// own pin.
type ItineraryEntry struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Activities  []string  `json:"activities"`
	Marker      *Marker   `json:"marker,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
