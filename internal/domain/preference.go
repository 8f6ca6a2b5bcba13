package domain

import "time"

// SelectedDestinationKey is the preference carrying the chosen destination
// across pages. A new planner session reads it once.
const SelectedDestinationKey = "selectedDestinationName"

// Preference is a single key/value pair in the persistent preference store.
type Preference struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
