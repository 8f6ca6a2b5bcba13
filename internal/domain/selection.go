package domain

import "github.com/google/uuid"

// MaxSelection is the most activities a single plan may hold.
const MaxSelection = 10

// Selection is the ordered set of places picked for the current plan.
// Places are unique by ID and the set never holds more than MaxSelection
// entries. The zero value is an empty selection ready to use.
type Selection struct {
	places  []Place
	warning bool
}

// Add appends p to the selection.
// Adding a place that is already selected is a no-op.
// Returns ErrCapacityExceeded, and raises the capacity warning, when the
// selection is full.
func (s *Selection) Add(p Place) error {
	if s.Contains(p.ID) {
		return nil
	}
	if len(s.places) >= MaxSelection {
		s.warning = true
		return ErrCapacityExceeded
	}
	s.places = append(s.places, p)
	s.warning = false
	return nil
}

// Remove drops the place with the given id, preserving the order of the
// rest. It reports whether anything was removed.
func (s *Selection) Remove(id uuid.UUID) bool {
	for i, p := range s.places {
		if p.ID == id {
			s.places = append(s.places[:i], s.places[i+1:]...)
			if len(s.places) < MaxSelection {
				s.warning = false
			}
			return true
		}
	}
	return false
}

// Contains reports whether a place with the given id is selected.
func (s *Selection) Contains(id uuid.UUID) bool {
	for _, p := range s.places {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected places.
func (s *Selection) Len() int { return len(s.places) }

// Places returns a copy of the selected places in selection order.
func (s *Selection) Places() []Place {
	out := make([]Place, len(s.places))
	copy(out, s.places)
	return out
}

// Names returns the display names of the selected places in order.
func (s *Selection) Names() []string {
	names := make([]string, len(s.places))
	for i, p := range s.places {
		names[i] = p.Name
	}
	return names
}

// Warning reports whether the capacity warning is visible.
func (s *Selection) Warning() bool { return s.warning }

// CanPlan reports whether the "plan trip" action is enabled.
func (s *Selection) CanPlan() bool { return s.Len() > 0 }

// Reset empties the selection and hides the warning.
func (s *Selection) Reset() {
	s.places = nil
	s.warning = false
}
