package domain

// ExportRow is a single row in the full itinerary export.
// It is a flat, denormalized view: one row per activity, with the itinerary
// fields repeated on every row. Entries with no activities yield one row with
// an empty Activity.
type ExportRow struct {
	ItineraryID string
	Destination string
	StartDate   string // "2006-01-02" formatted date
	EndDate     string // "2006-01-02" formatted date
	Position    int    // 1-based activity position, 0 when Activity is empty
	Activity    string
}
