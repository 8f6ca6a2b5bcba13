// export.go implements GET /export.
// Returns every itinerary entry as a flat table, one row per activity.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).

package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripplanner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"itinerary_id", "destination", "start_date", "end_date", "position", "activity",
}

// ExportRow is the JSON representation of one export row.
type ExportRow struct {
	ItineraryID uuid.UUID          `json:"itinerary_id"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Position    *int               `json:"position,omitempty"`
	Activity    *string            `json:"activity,omitempty"`
}

// GetExport handles GET /export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "json" {
		requestError(w, "invalid format: must be csv or json")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the JSON response type.
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToJSONRow(r))
	}
	return out
}

// writeCSV encodes domain rows as CSV as an attachment.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itineraries.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToJSONRow maps a domain.ExportRow to the JSON row type.
// Rows without an activity omit position and activity.
func domainRowToJSONRow(r domain.ExportRow) ExportRow {
	id, _ := uuid.Parse(r.ItineraryID)
	row := ExportRow{
		ItineraryID: id,
		Destination: r.Destination,
		StartDate:   mustParseDate(r.StartDate),
		EndDate:     mustParseDate(r.EndDate),
	}
	if r.Activity != "" {
		pos, activity := r.Position, r.Activity
		row.Position = &pos
		row.Activity = &activity
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// A zero position is written as an empty cell.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	position := ""
	if r.Position > 0 {
		position = strconv.Itoa(r.Position)
	}
	return []string{
		r.ItineraryID,
		r.Destination,
		r.StartDate,
		r.EndDate,
		position,
		r.Activity,
	}
}

// mustParseDate parses an "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}
