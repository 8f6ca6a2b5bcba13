package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping ties a domain sentinel to its HTTP status and error code.
// Order matters: the first match wins.
var errorMapping = []struct {
	err    error
	status int
	code   string
	// fixed reports the sentinel text instead of the wrapped detail.
	fixed bool
}{
	{domain.ErrLocationNotFound, http.StatusNotFound, "location_not_found", true},
	{domain.ErrNotFound, http.StatusNotFound, "not_found", false},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error", false},
	{domain.ErrCapacityExceeded, http.StatusConflict, "capacity_exceeded", true},
	{domain.ErrNoImages, http.StatusConflict, "no_images", true},
	{domain.ErrStaleResponse, http.StatusConflict, "stale_response", true},
	{domain.ErrFetchFailed, http.StatusBadGateway, "upstream_error", false},
}

// classify returns the status, code and client-facing message for err.
// Unknown errors become a 500 whose message hides the cause.
func classify(err error) (int, string, string) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			if m.fixed {
				return m.status, m.code, m.err.Error()
			}
			return m.status, m.code, unwrapMessage(err, m.err)
		}
	}
	return http.StatusInternalServerError, "internal_error", "internal server error"
}

// unwrapMessage extracts the human-readable part of a wrapped sentinel
// error by dropping "pkg.Type.Method" prefixes and the sentinel's own text.
// e.g. "service.ItineraryService.Create: destination is required: validation error"
// becomes "destination is required".
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	parts := strings.Split(err.Error(), ": ")
	kept := parts[:0]
	for _, p := range parts {
		if p == sentinel.Error() || isOpPrefix(p) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return sentinel.Error()
	}
	return strings.Join(kept, ": ")
}

// isOpPrefix reports whether s looks like "pkg.Type.Method".
func isOpPrefix(s string) bool {
	if strings.ContainsAny(s, " \"'") || strings.Count(s, ".") < 1 {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return false
		}
	}
	return true
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an ErrorResponse.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondError maps err to a status and writes it. 5xx causes are logged.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, code, msg)
}

// requestError writes a 422 for a request rejected before reaching the
// service layer (e.g. missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// decodeJSON decodes the request body into v. It writes the error response
// itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		requestError(w, "request body is required")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
			return false
		}
		requestError(w, "malformed request body: "+err.Error())
		return false
	}
	return true
}

// pathUUID parses a UUID URL parameter, writing a 422 on failure.
func pathUUID(w http.ResponseWriter, raw, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		requestError(w, "invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
