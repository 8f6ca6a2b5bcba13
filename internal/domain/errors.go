package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrLocationNotFound is returned when geocoding a destination yields zero
// candidates. The caller keeps the current map view.
var ErrLocationNotFound = errors.New("destination not found")

// ErrFetchFailed wraps any non-2xx response or transport failure from a
// third-party API. Provider clients never return raw transport errors.
var ErrFetchFailed = errors.New("fetch failed")

// ErrCapacityExceeded is returned when a selection would grow past
// MaxSelection.
var ErrCapacityExceeded = errors.New("selection capacity exceeded")

// ErrNoImages is returned by carousel navigation when there is nothing to
// navigate.
var ErrNoImages = errors.New("no images")

// ErrStaleResponse is returned when a fetch completes after a newer
// destination was requested. Its result has been discarded.
var ErrStaleResponse = errors.New("stale response")
