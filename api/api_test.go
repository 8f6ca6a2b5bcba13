package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/tripplanner/api"
)

func TestOpenAPI_documentsEveryRoute(t *testing.T) {
	doc := string(api.OpenAPI)

	for _, path := range []string{
		"/healthz",
		"/itineraries:",
		"/itineraries/{id}:",
		"/export:",
		"/preferences/{key}:",
		"/destinations/{name}:",
		"/sessions:",
		"/sessions/{id}:",
		"/sessions/{id}/destination:",
		"/sessions/{id}/selection/{placeId}:",
		"/sessions/{id}/carousel/next:",
		"/sessions/{id}/carousel/prev:",
		"/sessions/{id}/plan:",
		"/sessions/{id}/itineraries/{itineraryId}:",
		"/sessions/{id}/map:",
	} {
		assert.Contains(t, doc, path)
	}
}
