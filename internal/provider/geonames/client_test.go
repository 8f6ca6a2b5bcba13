package geonames_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/provider/geonames"
)

func serve(t *testing.T, body string) *geonames.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/searchJSON", r.URL.Path)
		assert.Equal(t, "demo", r.URL.Query().Get("username"))
		assert.Equal(t, "1", r.URL.Query().Get("maxRows"))
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return geonames.New(geonames.Options{BaseURL: srv.URL, Username: "demo", HTTPClient: srv.Client()})
}

func TestCountry_OK(t *testing.T) {
	c := serve(t, `{"geonames":[{"name":"Porto","countryName":"Portugal","countryCode":"PT"}]}`)

	got, err := c.Country(context.Background(), "Porto")

	require.NoError(t, err)
	assert.Equal(t, "Portugal", got)
}

func TestCountry_NoMatch(t *testing.T) {
	c := serve(t, `{"geonames":[]}`)

	_, err := c.Country(context.Background(), "Nowhereistan123")

	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestCountry_StatusError(t *testing.T) {
	c := serve(t, `{"status":{"message":"user account not enabled","value":10}}`)

	_, err := c.Country(context.Background(), "Porto")

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.ErrorContains(t, err, "not enabled")
}
