package pexels_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/provider/pexels"
)

func newTestClient(srv *httptest.Server) *pexels.Client {
	return pexels.New(pexels.Options{BaseURL: srv.URL, APIKey: "px-key", HTTPClient: srv.Client()})
}

func TestSearch_MapsPhotos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Kyoto", r.URL.Query().Get("query"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "px-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"photos":[
			{"photographer":"Ana","src":{"medium":"https://img/1m.jpg","large":"https://img/1l.jpg"}},
			{"photographer":"Ben","src":{"medium":""}}
		]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv).Search(context.Background(), "Kyoto", 10)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Photo{Photographer: "Ana", URL: "https://img/1m.jpg", LargeURL: "https://img/1l.jpg"}, got[0])
}

func TestSearch_ClampsPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "80", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"photos":[]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv).Search(context.Background(), "Kyoto", 500)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "Kyoto", 10)

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}
