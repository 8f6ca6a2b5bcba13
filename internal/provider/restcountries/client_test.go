package restcountries_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/provider/restcountries"
)

func newTestClient(t *testing.T, status int, body string) *restcountries.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return restcountries.New(restcountries.Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
}

func TestFacts_FirstLanguageAndCurrencyInDocumentOrder(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `[{
		"languages":{"zlang":"Zeta","alang":"Alpha"},
		"currencies":{"ZZZ":{"name":"Zed","symbol":"z"},"AAA":{"name":"Ay"}}
	}]`)

	got, err := c.Facts(context.Background(), "Testland")

	require.NoError(t, err)
	assert.Equal(t, "Testland", got.Country)
	assert.Equal(t, "Zeta", got.Language)
	assert.Equal(t, "Zed", got.Currency)
}

func TestFacts_MissingFieldsAreUnavailable(t *testing.T) {
	c := newTestClient(t, http.StatusOK, `[{}]`)

	got, err := c.Facts(context.Background(), "Antarctica")

	require.NoError(t, err)
	assert.Equal(t, domain.Unavailable, got.Language)
	assert.Equal(t, domain.Unavailable, got.Currency)
}

func TestFacts_ErrorYieldsUnavailable(t *testing.T) {
	c := newTestClient(t, http.StatusNotFound, `{"status":404}`)

	got, err := c.Facts(context.Background(), "Atlantis")

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Equal(t, domain.UnavailableFacts(), got)
}

func TestFacts_MalformedBaseURLYieldsUnavailable(t *testing.T) {
	c := restcountries.New(restcountries.Options{BaseURL: "http://[::1"})

	got, err := c.Facts(context.Background(), "France")

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Equal(t, domain.UnavailableFacts(), got)
}
