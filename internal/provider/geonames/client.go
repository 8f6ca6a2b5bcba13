// Package geonames looks up the country a place name belongs to using the
// GeoNames search web service.
package geonames

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/provider"
)

// DefaultBaseURL is the free GeoNames web service root.
const DefaultBaseURL = "http://api.geonames.org"

// Options configures a Client.
type Options struct {
	BaseURL string
	// Username is the GeoNames account name; the service rejects requests
	// without one.
	Username   string
	HTTPClient *http.Client
}

// Client calls searchJSON.
type Client struct {
	baseURL    string
	username   string
	httpClient *http.Client
}

// New constructs a Client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = provider.NewHTTPClient(0)
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		username:   opts.Username,
		httpClient: opts.HTTPClient,
	}
}

type searchResponse struct {
	Geonames []struct {
		Name        string `json:"name"`
		CountryName string `json:"countryName"`
		CountryCode string `json:"countryCode"`
	} `json:"geonames"`
	// GeoNames reports errors (bad username, quota) with HTTP 200 and a
	// status object.
	Status *struct {
		Message string `json:"message"`
		Value   int    `json:"value"`
	} `json:"status"`
}

// Country returns the country name of the best match for query.
// Returns domain.ErrLocationNotFound when nothing matches.
func (c *Client) Country(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("geonames.Client.Country: %w: query is required", domain.ErrValidation)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxRows", "1")
	params.Set("username", c.username)

	req, err := provider.NewRequest(ctx, http.MethodGet, c.baseURL+"/searchJSON?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("geonames.Client.Country: %w", err)
	}

	var resp searchResponse
	if err := provider.DoJSON(c.httpClient, req, &resp); err != nil {
		return "", fmt.Errorf("geonames.Client.Country: %w", err)
	}
	if resp.Status != nil {
		return "", fmt.Errorf("geonames.Client.Country: %w: %s", domain.ErrFetchFailed, resp.Status.Message)
	}
	if len(resp.Geonames) == 0 || resp.Geonames[0].CountryName == "" {
		return "", fmt.Errorf("geonames.Client.Country: %q: %w", query, domain.ErrLocationNotFound)
	}
	return resp.Geonames[0].CountryName, nil
}
