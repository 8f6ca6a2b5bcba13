// Package overpass finds named points of interest around a coordinate using
// the OpenStreetMap Overpass API. It needs no API key and is the fallback
// places source when Foursquare is not configured.
package overpass

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/provider"
)

// DefaultURL is the public Overpass interpreter endpoint.
const DefaultURL = "https://overpass-api.de/api/interpreter"

// Source tags places fetched from Overpass.
const Source = "overpass"

// Options configures a Client.
type Options struct {
	URL        string
	UserAgent  string
	HTTPClient *http.Client
}

// Client posts Overpass QL queries.
type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
}

// New constructs a Client.
func New(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "tripplanner/1.0"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = provider.NewHTTPClient(0)
	}
	return &Client{url: opts.URL, userAgent: opts.UserAgent, httpClient: opts.HTTPClient}
}

type response struct {
	Elements []element `json:"elements"`
}

type element struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// Query renders the Overpass QL used for a search.
func Query(center domain.Coordinates, radiusM, limit int) string {
	if radiusM <= 0 {
		radiusM = 5000
	}
	if limit <= 0 {
		limit = 15
	}
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["tourism"~"attraction|museum|viewpoint|gallery|zoo|theme_park"]["name"](around:%d,%f,%f);
  node["historic"]["name"](around:%d,%f,%f);
  node["leisure"="park"]["name"](around:%d,%f,%f);
);
out %d;`,
		radiusM, center.Lat, center.Lon,
		radiusM, center.Lat, center.Lon,
		radiusM, center.Lat, center.Lon,
		limit)
}

// Search returns named POIs around q.Center. Near is ignored: Overpass has
// no text geocoding.
func (c *Client) Search(ctx context.Context, q domain.PlaceQuery) ([]domain.Place, error) {
	if q.Center == nil {
		return nil, fmt.Errorf("overpass.Client.Search: %w: coordinates required", domain.ErrValidation)
	}

	form := url.Values{}
	form.Set("data", Query(*q.Center, q.RadiusM, q.Limit))

	req, err := provider.NewRequest(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("overpass.Client.Search: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	var resp response
	if err := provider.DoJSON(c.httpClient, req, &resp); err != nil {
		return nil, fmt.Errorf("overpass.Client.Search: %w", err)
	}

	places := make([]domain.Place, 0, len(resp.Elements))
	for i, e := range resp.Elements {
		places = append(places, domain.NewPlace(Source, i, e.Tags["name"], e.Lat, e.Lon, category(e.Tags)))
	}
	return places, nil
}

// category picks the most descriptive OSM tag value for display.
func category(tags map[string]string) string {
	for _, k := range []string{"tourism", "historic", "leisure", "amenity"} {
		if v := tags[k]; v != "" {
			return v
		}
	}
	return ""
}
