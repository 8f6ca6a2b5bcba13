// Package nominatim resolves free-text place names to coordinates using the
// OpenStreetMap Nominatim search API.
package nominatim

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/provider"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Options configures a Client. Zero values pick sensible defaults.
type Options struct {
	BaseURL string
	// UserAgent is sent on every request; the public instance rejects
	// anonymous clients.
	UserAgent string
	// RequestsPerSec is the token-bucket rate. The public usage policy
	// allows 1 request per second.
	RequestsPerSec float64
	CacheTTL       time.Duration
	HTTPClient     *http.Client
}

// Client is a rate-limited, caching Nominatim geocoder.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *provider.Cache[domain.Destination]
}

// New constructs a Client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "tripplanner/1.0"
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 1
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = provider.NewHTTPClient(0)
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		cache:      provider.NewCache[domain.Destination](opts.CacheTTL),
	}
}

// searchResult is one candidate in a /search response. Nominatim encodes
// coordinates as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves query to the first matching candidate.
// Returns domain.ErrLocationNotFound when there are no candidates and
// domain.ErrFetchFailed when the API cannot be reached.
func (c *Client) Geocode(ctx context.Context, query string) (domain.Destination, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Destination{}, fmt.Errorf("nominatim.Client.Geocode: %w: destination is required", domain.ErrValidation)
	}

	key := strings.ToLower(query)
	if d, ok := c.cache.Get(key); ok {
		d.Name = query
		return d, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Destination{}, fmt.Errorf("nominatim.Client.Geocode: %w: %v", domain.ErrFetchFailed, err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := provider.NewRequest(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("nominatim.Client.Geocode: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	var results []searchResult
	if err := provider.DoJSON(c.httpClient, req, &results); err != nil {
		return domain.Destination{}, fmt.Errorf("nominatim.Client.Geocode: %w", err)
	}
	if len(results) == 0 {
		return domain.Destination{}, fmt.Errorf("nominatim.Client.Geocode: %q: %w", query, domain.ErrLocationNotFound)
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("nominatim.Client.Geocode: %w: bad lat %q", domain.ErrFetchFailed, first.Lat)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("nominatim.Client.Geocode: %w: bad lon %q", domain.ErrFetchFailed, first.Lon)
	}

	d := domain.Destination{
		Name:        query,
		DisplayName: first.DisplayName,
		Coordinates: domain.Coordinates{Lat: lat, Lon: lon},
	}
	c.cache.Set(key, d)
	return d, nil
}
