// Package foursquare searches for points of interest with the Foursquare
// Places API v3.
package foursquare

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/provider"
)

// DefaultBaseURL is the Places API v3 root.
const DefaultBaseURL = "https://api.foursquare.com/v3/places"

// Source tags places fetched from Foursquare.
const Source = "foursquare"

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client calls the Places search endpoint.
type Client struct {
	baseURL    string
	apiKey     string
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
		apiKey:     opts.APIKey,
		httpClient: opts.HTTPClient,
	}
}

type searchResponse struct {
	Results []venue `json:"results"`
}

type venue struct {
	FsqID      string `json:"fsq_id"`
	Name       string `json:"name"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Geocodes struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
}

// Search returns places matching q. With a Center the search is around
// those coordinates within RadiusM; otherwise it uses the free-text Near.
func (c *Client) Search(ctx context.Context, q domain.PlaceQuery) ([]domain.Place, error) {
	params := url.Values{}
	switch {
	case q.Center != nil:
		params.Set("ll", q.Center.String())
		if q.RadiusM > 0 {
			params.Set("radius", strconv.Itoa(q.RadiusM))
		}
	case strings.TrimSpace(q.Near) != "":
		params.Set("near", strings.TrimSpace(q.Near))
	default:
		return nil, fmt.Errorf("foursquare.Client.Search: %w: coordinates or destination required", domain.ErrValidation)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	params.Set("fields", "fsq_id,name,categories,geocodes")

	req, err := provider.NewRequest(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("foursquare.Client.Search: %w", err)
	}
	// The v3 API takes the bare key, no scheme prefix.
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	var resp searchResponse
	if err := provider.DoJSON(c.httpClient, req, &resp); err != nil {
		return nil, fmt.Errorf("foursquare.Client.Search: %w", err)
	}
	return toPlaces(resp.Results), nil
}

// toPlaces maps venues to domain places, skipping venues without
// coordinates. Missing names get a placeholder.
func toPlaces(venues []venue) []domain.Place {
	places := make([]domain.Place, 0, len(venues))
	for i, v := range venues {
		lat, lon := v.Geocodes.Main.Latitude, v.Geocodes.Main.Longitude
		if lat == 0 && lon == 0 {
			continue
		}
		category := ""
		if len(v.Categories) > 0 {
			category = strings.ToLower(v.Categories[0].Name)
		}
		places = append(places, domain.NewPlace(Source, i, v.Name, lat, lon, category))
	}
	return places
}
