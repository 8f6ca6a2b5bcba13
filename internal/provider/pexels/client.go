// Package pexels searches the Pexels stock photo API.
package pexels

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

// DefaultBaseURL is the Pexels v1 API root.
const DefaultBaseURL = "https://api.pexels.com/v1"

// MaxPerPage is the largest page size Pexels accepts.
const MaxPerPage = 80

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client calls the photo search endpoint.
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
	Photos []struct {
		Photographer string `json:"photographer"`
		Src          struct {
			Medium string `json:"medium"`
			Large  string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// Search returns up to perPage photos for query. An empty result is not an
// error; callers decide how to show the "no images" state.
func (c *Client) Search(ctx context.Context, query string, perPage int) ([]domain.Photo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("pexels.Client.Search: %w: query is required", domain.ErrValidation)
	}
	if perPage <= 0 {
		perPage = 10
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))

	req, err := provider.NewRequest(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("pexels.Client.Search: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	var resp searchResponse
	if err := provider.DoJSON(c.httpClient, req, &resp); err != nil {
		return nil, fmt.Errorf("pexels.Client.Search: %w", err)
	}

	photos := make([]domain.Photo, 0, len(resp.Photos))
	for _, p := range resp.Photos {
		if p.Src.Medium == "" {
			continue
		}
		photos = append(photos, domain.Photo{
			Photographer: p.Photographer,
			URL:          p.Src.Medium,
			LargeURL:     p.Src.Large,
		})
	}
	return photos, nil
}
