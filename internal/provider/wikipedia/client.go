// Package wikipedia fetches article summaries from the Wikipedia REST API.
package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/provider"
)

// Options configures a Client.
type Options struct {
	// Lang selects the language edition ("en", "es", ...). Defaults to "en".
	Lang string
	// BaseURL overrides the REST root, e.g. for tests. Defaults to
	// https://{Lang}.wikipedia.org/api/rest_v1.
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Client calls the page summary endpoint.
type Client struct {
	lang       string
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New constructs a Client.
func New(opts Options) *Client {
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = fmt.Sprintf("https://%s.wikipedia.org/api/rest_v1", opts.Lang)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "tripplanner/1.0"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = provider.NewHTTPClient(0)
	}
	return &Client{
		lang:       opts.Lang,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
	}
}

type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Summary returns the lead extract of the article titled title.
func (c *Client) Summary(ctx context.Context, title string) (domain.Summary, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Summary{}, fmt.Errorf("wikipedia.Client.Summary: %w: title is required", domain.ErrValidation)
	}
	slug := url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	req, err := provider.NewRequest(ctx, http.MethodGet, c.baseURL+"/page/summary/"+slug, nil)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("wikipedia.Client.Summary: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	var resp summaryResponse
	if err := provider.DoJSON(c.httpClient, req, &resp); err != nil {
		return domain.Summary{}, fmt.Errorf("wikipedia.Client.Summary: %w", err)
	}

	s := domain.Summary{
		Title:   resp.Title,
		Extract: resp.Extract,
		PageURL: resp.ContentURLs.Desktop.Page,
	}
	if s.Title == "" {
		s.Title = title
	}
	if s.PageURL == "" {
		s.PageURL = c.PageURL(title)
	}
	return s, nil
}

// PageURL returns the human-readable article URL for title.
func (c *Client) PageURL(title string) string {
	return fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", c.lang, url.PathEscape(strings.ReplaceAll(title, " ", "_")))
}
