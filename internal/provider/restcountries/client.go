// Package restcountries looks up a country's official language and currency
// with the REST Countries v3.1 API.
package restcountries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/provider"
)

// DefaultBaseURL is the public v3.1 API root.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client calls the /name endpoint.
type Client struct {
	baseURL    string
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
	return &Client{baseURL: strings.TrimRight(opts.BaseURL, "/"), httpClient: opts.HTTPClient}
}

// country keeps languages and currencies raw: both are JSON objects and the
// first member in document order is the one shown.
type country struct {
	Languages  json.RawMessage `json:"languages"`
	Currencies json.RawMessage `json:"currencies"`
}

type currency struct {
	Name string `json:"name"`
}

// Facts returns the first listed language and currency of countryName.
// Fields the API does not provide read domain.Unavailable.
func (c *Client) Facts(ctx context.Context, countryName string) (domain.CountryFacts, error) {
	countryName = strings.TrimSpace(countryName)
	if countryName == "" {
		return domain.UnavailableFacts(), fmt.Errorf("restcountries.Client.Facts: %w: country is required", domain.ErrValidation)
	}

	req, err := provider.NewRequest(ctx, http.MethodGet, c.baseURL+"/name/"+url.PathEscape(countryName), nil)
	if err != nil {
		return domain.UnavailableFacts(), fmt.Errorf("restcountries.Client.Facts: %w", err)
	}

	var resp []country
	if err := provider.DoJSON(c.httpClient, req, &resp); err != nil {
		return domain.UnavailableFacts(), fmt.Errorf("restcountries.Client.Facts: %w", err)
	}
	if len(resp) == 0 {
		return domain.UnavailableFacts(), fmt.Errorf("restcountries.Client.Facts: %q: %w", countryName, domain.ErrNotFound)
	}

	facts := domain.UnavailableFacts()
	facts.Country = countryName

	var lang string
	if raw, ok := firstMember(resp[0].Languages); ok && json.Unmarshal(raw, &lang) == nil && lang != "" {
		facts.Language = lang
	}
	var cur currency
	if raw, ok := firstMember(resp[0].Currencies); ok && json.Unmarshal(raw, &cur) == nil && cur.Name != "" {
		facts.Currency = cur.Name
	}
	return facts, nil
}

// firstMember returns the value of the first member of a JSON object,
// preserving document order, which decoding into a map would lose.
func firstMember(obj json.RawMessage) (json.RawMessage, bool) {
	if len(obj) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(obj))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}
	if !dec.More() {
		return nil, false
	}
	if _, err := dec.Token(); err != nil { // key
		return nil, false
	}
	var v json.RawMessage
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}
