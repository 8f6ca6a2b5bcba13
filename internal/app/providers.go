// Package app builds the third-party provider clients from configuration.
// Both the API server and tripctl use it so they talk to the same upstreams.
package app

import (
	"github.com/pkordes/tripplanner/internal/config"
	"github.com/pkordes/tripplanner/internal/planner"
	"github.com/pkordes/tripplanner/internal/provider"
	"github.com/pkordes/tripplanner/internal/provider/foursquare"
	"github.com/pkordes/tripplanner/internal/provider/geonames"
	"github.com/pkordes/tripplanner/internal/provider/nominatim"
	"github.com/pkordes/tripplanner/internal/provider/overpass"
	"github.com/pkordes/tripplanner/internal/provider/pexels"
	"github.com/pkordes/tripplanner/internal/provider/restcountries"
	"github.com/pkordes/tripplanner/internal/provider/wikipedia"
	"github.com/pkordes/tripplanner/internal/service"
)

// Providers holds one client per concern. Photos and Countries are nil when
// their credentials are not configured.
type Providers struct {
	Geocoder  planner.Geocoder
	Places    planner.PlaceSearcher
	Photos    planner.PhotoSearcher
	Summaries service.SummaryFetcher
	Countries service.CountryResolver
	Facts     service.FactsFetcher

	// PlacesSource names the places backend in use: "foursquare" or "overpass".
	PlacesSource string
}

// NewProviders constructs the clients described by cfg. Foursquare is used
// for places when an API key is set, Overpass otherwise.
func NewProviders(cfg config.Providers) Providers {
	hc := provider.NewHTTPClient(cfg.Timeout)

	p := Providers{
		Geocoder: nominatim.New(nominatim.Options{
			BaseURL:        cfg.NominatimURL,
			UserAgent:      cfg.UserAgent,
			RequestsPerSec: cfg.NominatimRPS,
			HTTPClient:     hc,
		}),
		Summaries: wikipedia.New(wikipedia.Options{
			Lang:       cfg.WikipediaLang,
			BaseURL:    cfg.WikipediaURL,
			UserAgent:  cfg.UserAgent,
			HTTPClient: hc,
		}),
		Facts: restcountries.New(restcountries.Options{
			BaseURL:    cfg.RestCountriesURL,
			HTTPClient: hc,
		}),
	}

	if cfg.FoursquareAPIKey != "" {
		p.Places = foursquare.New(foursquare.Options{
			BaseURL:    cfg.FoursquareURL,
			APIKey:     cfg.FoursquareAPIKey,
			HTTPClient: hc,
		})
		p.PlacesSource = "foursquare"
	} else {
		p.Places = overpass.New(overpass.Options{
			URL:        cfg.OverpassURL,
			UserAgent:  cfg.UserAgent,
			HTTPClient: hc,
		})
		p.PlacesSource = "overpass"
	}

	if cfg.PexelsAPIKey != "" {
		p.Photos = pexels.New(pexels.Options{
			BaseURL:    cfg.PexelsURL,
			APIKey:     cfg.PexelsAPIKey,
			HTTPClient: hc,
		})
	}
	if cfg.GeoNamesUsername != "" {
		p.Countries = geonames.New(geonames.Options{
			BaseURL:    cfg.GeoNamesURL,
			Username:   cfg.GeoNamesUsername,
			HTTPClient: hc,
		})
	}
	return p
}
