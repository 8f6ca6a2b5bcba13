package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripplanner/internal/domain"
)

// SummaryFetcher fetches the encyclopedia extract for a title.
type SummaryFetcher interface {
	Summary(ctx context.Context, title string) (domain.Summary, error)
}

// CountryResolver finds the country a place name belongs to.
type CountryResolver interface {
	Country(ctx context.Context, query string) (string, error)
}

// FactsFetcher looks up the language and currency of a country.
type FactsFetcher interface {
	Facts(ctx context.Context, country string) (domain.CountryFacts, error)
}

// PhotoSearcher finds stock photos matching a query.
type PhotoSearcher interface {
	Search(ctx context.Context, query string, perPage int) ([]domain.Photo, error)
}

// DestinationService assembles the destination information page.
// Any of its dependencies may be nil when the matching provider is not
// configured; that part is then reported as unavailable.
type DestinationService struct {
	summaries SummaryFetcher
	countries CountryResolver
	facts     FactsFetcher
	photos    PhotoSearcher
	perPage   int
	log       *slog.Logger
}

// DestinationDeps groups the providers DestinationService draws on.
type DestinationDeps struct {
	Summaries     SummaryFetcher
	Countries     CountryResolver
	Facts         FactsFetcher
	Photos        PhotoSearcher
	PhotosPerPage int
}

// NewDestinationService constructs a DestinationService.
func NewDestinationService(deps DestinationDeps, log *slog.Logger) *DestinationService {
	if log == nil {
		log = slog.Default()
	}
	return &DestinationService{
		summaries: deps.Summaries,
		countries: deps.Countries,
		facts:     deps.Facts,
		photos:    deps.Photos,
		perPage:   deps.PhotosPerPage,
		log:       log,
	}
}

// SummaryUnavailable is the extract shown when the summary cannot be loaded.
func SummaryUnavailable(name string) string {
	return fmt.Sprintf("Could not load information for %s. You can still enjoy images of this place.", name)
}

// Info fetches summary, country facts and photos for name concurrently.
// Only an invalid name is an error; every provider failure degrades its own
// part of the result and is listed in Warnings.
func (s *DestinationService) Info(ctx context.Context, name string) (domain.DestinationInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.DestinationInfo{}, fmt.Errorf("service.DestinationService.Info: destination is required: %w", domain.ErrValidation)
	}

	info := domain.DestinationInfo{
		Name:   name,
		Photos: []domain.Photo{},
	}
	var summaryErr, factsErr, photosErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info.Summary, summaryErr = s.summary(gctx, name)
		return nil
	})
	g.Go(func() error {
		info.Facts, factsErr = s.countryFacts(gctx, name)
		return nil
	})
	g.Go(func() error {
		var photos []domain.Photo
		photos, photosErr = s.searchPhotos(gctx, name)
		if photosErr == nil {
			info.Photos = photos
		}
		return nil
	})
	_ = g.Wait() // the goroutines never fail; errors are kept per part

	for part, err := range map[string]error{"summary": summaryErr, "facts": factsErr, "photos": photosErr} {
		if err == nil {
			continue
		}
		s.log.WarnContext(ctx, "destination info part unavailable",
			"destination", name, "part", part, "error", err)
	}
	if summaryErr != nil {
		info.Warnings = append(info.Warnings, "summary unavailable")
	}
	if factsErr != nil {
		info.Warnings = append(info.Warnings, "country facts unavailable")
	}
	if photosErr != nil {
		info.Warnings = append(info.Warnings, domain.ErrNoImages.Error())
	}
	return info, nil
}

func (s *DestinationService) summary(ctx context.Context, name string) (domain.Summary, error) {
	fallback := domain.Summary{Title: name, Extract: SummaryUnavailable(name)}
	if s.summaries == nil {
		return fallback, fmt.Errorf("summary provider not configured: %w", domain.ErrFetchFailed)
	}
	sum, err := s.summaries.Summary(ctx, name)
	if err != nil {
		return fallback, err
	}
	return sum, nil
}

func (s *DestinationService) countryFacts(ctx context.Context, name string) (domain.CountryFacts, error) {
	if s.countries == nil || s.facts == nil {
		return domain.UnavailableFacts(), fmt.Errorf("country providers not configured: %w", domain.ErrFetchFailed)
	}
	country, err := s.countries.Country(ctx, name)
	if err != nil {
		return domain.UnavailableFacts(), err
	}
	facts, err := s.facts.Facts(ctx, country)
	if err != nil {
		f := domain.UnavailableFacts()
		f.Country = country
		return f, err
	}
	if facts.Country == "" {
		facts.Country = country
	}
	return facts, nil
}

func (s *DestinationService) searchPhotos(ctx context.Context, name string) ([]domain.Photo, error) {
	if s.photos == nil {
		return nil, fmt.Errorf("photo provider not configured: %w", domain.ErrNoImages)
	}
	photos, err := s.photos.Search(ctx, name, s.perPage)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, domain.ErrNoImages
	}
	return photos, nil
}
