package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/service"
)

type mockSummaries struct {
	summary func(ctx context.Context, title string) (domain.Summary, error)
}

func (m *mockSummaries) Summary(ctx context.Context, title string) (domain.Summary, error) {
	return m.summary(ctx, title)
}

type mockCountries struct {
	country func(ctx context.Context, query string) (string, error)
}

func (m *mockCountries) Country(ctx context.Context, query string) (string, error) {
	return m.country(ctx, query)
}

type mockFacts struct {
	facts func(ctx context.Context, country string) (domain.CountryFacts, error)
}

func (m *mockFacts) Facts(ctx context.Context, country string) (domain.CountryFacts, error) {
	return m.facts(ctx, country)
}

type mockPhotos struct {
	search func(ctx context.Context, query string, perPage int) ([]domain.Photo, error)
}

func (m *mockPhotos) Search(ctx context.Context, query string, perPage int) ([]domain.Photo, error) {
	return m.search(ctx, query, perPage)
}

var (
	_ service.SummaryFetcher  = (*mockSummaries)(nil)
	_ service.CountryResolver = (*mockCountries)(nil)
	_ service.FactsFetcher    = (*mockFacts)(nil)
	_ service.PhotoSearcher   = (*mockPhotos)(nil)
)

func healthyDeps() service.DestinationDeps {
	return service.DestinationDeps{
		Summaries: &mockSummaries{summary: func(_ context.Context, title string) (domain.Summary, error) {
			return domain.Summary{Title: title, Extract: "Capital of Portugal."}, nil
		}},
		Countries: &mockCountries{country: func(_ context.Context, _ string) (string, error) {
			return "Portugal", nil
		}},
		Facts: &mockFacts{facts: func(_ context.Context, _ string) (domain.CountryFacts, error) {
			return domain.CountryFacts{Language: "Portuguese", Currency: "Euro"}, nil
		}},
		Photos: &mockPhotos{search: func(_ context.Context, _ string, _ int) ([]domain.Photo, error) {
			return []domain.Photo{{Photographer: "Ana", URL: "a.jpg"}}, nil
		}},
		PhotosPerPage: 5,
	}
}

func TestDestinationService_Info_AllParts(t *testing.T) {
	svc := service.NewDestinationService(healthyDeps(), nil)

	info, err := svc.Info(context.Background(), " Lisbon ")

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", info.Name)
	assert.Equal(t, "Capital of Portugal.", info.Summary.Extract)
	assert.Equal(t, domain.CountryFacts{Country: "Portugal", Language: "Portuguese", Currency: "Euro"}, info.Facts)
	assert.Len(t, info.Photos, 1)
	assert.Empty(t, info.Warnings)
}

func TestDestinationService_Info_EmptyName(t *testing.T) {
	svc := service.NewDestinationService(healthyDeps(), nil)

	_, err := svc.Info(context.Background(), "  ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationService_Info_PartsDegradeIndependently(t *testing.T) {
	deps := healthyDeps()
	deps.Summaries = &mockSummaries{summary: func(_ context.Context, _ string) (domain.Summary, error) {
		return domain.Summary{}, domain.ErrFetchFailed
	}}
	deps.Countries = &mockCountries{country: func(_ context.Context, _ string) (string, error) {
		return "", domain.ErrNotFound
	}}
	svc := service.NewDestinationService(deps, nil)

	info, err := svc.Info(context.Background(), "Lisbon")

	require.NoError(t, err)
	assert.Equal(t, service.SummaryUnavailable("Lisbon"), info.Summary.Extract)
	assert.Equal(t, domain.UnavailableFacts(), info.Facts)
	assert.Len(t, info.Photos, 1, "photos still load when the other parts fail")
	assert.ElementsMatch(t, []string{"summary unavailable", "country facts unavailable"}, info.Warnings)
}

func TestDestinationService_Info_FactsFailureKeepsCountry(t *testing.T) {
	deps := healthyDeps()
	deps.Facts = &mockFacts{facts: func(_ context.Context, _ string) (domain.CountryFacts, error) {
		return domain.UnavailableFacts(), domain.ErrFetchFailed
	}}
	svc := service.NewDestinationService(deps, nil)

	info, err := svc.Info(context.Background(), "Lisbon")

	require.NoError(t, err)
	assert.Equal(t, "Portugal", info.Facts.Country)
	assert.Equal(t, domain.Unavailable, info.Facts.Language)
	assert.Equal(t, domain.Unavailable, info.Facts.Currency)
}

func TestDestinationService_Info_NoImages(t *testing.T) {
	deps := healthyDeps()
	deps.Photos = &mockPhotos{search: func(_ context.Context, _ string, _ int) ([]domain.Photo, error) {
		return []domain.Photo{}, nil
	}}
	svc := service.NewDestinationService(deps, nil)

	info, err := svc.Info(context.Background(), "Lisbon")

	require.NoError(t, err)
	assert.NotNil(t, info.Photos)
	assert.Empty(t, info.Photos)
	assert.Contains(t, info.Warnings, domain.ErrNoImages.Error())
}

func TestDestinationService_Info_UnconfiguredProviders(t *testing.T) {
	svc := service.NewDestinationService(service.DestinationDeps{}, nil)

	info, err := svc.Info(context.Background(), "Lisbon")

	require.NoError(t, err)
	assert.Equal(t, service.SummaryUnavailable("Lisbon"), info.Summary.Extract)
	assert.Equal(t, domain.UnavailableFacts(), info.Facts)
	assert.Empty(t, info.Photos)
	assert.Len(t, info.Warnings, 3)
}

func TestDestinationService_Info_PassesPerPage(t *testing.T) {
	var gotPerPage int
	deps := healthyDeps()
	deps.Photos = &mockPhotos{search: func(_ context.Context, _ string, perPage int) ([]domain.Photo, error) {
		gotPerPage = perPage
		return []domain.Photo{{URL: "x.jpg"}}, nil
	}}
	svc := service.NewDestinationService(deps, nil)

	_, err := svc.Info(context.Background(), "Lisbon")

	require.NoError(t, err)
	assert.Equal(t, 5, gotPerPage)
}
