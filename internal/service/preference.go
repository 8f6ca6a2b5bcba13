package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/repo"
)

// maxPreferenceValue bounds stored values; preferences are short strings
// such as a destination name.
const maxPreferenceValue = 1024

// PreferenceService reads and writes the persistent key/value preferences.
type PreferenceService struct {
	repo repo.PreferenceRepo
}

// NewPreferenceService constructs a PreferenceService.
func NewPreferenceService(r repo.PreferenceRepo) *PreferenceService {
	return &PreferenceService{repo: r}
}

// Get returns the preference stored under key.
func (s *PreferenceService) Get(ctx context.Context, key string) (domain.Preference, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Preference{}, fmt.Errorf("service.PreferenceService.Get: key is required: %w", domain.ErrValidation)
	}
	p, err := s.repo.Get(ctx, key)
	if err != nil {
		return domain.Preference{}, fmt.Errorf("service.PreferenceService.Get: %w", err)
	}
	return p, nil
}

// Set stores value under key, replacing any previous value.
func (s *PreferenceService) Set(ctx context.Context, key, value string) (domain.Preference, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Preference{}, fmt.Errorf("service.PreferenceService.Set: key is required: %w", domain.ErrValidation)
	}
	if len(value) > maxPreferenceValue {
		return domain.Preference{}, fmt.Errorf("service.PreferenceService.Set: value longer than %d bytes: %w", maxPreferenceValue, domain.ErrValidation)
	}
	p, err := s.repo.Set(ctx, key, value)
	if err != nil {
		return domain.Preference{}, fmt.Errorf("service.PreferenceService.Set: %w", err)
	}
	return p, nil
}

// SelectedDestination returns the stored destination name, or "" when none
// has been chosen yet.
func (s *PreferenceService) SelectedDestination(ctx context.Context) (string, error) {
	p, err := s.Get(ctx, domain.SelectedDestinationKey)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return p.Value, nil
}

// SetSelectedDestination remembers name as the selected destination.
func (s *PreferenceService) SetSelectedDestination(ctx context.Context, name string) error {
	_, err := s.Set(ctx, domain.SelectedDestinationKey, name)
	return err
}
