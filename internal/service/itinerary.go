// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce business rules, and orchestrate repo and
// provider calls. No SQL and no HTTP live here: services depend on
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/repo"
)

// Notifier is told about itinerary lifecycle changes after they are
// committed. The object-store archive and the event publisher implement it.
type Notifier interface {
	ItineraryCreated(ctx context.Context, e domain.ItineraryEntry) error
	ItineraryDeleted(ctx context.Context, id uuid.UUID) error
}

// ItineraryService implements business logic for itinerary entries.
type ItineraryService struct {
	repo      repo.ItineraryRepo
	log       *slog.Logger
	notifiers []Notifier
}

// NewItineraryService constructs an ItineraryService backed by the provided
// ItineraryRepo. Notifier failures are logged to log and never fail a call.
func NewItineraryService(r repo.ItineraryRepo, log *slog.Logger, notifiers ...Notifier) *ItineraryService {
	if log == nil {
		log = slog.Default()
	}
	return &ItineraryService{repo: r, log: log, notifiers: notifiers}
}

// Create validates and persists a new itinerary entry.
func (s *ItineraryService) Create(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	e, err := normalizeEntry(e)
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}

	for _, n := range s.notifiers {
		if err := n.ItineraryCreated(ctx, created); err != nil {
			s.log.WarnContext(ctx, "itinerary created notification failed",
				"itinerary_id", created.ID, "error", err)
		}
	}
	return created, nil
}

// GetByID returns a single entry by ID.
func (s *ItineraryService) GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryEntry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	return e, nil
}

// ListPaged returns one page of entries plus the total entry count.
func (s *ItineraryService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ItineraryEntry, int64, error) {
	entries, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListPaged: %w", err)
	}
	if entries == nil {
		entries = []domain.ItineraryEntry{}
	}
	return entries, total, nil
}

// Delete removes an entry by ID.
func (s *ItineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	for _, n := range s.notifiers {
		if err := n.ItineraryDeleted(ctx, id); err != nil {
			s.log.WarnContext(ctx, "itinerary deleted notification failed",
				"itinerary_id", id, "error", err)
		}
	}
	return nil
}

// normalizeEntry trims free-text fields and enforces the business rules:
// a destination and both dates are required, the end date may not precede
// the start date and at most MaxSelection activities may be recorded.
// Blank activities are dropped.
func normalizeEntry(e domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	e.Destination = strings.TrimSpace(e.Destination)
	if e.Destination == "" {
		return e, fmt.Errorf("destination is required: %w", domain.ErrValidation)
	}
	if e.StartDate.IsZero() {
		return e, fmt.Errorf("start date is required: %w", domain.ErrValidation)
	}
	if e.EndDate.IsZero() {
		return e, fmt.Errorf("end date is required: %w", domain.ErrValidation)
	}
	if e.EndDate.Before(e.StartDate) {
		return e, fmt.Errorf("end date must not be before start date: %w", domain.ErrValidation)
	}

	activities := make([]string, 0, len(e.Activities))
	for _, a := range e.Activities {
		if a = strings.TrimSpace(a); a != "" {
			activities = append(activities, a)
		}
	}
	if len(activities) > domain.MaxSelection {
		return e, fmt.Errorf("at most %d activities allowed: %w", domain.MaxSelection, domain.ErrValidation)
	}
	e.Activities = activities
	return e, nil
}
