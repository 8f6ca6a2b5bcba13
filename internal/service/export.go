package service

import (
	"context"
	"fmt"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/repo"
)

const exportDateLayout = "2006-01-02"

// ExportService assembles a full flat export of all itinerary entries.
type ExportService struct {
	itineraries repo.ItineraryRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(itineraries repo.ItineraryRepo) *ExportService {
	return &ExportService{itineraries: itineraries}
}

// Export returns one ExportRow per activity across all entries, newest entry
// first and activities in their planned order.
// Entries with no activities contribute one row with an empty Activity.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	entries, err := s.itineraries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, e := range entries {
		base := domain.ExportRow{
			ItineraryID: e.ID.String(),
			Destination: e.Destination,
			StartDate:   e.StartDate.Format(exportDateLayout),
			EndDate:     e.EndDate.Format(exportDateLayout),
		}
		if len(e.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for i, a := range e.Activities {
			row := base
			row.Position = i + 1
			row.Activity = a
			rows = append(rows, row)
		}
	}
	return rows, nil
}
