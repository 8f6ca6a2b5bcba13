package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripplanner/internal/domain"
)

// ItineraryRepo defines the persistence operations for itinerary entries.
// Entries are append-only: there is no update.
type ItineraryRepo interface {
	// Create inserts a new entry and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error)

	// GetByID retrieves a single entry by its UUID primary key.
	// Returns domain.ErrNotFound if no entry with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryEntry, error)

	// List returns all entries, newest first.
	List(ctx context.Context) ([]domain.ItineraryEntry, error)

	// ListPaged returns one page of entries, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ItineraryEntry, int64, error)

	// Delete removes an entry by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `id, destination, start_date, end_date, activities, marker, created_at`

// Create inserts a new itinerary row and returns the full persisted record.
func (r *pgItineraryRepo) Create(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	const q = `
		INSERT INTO itineraries (destination, start_date, end_date, activities, marker)
		VALUES (@destination, @start_date, @end_date, @activities, @marker)
		RETURNING ` + itineraryColumns

	activities := e.Activities
	if activities == nil {
		activities = []string{}
	}
	args := pgx.NamedArgs{
		"destination": e.Destination,
		"start_date":  pgtype.Date{Time: e.StartDate, Valid: true},
		"end_date":    pgtype.Date{Time: e.EndDate, Valid: true},
		"activities":  activities,
		"marker":      e.Marker, // nil becomes NULL
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an entry by primary key.
func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryEntry, error) {
	const q = `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = @id`

	result, err := scanItinerary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all entries ordered by created_at descending (most recent first).
func (r *pgItineraryRepo) List(ctx context.Context) ([]domain.ItineraryEntry, error) {
	const q = `SELECT ` + itineraryColumns + ` FROM itineraries ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	entries, err := collectItineraries(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	return entries, nil
}

// ListPaged returns one page of entries and the total number of entries.
func (r *pgItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ItineraryEntry, int64, error) {
	const countQ = `SELECT count(*) FROM itineraries`
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	entries, err := collectItineraries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	return entries, total, nil
}

// Delete removes an entry by primary key.
func (r *pgItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// collectItineraries drains rows into a non-nil slice and closes them.
func collectItineraries(rows pgx.Rows) ([]domain.ItineraryEntry, error) {
	defer rows.Close()

	entries := []domain.ItineraryEntry{}
	for rows.Next() {
		e, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return entries, nil
}

// scanItinerary maps a single database row into a domain.ItineraryEntry.
// It handles the UUID, date and nullable marker conversions.
func scanItinerary(s scanner) (domain.ItineraryEntry, error) {
	var (
		e          domain.ItineraryEntry
		id         pgtype.UUID
		start, end pgtype.Date
	)

	err := s.Scan(&id, &e.Destination, &start, &end, &e.Activities, &e.Marker, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ItineraryEntry{}, domain.ErrNotFound
		}
		return domain.ItineraryEntry{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.StartDate = start.Time
	e.EndDate = end.Time
	if e.Activities == nil {
		e.Activities = []string{}
	}
	return e, nil
}
