package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/tripplanner/internal/domain"
)

// PreferenceRepo is the persistent key/value store that carries choices
// (such as the selected destination) across planner sessions.
type PreferenceRepo interface {
	// Get returns the preference stored under key.
	// Returns domain.ErrNotFound if the key has never been set.
	Get(ctx context.Context, key string) (domain.Preference, error)

	// Set upserts value under key and returns the stored record.
	Set(ctx context.Context, key, value string) (domain.Preference, error)
}

type pgPreferenceRepo struct {
	db db
}

// NewPreferenceRepo constructs a PreferenceRepo backed by the provided db connection.
func NewPreferenceRepo(db db) PreferenceRepo {
	return &pgPreferenceRepo{db: db}
}

// Get retrieves a preference by key.
func (r *pgPreferenceRepo) Get(ctx context.Context, key string) (domain.Preference, error) {
	const q = `SELECT key, value, updated_at FROM preferences WHERE key = @key`

	p, err := scanPreference(r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}))
	if err != nil {
		return domain.Preference{}, fmt.Errorf("repo.PreferenceRepo.Get: %w", err)
	}
	return p, nil
}

// Set inserts or overwrites a preference.
func (r *pgPreferenceRepo) Set(ctx context.Context, key, value string) (domain.Preference, error) {
	const q = `
		INSERT INTO preferences (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
		RETURNING key, value, updated_at`

	p, err := scanPreference(r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key, "value": value}))
	if err != nil {
		return domain.Preference{}, fmt.Errorf("repo.PreferenceRepo.Set: %w", err)
	}
	return p, nil
}

func scanPreference(s scanner) (domain.Preference, error) {
	var p domain.Preference
	if err := s.Scan(&p.Key, &p.Value, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Preference{}, domain.ErrNotFound
		}
		return domain.Preference{}, err
	}
	return p, nil
}
