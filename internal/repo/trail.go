package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/geo"
)

// TrailRepo stores one row per trip with its samples in a jsonb array.
type TrailRepo struct {
	db db
}

// NewTrailRepo constructs a TrailRepo backed by the provided db connection.
func NewTrailRepo(db db) *TrailRepo {
	return &TrailRepo{db: db}
}

// Append adds sample to the trip's trail, creating the trail on first use.
// The upsert concatenates onto the stored array inside one statement, so
// concurrent appends for the same trip are serialised by the row lock and
// none is lost.
func (r *TrailRepo) Append(ctx context.Context, meta domain.TrailMeta, sample domain.TelemetrySample) error {
	const q = `
		INSERT INTO trails (trip_id, driver_id, vehicle_id, samples, finished)
		VALUES (@trip_id, @driver_id, @vehicle_id, jsonb_build_array(@sample::jsonb), @finished)
		ON CONFLICT (trip_id) DO UPDATE
		SET samples    = trails.samples || EXCLUDED.samples,
		    finished   = trails.finished OR EXCLUDED.finished,
		    updated_at = now()`

	sample.Geohash = geo.Geohash(sample.Point)
	body, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("repo.TrailRepo.Append: encode: %w", err)
	}

	_, err = r.db.Exec(ctx, q, pgx.NamedArgs{
		"trip_id":    meta.TripID,
		"driver_id":  meta.DriverID,
		"vehicle_id": meta.VehicleID,
		"sample":     string(body),
		"finished":   sample.Finished,
	})
	if err != nil {
		return fmt.Errorf("repo.TrailRepo.Append: %w", err)
	}
	return nil
}

// Get returns the trail for tripID or domain.ErrNotFound.
func (r *TrailRepo) Get(ctx context.Context, tripID uuid.UUID) (domain.Trail, error) {
	const q = `
		SELECT trip_id, driver_id, vehicle_id, samples, finished, scored_at IS NOT NULL
		FROM trails
		WHERE trip_id = @trip_id`

	var (
		t                        domain.Trail
		tripUUID, driver, vehicl pgtype.UUID
		raw                      []byte
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).
		Scan(&tripUUID, &driver, &vehicl, &raw, &t.Finished, &t.Scored)
	if err != nil {
		return domain.Trail{}, fmt.Errorf("repo.TrailRepo.Get: %w", mapErr(domain.CollectionTrails, err))
	}
	if err := json.Unmarshal(raw, &t.Samples); err != nil {
		return domain.Trail{}, fmt.Errorf("repo.TrailRepo.Get: decode samples: %w", err)
	}

	t.TripID = uuid.UUID(tripUUID.Bytes)
	t.DriverID = uuid.UUID(driver.Bytes)
	t.VehicleID = uuid.UUID(vehicl.Bytes)
	return t, nil
}

// MarkScored records that a reward was emitted for the trip. It returns true
// only for the first caller; later callers get false.
func (r *TrailRepo) MarkScored(ctx context.Context, tripID uuid.UUID) (bool, error) {
	const q = `
		UPDATE trails
		SET scored_at = now(), updated_at = now()
		WHERE trip_id = @trip_id AND scored_at IS NULL`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return false, fmt.Errorf("repo.TrailRepo.MarkScored: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
