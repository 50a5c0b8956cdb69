package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the Postgres implementation.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns one page of trips, newest first, and the total count.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// SetVehicle links the vehicle to the trip and returns the updated record.
	SetVehicle(ctx context.Context, tripID, vehicleID uuid.UUID) (domain.Trip, error)

	// MarkCompleted sets trip_completed. Returns domain.ErrNotFound if the trip is gone.
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, departure_lat, departure_long, destination_lat, destination_long,
	vehicle_id, trip_completed, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (departure_lat, departure_long, destination_lat, destination_long, trip_completed)
		VALUES (@departure_lat, @departure_long, @destination_lat, @destination_long, @trip_completed)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"departure_lat":    trip.Departure.Lat,
		"departure_long":   trip.Departure.Long,
		"destination_lat":  trip.Destination.Lat,
		"destination_long": trip.Destination.Long,
		"trip_completed":   trip.Completed,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	total, err := count(ctx, r.db, domain.CollectionTrips)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: count: %w", err)
	}
	return trips, total, nil
}

func (r *pgTripRepo) SetVehicle(ctx context.Context, tripID, vehicleID uuid.UUID) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET vehicle_id = @vehicle_id,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": tripID, "vehicle_id": vehicleID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.SetVehicle: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE trips SET trip_completed = true, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.MarkCompleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.MarkCompleted: %w", mapErr(domain.CollectionTrips, pgx.ErrNoRows))
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		vehicleID pgtype.UUID
	)

	err := s.Scan(&id,
		&t.Departure.Lat, &t.Departure.Long,
		&t.Destination.Lat, &t.Destination.Long,
		&vehicleID, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, mapErr(domain.CollectionTrips, err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.VehicleID = optionalUUID(vehicleID)
	return t, nil
}
