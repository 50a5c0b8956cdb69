package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// VehicleRepo defines the persistence operations for Vehicles.
type VehicleRepo interface {
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)

	// GetByID returns domain.ErrNotFound if no vehicle with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)

	// GetByDriver returns the vehicle currently held by driverID, or
	// domain.ErrNotFound when the driver holds none.
	GetByDriver(ctx context.Context, driverID uuid.UUID) (domain.Vehicle, error)

	List(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error)

	// SetDriver links the driver to the vehicle. The unique index on
	// driver_id turns a concurrent double assignment into domain.ErrConflict.
	SetDriver(ctx context.Context, vehicleID, driverID uuid.UUID) (domain.Vehicle, error)
}

type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

const vehicleColumns = `id, type, registration, driver_id, created_at`

func (r *pgVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (type, registration)
		VALUES (@type, @registration)
		RETURNING ` + vehicleColumns

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"type":         v.Type,
		"registration": v.Registration,
	}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = @id`

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByDriver(ctx context.Context, driverID uuid.UUID) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE driver_id = @driver_id`

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"driver_id": driverID}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByDriver: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	const q = `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.VehicleRepo.List: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.VehicleRepo.List: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.VehicleRepo.List: rows: %w", err)
	}

	total, err := count(ctx, r.db, domain.CollectionVehicles)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.VehicleRepo.List: count: %w", err)
	}
	return vehicles, total, nil
}

func (r *pgVehicleRepo) SetDriver(ctx context.Context, vehicleID, driverID uuid.UUID) (domain.Vehicle, error) {
	const q = `
		UPDATE vehicles
		SET driver_id = @driver_id
		WHERE id = @id
		RETURNING ` + vehicleColumns

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": vehicleID, "driver_id": driverID}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.SetDriver: %w", err)
	}
	return result, nil
}

func scanVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v        domain.Vehicle
		id       pgtype.UUID
		driverID pgtype.UUID
	)
	if err := s.Scan(&id, &v.Type, &v.Registration, &driverID, &v.CreatedAt); err != nil {
		return domain.Vehicle{}, mapErr(domain.CollectionVehicles, err)
	}
	v.ID = uuid.UUID(id.Bytes)
	v.DriverID = optionalUUID(driverID)
	return v, nil
}
