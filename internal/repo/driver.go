package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// DriverRepo defines the persistence operations for Drivers.
type DriverRepo interface {
	Create(ctx context.Context, d domain.Driver) (domain.Driver, error)

	// GetByID returns domain.ErrNotFound if no driver with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)

	List(ctx context.Context, p domain.PaginationParams) ([]domain.Driver, int64, error)

	// AddPoints increments the balance in a single statement and returns the
	// updated driver. Concurrent rewards for one driver never lose an increment.
	AddPoints(ctx context.Context, id uuid.UUID, points int) (domain.Driver, error)
}

type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

const driverColumns = `id, full_name, points, created_at`

func (r *pgDriverRepo) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	const q = `
		INSERT INTO drivers (full_name, points)
		VALUES (@full_name, @points)
		RETURNING ` + driverColumns

	result, err := scanDriver(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"full_name": d.FullName,
		"points":    d.Points,
	}))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	const q = `SELECT ` + driverColumns + ` FROM drivers WHERE id = @id`

	result, err := scanDriver(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Driver, int64, error) {
	const q = `
		SELECT ` + driverColumns + `
		FROM drivers
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DriverRepo.List: %w", err)
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.DriverRepo.List: scan: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.DriverRepo.List: rows: %w", err)
	}

	total, err := count(ctx, r.db, domain.CollectionDrivers)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DriverRepo.List: count: %w", err)
	}
	return drivers, total, nil
}

func (r *pgDriverRepo) AddPoints(ctx context.Context, id uuid.UUID, points int) (domain.Driver, error) {
	const q = `
		UPDATE drivers
		SET points = points + @points
		WHERE id = @id
		RETURNING ` + driverColumns

	result, err := scanDriver(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "points": points}))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.AddPoints: %w", err)
	}
	return result, nil
}

func scanDriver(s scanner) (domain.Driver, error) {
	var (
		d  domain.Driver
		id pgtype.UUID
	)
	if err := s.Scan(&id, &d.FullName, &d.Points, &d.CreatedAt); err != nil {
		return domain.Driver{}, mapErr(domain.CollectionDrivers, err)
	}
	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
