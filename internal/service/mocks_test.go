package service_test

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/queue"
	"github.com/Admir-Walker/Fleet-Management-System/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs. An unset field panics, which flags an unexpected call.

type mockTripRepo struct {
	create        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list          func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	setVehicle    func(ctx context.Context, tripID, vehicleID uuid.UUID) (domain.Trip, error)
	markCompleted func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripRepo) SetVehicle(ctx context.Context, tripID, vehicleID uuid.UUID) (domain.Trip, error) {
	return m.setVehicle(ctx, tripID, vehicleID)
}
func (m *mockTripRepo) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	return m.markCompleted(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockVehicleRepo struct {
	create      func(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	getByDriver func(ctx context.Context, driverID uuid.UUID) (domain.Vehicle, error)
	list        func(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error)
	setDriver   func(ctx context.Context, vehicleID, driverID uuid.UUID) (domain.Vehicle, error)
}

func (m *mockVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return m.create(ctx, v)
}
func (m *mockVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	return m.getByID(ctx, id)
}
func (m *mockVehicleRepo) GetByDriver(ctx context.Context, driverID uuid.UUID) (domain.Vehicle, error) {
	return m.getByDriver(ctx, driverID)
}
func (m *mockVehicleRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	return m.list(ctx, p)
}
func (m *mockVehicleRepo) SetDriver(ctx context.Context, vehicleID, driverID uuid.UUID) (domain.Vehicle, error) {
	return m.setDriver(ctx, vehicleID, driverID)
}

var _ repo.VehicleRepo = (*mockVehicleRepo)(nil)

type mockDriverRepo struct {
	create    func(ctx context.Context, d domain.Driver) (domain.Driver, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	list      func(ctx context.Context, p domain.PaginationParams) ([]domain.Driver, int64, error)
	addPoints func(ctx context.Context, id uuid.UUID, points int) (domain.Driver, error)
}

func (m *mockDriverRepo) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	return m.create(ctx, d)
}
func (m *mockDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.getByID(ctx, id)
}
func (m *mockDriverRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Driver, int64, error) {
	return m.list(ctx, p)
}
func (m *mockDriverRepo) AddPoints(ctx context.Context, id uuid.UUID, points int) (domain.Driver, error) {
	return m.addPoints(ctx, id, points)
}

var _ repo.DriverRepo = (*mockDriverRepo)(nil)

type mockPublisher struct {
	publish func(ctx context.Context, queue string, body []byte) error
}

func (m *mockPublisher) Publish(ctx context.Context, queue string, body []byte) error {
	return m.publish(ctx, queue, body)
}

var _ queue.Publisher = (*mockPublisher)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
