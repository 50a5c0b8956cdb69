package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/repo"
)

// FleetService manages drivers, vehicles, and trips.
type FleetService struct {
	drivers  repo.DriverRepo
	vehicles repo.VehicleRepo
	trips    repo.TripRepo
}

// NewFleetService constructs a FleetService backed by the provided repos.
func NewFleetService(drivers repo.DriverRepo, vehicles repo.VehicleRepo, trips repo.TripRepo) *FleetService {
	return &FleetService{drivers: drivers, vehicles: vehicles, trips: trips}
}

// CreateDriver persists a new driver with a zero balance.
// Returns domain.ErrValidation when the full name is blank.
func (s *FleetService) CreateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	d.FullName = strings.TrimSpace(d.FullName)
	if d.FullName == "" {
		return domain.Driver{}, fmt.Errorf("%w: full_name is required", domain.ErrValidation)
	}
	d.Points = 0

	result, err := s.drivers.Create(ctx, d)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.FleetService.CreateDriver: %w", err)
	}
	return result, nil
}

func (s *FleetService) GetDriver(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	result, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.FleetService.GetDriver: %w", err)
	}
	return result, nil
}

// ListDrivers returns one page of drivers. The slice is never nil.
func (s *FleetService) ListDrivers(ctx context.Context, p domain.PaginationParams) ([]domain.Driver, int64, error) {
	drivers, total, err := s.drivers.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.FleetService.ListDrivers: %w", err)
	}
	if drivers == nil {
		drivers = []domain.Driver{}
	}
	return drivers, total, nil
}

// CreateVehicle persists a new vehicle without a driver.
// Returns domain.ErrValidation when type or registration is blank.
func (s *FleetService) CreateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	v.Type = strings.TrimSpace(v.Type)
	v.Registration = strings.TrimSpace(v.Registration)
	switch {
	case v.Type == "":
		return domain.Vehicle{}, fmt.Errorf("%w: type is required", domain.ErrValidation)
	case v.Registration == "":
		return domain.Vehicle{}, fmt.Errorf("%w: registration is required", domain.ErrValidation)
	}
	v.DriverID = nil

	result, err := s.vehicles.Create(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.FleetService.CreateVehicle: %w", err)
	}
	return result, nil
}

func (s *FleetService) GetVehicle(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	result, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.FleetService.GetVehicle: %w", err)
	}
	return result, nil
}

// ListVehicles returns one page of vehicles. The slice is never nil.
func (s *FleetService) ListVehicles(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	vehicles, total, err := s.vehicles.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.FleetService.ListVehicles: %w", err)
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return vehicles, total, nil
}

// AssignDriver gives the vehicle to the driver.
//   - domain.ErrNotFound if the vehicle or driver does not exist.
//   - domain.ErrConflict if the vehicle already has a driver or the driver
//     already holds another vehicle.
func (s *FleetService) AssignDriver(ctx context.Context, vehicleID, driverID uuid.UUID) (domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.FleetService.AssignDriver: %w", err)
	}
	if vehicle.DriverID != nil {
		return domain.Vehicle{}, fmt.Errorf("%w: vehicle %s already has a driver", domain.ErrConflict, vehicleID)
	}

	if _, err := s.drivers.GetByID(ctx, driverID); err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.FleetService.AssignDriver: %w", err)
	}

	held, err := s.vehicles.GetByDriver(ctx, driverID)
	switch {
	case err == nil:
		return domain.Vehicle{}, fmt.Errorf("%w: driver %s already holds vehicle %s", domain.ErrConflict, driverID, held.ID)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Vehicle{}, fmt.Errorf("service.FleetService.AssignDriver: %w", err)
	}

	result, err := s.vehicles.SetDriver(ctx, vehicleID, driverID)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.FleetService.AssignDriver: %w", err)
	}
	return result, nil
}

// CreateTrip persists a new, unassigned trip.
// Returns domain.ErrValidation when either endpoint is out of range.
func (s *FleetService) CreateTrip(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	if err := t.Departure.Validate(); err != nil {
		return domain.Trip{}, fmt.Errorf("depature_geo_point: %w", err)
	}
	if err := t.Destination.Validate(); err != nil {
		return domain.Trip{}, fmt.Errorf("destination_geo_point: %w", err)
	}
	t.VehicleID = nil
	t.Completed = false

	result, err := s.trips.Create(ctx, t)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.FleetService.CreateTrip: %w", err)
	}
	return result, nil
}

func (s *FleetService) GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.FleetService.GetTrip: %w", err)
	}
	return result, nil
}

// ListTrips returns one page of trips. The slice is never nil.
func (s *FleetService) ListTrips(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.FleetService.ListTrips: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}
