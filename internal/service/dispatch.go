// Package service contains the business logic for the fleet gateway.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/event"
	"github.com/Admir-Walker/Fleet-Management-System/internal/queue"
	"github.com/Admir-Walker/Fleet-Management-System/internal/repo"
)

// DispatchService starts trips and credits drivers for finished ones.
type DispatchService struct {
	trips     repo.TripRepo
	vehicles  repo.VehicleRepo
	drivers   repo.DriverRepo
	pub       queue.Publisher
	tripQueue string
	log       *slog.Logger
}

// NewDispatchService constructs a DispatchService that publishes trip-start
// events to tripQueue.
func NewDispatchService(
	trips repo.TripRepo,
	vehicles repo.VehicleRepo,
	drivers repo.DriverRepo,
	pub queue.Publisher,
	tripQueue string,
	log *slog.Logger,
) *DispatchService {
	return &DispatchService{
		trips:     trips,
		vehicles:  vehicles,
		drivers:   drivers,
		pub:       pub,
		tripQueue: tripQueue,
		log:       log,
	}
}

// AssignVehicle links the vehicle to the trip and publishes a trip-start
// event for the simulator.
//
// Every check runs before the first write, so a NotFound or Conflict leaves
// the trip untouched. The link is persisted before the event is published;
// a publish failure is returned with the link already in place.
func (s *DispatchService) AssignVehicle(ctx context.Context, tripID, vehicleID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.DispatchService.AssignVehicle: %w", err)
	}
	if trip.Completed {
		return domain.Trip{}, fmt.Errorf("%w: trip %s is already completed", domain.ErrConflict, tripID)
	}

	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.DispatchService.AssignVehicle: %w", err)
	}
	if vehicle.DriverID == nil {
		return domain.Trip{}, fmt.Errorf("%w: vehicle %s has no driver", domain.ErrConflict, vehicleID)
	}

	updated, err := s.trips.SetVehicle(ctx, tripID, vehicleID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.DispatchService.AssignVehicle: %w", err)
	}

	body, err := event.Encode(event.TripStart{
		VehicleID:   vehicleID,
		TripID:      tripID,
		DriverID:    *vehicle.DriverID,
		Departure:   &updated.Departure,
		Destination: &updated.Destination,
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.DispatchService.AssignVehicle: %w", err)
	}
	if err := s.pub.Publish(ctx, s.tripQueue, body); err != nil {
		return domain.Trip{}, fmt.Errorf("service.DispatchService.AssignVehicle: publish: %w", err)
	}

	s.log.Info("trip dispatched", "trip_id", tripID, "vehicle_id", vehicleID, "driver_id", *vehicle.DriverID)
	return updated, nil
}

// Credit adds the reward to the driver's balance and marks the trip
// completed. The balance update is a single atomic increment, so concurrent
// rewards for one driver are never lost.
func (s *DispatchService) Credit(ctx context.Context, r domain.RewardEvent) error {
	driver, err := s.drivers.AddPoints(ctx, r.DriverID, r.Points)
	if err != nil {
		return fmt.Errorf("service.DispatchService.Credit: %w", err)
	}
	if err := s.trips.MarkCompleted(ctx, r.TripID); err != nil {
		return fmt.Errorf("service.DispatchService.Credit: %w", err)
	}

	s.log.Info("driver credited",
		"trip_id", r.TripID,
		"driver_id", r.DriverID,
		"points", r.Points,
		"balance", driver.Points,
	)
	return nil
}

// HandleReward is the queue.Handler for reward events.
func (s *DispatchService) HandleReward(ctx context.Context, body []byte) error {
	r, err := event.Decode[event.Reward](body)
	if err != nil {
		return fmt.Errorf("service.DispatchService.HandleReward: %w", err)
	}
	return s.Credit(ctx, r.Domain())
}
