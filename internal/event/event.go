// Package event defines the JSON payloads exchanged between the gateway, the
// route simulator, and the telemetry aggregator. Field names are the wire
// contract and must not change.
package event

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// Kind is the closed set of event types carried by the transport.
type Kind int

const (
	KindTripStart Kind = iota
	KindTelemetry
	KindReward
)

// DefaultQueue returns the queue a kind travels on unless configured otherwise.
func (k Kind) DefaultQueue() string {
	switch k {
	case KindTripStart:
		return "trip_data"
	case KindTelemetry:
		return "gps_data"
	case KindReward:
		return "points"
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case KindTripStart:
		return "trip-start"
	case KindTelemetry:
		return "telemetry"
	case KindReward:
		return "reward"
	}
	return "unknown"
}

// TripStart is published by the gateway when a vehicle is assigned to a trip.
type TripStart struct {
	VehicleID   uuid.UUID        `json:"vehicle_id"`
	TripID      uuid.UUID        `json:"trip_id"`
	DriverID    uuid.UUID        `json:"driver_id"`
	Departure   *domain.GeoPoint `json:"depature_geo_point"`
	Destination *domain.GeoPoint `json:"destination_geo_point"`
}

// Validate reports a missing identity or endpoint.
func (e TripStart) Validate() error {
	if err := requireIDs(e.TripID, e.DriverID, e.VehicleID); err != nil {
		return err
	}
	if e.Departure == nil {
		return fmt.Errorf("%w: depature_geo_point is required", domain.ErrMalformedEvent)
	}
	if e.Destination == nil {
		return fmt.Errorf("%w: destination_geo_point is required", domain.ErrMalformedEvent)
	}
	return nil
}

// Meta returns the identities of the trip being simulated.
func (e TripStart) Meta() domain.TrailMeta {
	return domain.TrailMeta{TripID: e.TripID, DriverID: e.DriverID, VehicleID: e.VehicleID}
}

// Telemetry is one simulated GPS reading.
type Telemetry struct {
	Point     *domain.GeoPoint `json:"current_geo_point"`
	Speed     float64          `json:"speed"`
	DriverID  uuid.UUID        `json:"driver_id"`
	TripID    uuid.UUID        `json:"trip_id"`
	VehicleID uuid.UUID        `json:"vehicle_id"`
	Timestamp int64            `json:"timestamp"`
	Finished  bool             `json:"trip_finished,omitempty"`
}

// Validate reports a missing identity or position, or a negative speed.
func (e Telemetry) Validate() error {
	if err := requireIDs(e.TripID, e.DriverID, e.VehicleID); err != nil {
		return err
	}
	if e.Point == nil {
		return fmt.Errorf("%w: current_geo_point is required", domain.ErrMalformedEvent)
	}
	if e.Speed < 0 {
		return fmt.Errorf("%w: speed must not be negative", domain.ErrMalformedEvent)
	}
	return nil
}

// Meta returns the identities carried by the reading.
func (e Telemetry) Meta() domain.TrailMeta {
	return domain.TrailMeta{TripID: e.TripID, DriverID: e.DriverID, VehicleID: e.VehicleID}
}

// Sample converts the reading into the stored trail sample.
func (e Telemetry) Sample() domain.TelemetrySample {
	s := domain.TelemetrySample{Speed: e.Speed, Timestamp: e.Timestamp, Finished: e.Finished}
	if e.Point != nil {
		s.Point = *e.Point
	}
	return s
}

// Reward carries the points earned on a finished trip.
type Reward struct {
	Points   int       `json:"points"`
	TripID   uuid.UUID `json:"trip_id"`
	DriverID uuid.UUID `json:"driver_id"`
}

// Validate reports a missing identity or a negative point total.
func (e Reward) Validate() error {
	if e.TripID == uuid.Nil {
		return fmt.Errorf("%w: trip_id is required", domain.ErrMalformedEvent)
	}
	if e.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver_id is required", domain.ErrMalformedEvent)
	}
	if e.Points < 0 {
		return fmt.Errorf("%w: points must not be negative", domain.ErrMalformedEvent)
	}
	return nil
}

// Domain converts the payload into a domain.RewardEvent.
func (e Reward) Domain() domain.RewardEvent {
	return domain.RewardEvent{TripID: e.TripID, DriverID: e.DriverID, Points: e.Points}
}

// validator is implemented by every payload type.
type validator interface {
	Validate() error
}

// Decode unmarshals body into v and validates it. Both JSON errors and
// validation failures are reported as domain.ErrMalformedEvent.
func Decode[T validator](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}
	if err := v.Validate(); err != nil {
		return v, err
	}
	return v, nil
}

// Encode marshals any payload to JSON.
func Encode(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("event.Encode: %w", err)
	}
	return body, nil
}

func requireIDs(trip, driver, vehicle uuid.UUID) error {
	switch {
	case trip == uuid.Nil:
		return fmt.Errorf("%w: trip_id is required", domain.ErrMalformedEvent)
	case driver == uuid.Nil:
		return fmt.Errorf("%w: driver_id is required", domain.ErrMalformedEvent)
	case vehicle == uuid.Nil:
		return fmt.Errorf("%w: vehicle_id is required", domain.ErrMalformedEvent)
	}
	return nil
}
