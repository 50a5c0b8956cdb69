package domain

import "github.com/google/uuid"

// TelemetrySample is one observation of a vehicle in motion.
// Timestamp is in epoch seconds. Samples are immutable once emitted.
type TelemetrySample struct {
	Point     GeoPoint `json:"current_geo_point"`
	Speed     float64  `json:"speed"`
	Timestamp int64    `json:"timestamp"`
	Finished  bool     `json:"trip_finished,omitempty"`

	// Geohash is the cell of Point, filled in by the trail store on append.
	Geohash string `json:"geohash,omitempty"`
}

// TrailMeta carries the identities attached to every sample of a trip.
type TrailMeta struct {
	TripID    uuid.UUID
	DriverID  uuid.UUID
	VehicleID uuid.UUID
}

// Trail is the accumulated telemetry for one trip, in arrival order.
// Once a finished sample has been appended the trail is closed.
type Trail struct {
	TrailMeta
	Samples  []TelemetrySample
	Finished bool
	Scored   bool
}

// RewardEvent is the computed point total for a finished trip.
type RewardEvent struct {
	TripID   uuid.UUID
	DriverID uuid.UUID
	Points   int
}
