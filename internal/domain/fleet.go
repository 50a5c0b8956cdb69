package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is a fleet vehicle. DriverID is nil when no driver is assigned.
type Vehicle struct {
	ID           uuid.UUID
	Type         string
	Registration string
	DriverID     *uuid.UUID
	CreatedAt    time.Time
}

// Driver holds the accumulated reward balance. Points is never negative.
type Driver struct {
	ID        uuid.UUID
	FullName  string
	Points    int
	CreatedAt time.Time
}

// Collection is the closed set of persisted resource kinds.
type Collection int

const (
	CollectionDrivers Collection = iota
	CollectionVehicles
	CollectionTrips
	CollectionTrails
)

// Table returns the storage name for the collection.
func (c Collection) Table() string {
	switch c {
	case CollectionDrivers:
		return "drivers"
	case CollectionVehicles:
		return "vehicles"
	case CollectionTrips:
		return "trips"
	case CollectionTrails:
		return "trails"
	}
	return "unknown"
}

// String returns the singular resource name used in error messages.
func (c Collection) String() string {
	switch c {
	case CollectionDrivers:
		return "driver"
	case CollectionVehicles:
		return "vehicle"
	case CollectionTrips:
		return "trip"
	case CollectionTrails:
		return "trail"
	}
	return "resource"
}
