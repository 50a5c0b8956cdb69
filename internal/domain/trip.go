// Package domain contains the core data types shared by the gateway, the
// route simulator, and the telemetry aggregator.
// This package has no infrastructure dependencies and is imported by every
// other internal package.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GeoPoint is a position in decimal degrees.
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Validate reports whether the point lies within the valid coordinate range.
func (p GeoPoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrValidation, p.Lat)
	}
	if p.Long < -180 || p.Long > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrValidation, p.Long)
	}
	return nil
}

// Trip is a planned journey between two points.
// VehicleID is nil until a vehicle has been assigned. Completed flips to true
// once the driver has been credited for the trip and never flips back.
type Trip struct {
	ID          uuid.UUID
	Departure   GeoPoint
	Destination GeoPoint
	VehicleID   *uuid.UUID
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
