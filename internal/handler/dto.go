package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// Request and response shapes mirror api/openapi.yaml.

type healthResponse struct {
	Status string `json:"status"`
}

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type listResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination paginationMeta `json:"pagination"`
}

func newList[S, T any](items []S, conv func(S) T, p domain.PaginationParams, total int64) listResponse[T] {
	data := make([]T, len(items))
	for i, it := range items {
		data[i] = conv(it)
	}
	return listResponse[T]{
		Data:       data,
		Pagination: paginationMeta{Page: p.Page, Limit: p.Limit, Total: total},
	}
}

type geoPoint struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type driverRequest struct {
	FullName string `json:"full_name"`
}

type driverResponse struct {
	ID        openapi_types.UUID `json:"id"`
	FullName  string             `json:"full_name"`
	Points    int                `json:"points"`
	CreatedAt time.Time          `json:"created_at"`
}

func toDriverResponse(d domain.Driver) driverResponse {
	return driverResponse{ID: d.ID, FullName: d.FullName, Points: d.Points, CreatedAt: d.CreatedAt}
}

type vehicleRequest struct {
	Type         string `json:"type"`
	Registration string `json:"registration"`
}

type vehicleResponse struct {
	ID           openapi_types.UUID  `json:"id"`
	Type         string              `json:"type"`
	Registration string              `json:"registration"`
	DriverID     *openapi_types.UUID `json:"driver_id"`
	CreatedAt    time.Time           `json:"created_at"`
}

func toVehicleResponse(v domain.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:           v.ID,
		Type:         v.Type,
		Registration: v.Registration,
		DriverID:     optionalID(v.DriverID),
		CreatedAt:    v.CreatedAt,
	}
}

type tripRequest struct {
	Departure   *geoPoint `json:"depature_geo_point"`
	Destination *geoPoint `json:"destination_geo_point"`
}

type tripResponse struct {
	ID          openapi_types.UUID  `json:"id"`
	Departure   geoPoint            `json:"depature_geo_point"`
	Destination geoPoint            `json:"destination_geo_point"`
	VehicleID   *openapi_types.UUID `json:"vehicle_id"`
	Completed   bool                `json:"trip_completed"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toTripResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:          t.ID,
		Departure:   geoPoint(t.Departure),
		Destination: geoPoint(t.Destination),
		VehicleID:   optionalID(t.VehicleID),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func optionalID(id *uuid.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	v := openapi_types.UUID(*id)
	return &v
}
