package handler

import (
	"net/http"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Departure == nil || req.Destination == nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error",
			"depature_geo_point and destination_geo_point are required")
		return
	}

	created, err := s.fleet.CreateTrip(r.Context(), domain.Trip{
		Departure:   domain.GeoPoint(*req.Departure),
		Destination: domain.GeoPoint(*req.Destination),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTripResponse(created))
}

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	p := pagination(r)
	trips, total, err := s.fleet.ListTrips(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(trips, toTripResponse, p, total))
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	t, err := s.fleet.GetTrip(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(t))
}

// AssignVehicle handles PUT /api/trips/{id}/assign_vehicle/{vehicleId}.
// On success the trip-start event has already been published.
func (s *Server) AssignVehicle(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	vehicleID, ok := pathID(w, r, "vehicleId")
	if !ok {
		return
	}

	t, err := s.dispatch.AssignVehicle(r.Context(), tripID, vehicleID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(t))
}
