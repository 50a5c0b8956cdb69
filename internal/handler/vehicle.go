package handler

import (
	"net/http"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// CreateVehicle handles POST /api/vehicles.
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.fleet.CreateVehicle(r.Context(), domain.Vehicle{Type: req.Type, Registration: req.Registration})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVehicleResponse(created))
}

// ListVehicles handles GET /api/vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	p := pagination(r)
	vehicles, total, err := s.fleet.ListVehicles(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(vehicles, toVehicleResponse, p, total))
}

// GetVehicle handles GET /api/vehicles/{id}.
func (s *Server) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	v, err := s.fleet.GetVehicle(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleResponse(v))
}

// AssignDriver handles PUT /api/vehicles/{id}/assign_driver/{driverId}.
func (s *Server) AssignDriver(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	driverID, ok := pathID(w, r, "driverId")
	if !ok {
		return
	}

	v, err := s.fleet.AssignDriver(r.Context(), vehicleID, driverID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleResponse(v))
}
