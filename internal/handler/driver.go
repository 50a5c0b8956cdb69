package handler

import (
	"net/http"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// CreateDriver handles POST /api/drivers.
func (s *Server) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req driverRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.fleet.CreateDriver(r.Context(), domain.Driver{FullName: req.FullName})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDriverResponse(created))
}

// ListDrivers handles GET /api/drivers.
func (s *Server) ListDrivers(w http.ResponseWriter, r *http.Request) {
	p := pagination(r)
	drivers, total, err := s.fleet.ListDrivers(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(drivers, toDriverResponse, p, total))
}

// GetDriver handles GET /api/drivers/{id}.
func (s *Server) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := s.fleet.GetDriver(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDriverResponse(d))
}
