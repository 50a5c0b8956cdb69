// Package handler implements the HTTP surface of the fleet gateway.
// Handlers are methods on Server, split into resource files (driver.go,
// vehicle.go, trip.go) that share the same dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// FleetServicer defines the CRUD operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type FleetServicer interface {
	CreateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error)
	GetDriver(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	ListDrivers(ctx context.Context, p domain.PaginationParams) ([]domain.Driver, int64, error)

	CreateVehicle(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	GetVehicle(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	ListVehicles(ctx context.Context, p domain.PaginationParams) ([]domain.Vehicle, int64, error)
	AssignDriver(ctx context.Context, vehicleID, driverID uuid.UUID) (domain.Vehicle, error)

	CreateTrip(ctx context.Context, t domain.Trip) (domain.Trip, error)
	GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListTrips(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

// DispatchServicer starts a trip by assigning a vehicle to it.
type DispatchServicer interface {
	AssignVehicle(ctx context.Context, tripID, vehicleID uuid.UUID) (domain.Trip, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	fleet    FleetServicer
	dispatch DispatchServicer
	openAPI  []byte
	log      *slog.Logger
}

// NewServer constructs the Server. openAPI is served verbatim at /openapi.yaml.
func NewServer(fleet FleetServicer, dispatch DispatchServicer, openAPI []byte, log *slog.Logger) *Server {
	return &Server{fleet: fleet, dispatch: dispatch, openAPI: openAPI, log: log}
}

// Routes returns a chi router with every endpoint registered. Cross-cutting
// middleware is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/drivers", func(r chi.Router) {
			r.Post("/", s.CreateDriver)
			r.Get("/", s.ListDrivers)
			r.Get("/{id}", s.GetDriver)
		})
		r.Route("/vehicles", func(r chi.Router) {
			r.Post("/", s.CreateVehicle)
			r.Get("/", s.ListVehicles)
			r.Get("/{id}", s.GetVehicle)
			r.Put("/{id}/assign_driver/{driverId}", s.AssignDriver)
		})
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)
			r.Get("/{id}", s.GetTrip)
			r.Put("/{id}/assign_vehicle/{vehicleId}", s.AssignVehicle)
		})
	})

	return r
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.openAPI)
}
