package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/service"
)

func newFleet(d *mockDriverRepo, v *mockVehicleRepo, tr *mockTripRepo) *service.FleetService {
	if d == nil {
		d = &mockDriverRepo{}
	}
	if v == nil {
		v = &mockVehicleRepo{}
	}
	if tr == nil {
		tr = &mockTripRepo{}
	}
	return service.NewFleetService(d, v, tr)
}

// ---- Drivers ---------------------------------------------------------------

func TestFleetService_CreateDriver_TrimsAndZeroesPoints(t *testing.T) {
	drivers := &mockDriverRepo{create: func(_ context.Context, d domain.Driver) (domain.Driver, error) {
		d.ID = uuid.New()
		return d, nil
	}}
	svc := newFleet(drivers, nil, nil)

	got, err := svc.CreateDriver(context.Background(), domain.Driver{FullName: "  Amra Hodzic ", Points: 99})

	require.NoError(t, err)
	assert.Equal(t, "Amra Hodzic", got.FullName)
	assert.Zero(t, got.Points, "new drivers always start at zero")
}

func TestFleetService_CreateDriver_NameRequired(t *testing.T) {
	svc := newFleet(nil, nil, nil)

	_, err := svc.CreateDriver(context.Background(), domain.Driver{FullName: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFleetService_ListDrivers_NeverNil(t *testing.T) {
	drivers := &mockDriverRepo{list: func(context.Context, domain.PaginationParams) ([]domain.Driver, int64, error) {
		return nil, 0, nil
	}}
	svc := newFleet(drivers, nil, nil)

	got, total, err := svc.ListDrivers(context.Background(), domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Zero(t, total)
}

func TestFleetService_GetDriver_NotFound(t *testing.T) {
	drivers := &mockDriverRepo{getByID: func(context.Context, uuid.UUID) (domain.Driver, error) {
		return domain.Driver{}, domain.ErrNotFound
	}}

	_, err := newFleet(drivers, nil, nil).GetDriver(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Vehicles --------------------------------------------------------------

func TestFleetService_CreateVehicle_Validation(t *testing.T) {
	svc := newFleet(nil, nil, nil)

	for _, v := range []domain.Vehicle{
		{Type: "", Registration: "A12-B-345"},
		{Type: "truck", Registration: " "},
	} {
		_, err := svc.CreateVehicle(context.Background(), v)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestFleetService_CreateVehicle_DropsDriver(t *testing.T) {
	vehicles := &mockVehicleRepo{create: func(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
		return v, nil
	}}
	driverID := uuid.New()

	got, err := newFleet(nil, vehicles, nil).CreateVehicle(context.Background(),
		domain.Vehicle{Type: "van", Registration: "K01-J-999", DriverID: &driverID})

	require.NoError(t, err)
	assert.Nil(t, got.DriverID, "drivers are linked through AssignDriver only")
}

func TestFleetService_AssignDriver_OK(t *testing.T) {
	vehicleID, driverID := uuid.New(), uuid.New()
	vehicles := &mockVehicleRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Vehicle, error) { return domain.Vehicle{ID: id}, nil },
		getByDriver: func(context.Context, uuid.UUID) (domain.Vehicle, error) {
			return domain.Vehicle{}, domain.ErrNotFound
		},
		setDriver: func(_ context.Context, vid, did uuid.UUID) (domain.Vehicle, error) {
			return domain.Vehicle{ID: vid, DriverID: &did}, nil
		},
	}
	drivers := &mockDriverRepo{getByID: func(_ context.Context, id uuid.UUID) (domain.Driver, error) {
		return domain.Driver{ID: id}, nil
	}}

	got, err := newFleet(drivers, vehicles, nil).AssignDriver(context.Background(), vehicleID, driverID)

	require.NoError(t, err)
	require.NotNil(t, got.DriverID)
	assert.Equal(t, driverID, *got.DriverID)
}

func TestFleetService_AssignDriver_Failures(t *testing.T) {
	someone := uuid.New()
	errDB := errors.New("db down")
	free := func(_ context.Context, id uuid.UUID) (domain.Vehicle, error) { return domain.Vehicle{ID: id}, nil }
	driverExists := func(_ context.Context, id uuid.UUID) (domain.Driver, error) { return domain.Driver{ID: id}, nil }

	tests := []struct {
		name        string
		getVehicle  func(context.Context, uuid.UUID) (domain.Vehicle, error)
		getDriver   func(context.Context, uuid.UUID) (domain.Driver, error)
		getByDriver func(context.Context, uuid.UUID) (domain.Vehicle, error)
		wantErr     error
	}{
		{
			name:       "vehicle not found",
			getVehicle: func(context.Context, uuid.UUID) (domain.Vehicle, error) { return domain.Vehicle{}, domain.ErrNotFound },
			wantErr:    domain.ErrNotFound,
		},
		{
			name: "vehicle already has a driver",
			getVehicle: func(_ context.Context, id uuid.UUID) (domain.Vehicle, error) {
				return domain.Vehicle{ID: id, DriverID: &someone}, nil
			},
			wantErr: domain.ErrConflict,
		},
		{
			name:       "driver not found",
			getVehicle: free,
			getDriver:  func(context.Context, uuid.UUID) (domain.Driver, error) { return domain.Driver{}, domain.ErrNotFound },
			wantErr:    domain.ErrNotFound,
		},
		{
			name:       "driver already holds a vehicle",
			getVehicle: free,
			getDriver:  driverExists,
			getByDriver: func(context.Context, uuid.UUID) (domain.Vehicle, error) {
				return domain.Vehicle{ID: uuid.New()}, nil
			},
			wantErr: domain.ErrConflict,
		},
		{
			name:       "lookup error",
			getVehicle: free,
			getDriver:  driverExists,
			getByDriver: func(context.Context, uuid.UUID) (domain.Vehicle, error) {
				return domain.Vehicle{}, errDB
			},
			wantErr: errDB,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vehicles := &mockVehicleRepo{
				getByID:     tc.getVehicle,
				getByDriver: tc.getByDriver,
				setDriver: func(context.Context, uuid.UUID, uuid.UUID) (domain.Vehicle, error) {
					t.Fatal("SetDriver must not be called when a check fails")
					return domain.Vehicle{}, nil
				},
			}
			svc := newFleet(&mockDriverRepo{getByID: tc.getDriver}, vehicles, nil)

			_, err := svc.AssignDriver(context.Background(), uuid.New(), uuid.New())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// ---- Trips -----------------------------------------------------------------

func TestFleetService_CreateTrip_OK(t *testing.T) {
	trips := &mockTripRepo{create: func(_ context.Context, tr domain.Trip) (domain.Trip, error) {
		tr.ID = uuid.New()
		return tr, nil
	}}
	vehicleID := uuid.New()

	got, err := newFleet(nil, nil, trips).CreateTrip(context.Background(), domain.Trip{
		Departure:   domain.GeoPoint{Lat: 43.85, Long: 18.41},
		Destination: domain.GeoPoint{Lat: 45.81, Long: 15.98},
		VehicleID:   &vehicleID,
		Completed:   true,
	})

	require.NoError(t, err)
	assert.Nil(t, got.VehicleID, "vehicles are linked through AssignVehicle only")
	assert.False(t, got.Completed)
}

func TestFleetService_CreateTrip_InvalidPoint(t *testing.T) {
	svc := newFleet(nil, nil, nil)

	_, err := svc.CreateTrip(context.Background(), domain.Trip{
		Departure:   domain.GeoPoint{Lat: 91},
		Destination: domain.GeoPoint{},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateTrip(context.Background(), domain.Trip{
		Departure:   domain.GeoPoint{},
		Destination: domain.GeoPoint{Long: -181},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFleetService_ListTrips_PassesPagination(t *testing.T) {
	want := domain.PaginationParams{Page: 3, Limit: 5}
	trips := &mockTripRepo{list: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
		assert.Equal(t, want, p)
		return []domain.Trip{{ID: uuid.New()}}, 11, nil
	}}

	got, total, err := newFleet(nil, nil, trips).ListTrips(context.Background(), want)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(11), total)
}
