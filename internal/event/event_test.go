package event_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/event"
)

func TestTripStart_WireFieldNames(t *testing.T) {
	ev := event.TripStart{
		VehicleID:   uuid.New(),
		TripID:      uuid.New(),
		DriverID:    uuid.New(),
		Departure:   &domain.GeoPoint{Lat: 0, Long: 0},
		Destination: &domain.GeoPoint{Lat: 0, Long: 1},
	}

	body, err := event.Encode(ev)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, ev.TripID.String(), raw["trip_id"])
	assert.Equal(t, ev.VehicleID.String(), raw["vehicle_id"])
	assert.Equal(t, ev.DriverID.String(), raw["driver_id"])
	assert.Equal(t, map[string]any{"lat": 0.0, "long": 0.0}, raw["depature_geo_point"])
	assert.Equal(t, map[string]any{"lat": 0.0, "long": 1.0}, raw["destination_geo_point"])
}

func TestTelemetry_FinishedOmittedUnlessSet(t *testing.T) {
	ev := event.Telemetry{Point: &domain.GeoPoint{}, TripID: uuid.New(), DriverID: uuid.New(), VehicleID: uuid.New()}

	body, err := event.Encode(ev)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "trip_finished")

	ev.Finished = true
	body, err = event.Encode(ev)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"trip_finished":true`)
}

func TestDecode_Telemetry(t *testing.T) {
	trip, driver, vehicle := uuid.New(), uuid.New(), uuid.New()
	body := []byte(`{"current_geo_point":{"lat":1.5,"long":2.5},"speed":88,` +
		`"driver_id":"` + driver.String() + `","trip_id":"` + trip.String() +
		`","vehicle_id":"` + vehicle.String() + `","timestamp":1700000000,"trip_finished":true}`)

	got, err := event.Decode[event.Telemetry](body)

	require.NoError(t, err)
	assert.Equal(t, trip, got.TripID)
	assert.Equal(t, domain.TelemetrySample{
		Point:     domain.GeoPoint{Lat: 1.5, Long: 2.5},
		Speed:     88,
		Timestamp: 1700000000,
		Finished:  true,
	}, got.Sample())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"bad uuid", `{"trip_id":"T1"}`},
		{"missing ids", `{"current_geo_point":{"lat":0,"long":0},"speed":1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := event.Decode[event.Telemetry]([]byte(tc.body))
			assert.ErrorIs(t, err, domain.ErrMalformedEvent)
		})
	}
}

func TestTripStart_Validate_MissingEndpoint(t *testing.T) {
	ev := event.TripStart{VehicleID: uuid.New(), TripID: uuid.New(), DriverID: uuid.New(), Departure: &domain.GeoPoint{}}

	err := ev.Validate()

	assert.ErrorIs(t, err, domain.ErrMalformedEvent)
	assert.ErrorContains(t, err, "destination_geo_point")
}

func TestReward_Validate(t *testing.T) {
	ok := event.Reward{Points: 20, TripID: uuid.New(), DriverID: uuid.New()}
	assert.NoError(t, ok.Validate())

	neg := ok
	neg.Points = -1
	assert.ErrorIs(t, neg.Validate(), domain.ErrMalformedEvent)

	noDriver := ok
	noDriver.DriverID = uuid.Nil
	assert.ErrorIs(t, noDriver.Validate(), domain.ErrMalformedEvent)
}

func TestKind_DefaultQueue(t *testing.T) {
	assert.Equal(t, "trip_data", event.KindTripStart.DefaultQueue())
	assert.Equal(t, "gps_data", event.KindTelemetry.DefaultQueue())
	assert.Equal(t, "points", event.KindReward.DefaultQueue())
}
