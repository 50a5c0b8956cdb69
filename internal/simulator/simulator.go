// Package simulator turns a trip-start event into a paced stream of noisy
// telemetry samples that ends at the trip's destination.
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/event"
	"github.com/Admir-Walker/Fleet-Management-System/internal/queue"
)

const (
	// DefaultMinSamples and DefaultMaxSamples bound the total number of
	// samples per trip, first and last included.
	DefaultMinSamples = 5
	DefaultMaxSamples = 10

	minCruiseSpeed = 50
	maxCruiseSpeed = 120
	maxSpeedDelta  = 5
)

// Simulator publishes telemetry for every trip it is started on. Trips run
// on independent goroutines and share nothing but the random source.
type Simulator struct {
	pub      queue.Publisher
	queue    string
	interval time.Duration
	min, max int
	now      func() time.Time
	log      *slog.Logger

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand

	wg sync.WaitGroup
}

// Option customises a Simulator.
type Option func(*Simulator)

// WithRand replaces the random source. Tests pass a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rnd = r }
}

// WithClock replaces time.Now for sample timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// WithSampleRange overrides the bounds of the per-trip sample count.
func WithSampleRange(min, max int) Option {
	return func(s *Simulator) { s.min, s.max = min, max }
}

// New returns a Simulator that publishes to queueName and sleeps interval
// after every sample. A zero interval disables pacing.
func New(pub queue.Publisher, queueName string, interval time.Duration, log *slog.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		pub:      pub,
		queue:    queueName,
		interval: interval,
		min:      DefaultMinSamples,
		max:      DefaultMaxSamples,
		now:      time.Now,
		log:      log,
		rnd:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle is the queue.Handler for trip-start events.
func (s *Simulator) Handle(ctx context.Context, body []byte) error {
	start, err := event.Decode[event.TripStart](body)
	if err != nil {
		return fmt.Errorf("simulator.Handle: %w", err)
	}
	s.Start(ctx, start)
	return nil
}

// Start runs the simulation for start on its own goroutine and returns
// immediately. Failures are logged; the rest of that trip is abandoned.
func (s *Simulator) Start(ctx context.Context, start event.TripStart) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Run(ctx, start); err != nil {
			s.log.Error("simulation aborted", "trip_id", start.TripID, "error", err)
		}
	}()
}

// Wait blocks until every started simulation has returned.
func (s *Simulator) Wait() {
	s.wg.Wait()
}

// Run emits the full sample sequence for one trip and blocks until the last
// pacing interval has elapsed. The first sample sits at the departure with
// speed 0; the last sits exactly at the destination with speed 0 and the
// finished flag. A publish failure stops the trip.
func (s *Simulator) Run(ctx context.Context, start event.TripStart) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("simulator.Run: %w", err)
	}

	n := s.intn(s.min, s.max)
	pos, dest := *start.Departure, *start.Destination

	if err := s.emit(ctx, start, pos, 0, false); err != nil {
		return err
	}

	speed := float64(s.intn(minCruiseSpeed, maxCruiseSpeed))
	for range n - 2 {
		pos = s.step(pos, dest, n)
		speed = max(0, speed+s.sign()*float64(s.intn(1, maxSpeedDelta)))
		if err := s.emit(ctx, start, pos, speed, false); err != nil {
			return err
		}
	}

	if err := s.emit(ctx, start, dest, 0, true); err != nil {
		return err
	}
	s.log.Info("simulation finished", "trip_id", start.TripID, "samples", n)
	return nil
}

// step moves pos by a randomly signed fraction of the coordinates, scaled
// down by the sample count. The walk is deliberately noisy.
func (s *Simulator) step(pos, dest domain.GeoPoint, n int) domain.GeoPoint {
	pos.Lat += ((pos.Lat + s.sign()*dest.Lat) / float64(n)) / 10
	pos.Long += ((pos.Long + s.sign()*dest.Long) / float64(n)) / 10
	return pos
}

func (s *Simulator) emit(ctx context.Context, start event.TripStart, p domain.GeoPoint, speed float64, finished bool) error {
	body, err := event.Encode(event.Telemetry{
		Point:     &p,
		Speed:     speed,
		DriverID:  start.DriverID,
		TripID:    start.TripID,
		VehicleID: start.VehicleID,
		Timestamp: s.now().Unix(),
		Finished:  finished,
	})
	if err != nil {
		return fmt.Errorf("simulator.emit: %w", err)
	}
	if err := s.pub.Publish(ctx, s.queue, body); err != nil {
		return fmt.Errorf("simulator.emit: publish: %w", err)
	}
	return s.pace(ctx)
}

func (s *Simulator) pace(ctx context.Context) error {
	if s.interval <= 0 {
		return nil
	}
	t := time.NewTimer(s.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("simulator.pace: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

// intn returns a uniform integer in [lo, hi].
func (s *Simulator) intn(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rnd.IntN(hi-lo+1)
}

func (s *Simulator) sign() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rnd.Float64() < 0.5 {
		return 1
	}
	return -1
}
