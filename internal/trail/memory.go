// Package trail holds the non-Postgres trail stores used by the aggregator.
// The Postgres store lives in package repo with the other tables.
package trail

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/geo"
)

// MemoryStore keeps trails in a map and appends with the fetch-append-persist
// sequence: the read and the write are separate critical sections with no lock
// held between them. Two concurrent appends for the same trip can therefore
// overwrite each other and lose a sample. Use repo.TrailRepo or RedisStore
// when more than one message per trip may be in flight.
type MemoryStore struct {
	mu     sync.Mutex
	trails map[uuid.UUID]domain.Trail

	// afterLoad runs between the fetch and the persist. Tests use it to line
	// up concurrent appends.
	afterLoad func()
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trails: make(map[uuid.UUID]domain.Trail)}
}

// Append adds sample to the trip's trail, creating it when absent.
func (s *MemoryStore) Append(_ context.Context, meta domain.TrailMeta, sample domain.TelemetrySample) error {
	t, ok := s.load(meta.TripID)
	if !ok {
		t = domain.Trail{TrailMeta: meta}
	}
	if s.afterLoad != nil {
		s.afterLoad()
	}

	sample.Geohash = geo.Geohash(sample.Point)
	t.Samples = append(t.Samples, sample)
	t.Finished = t.Finished || sample.Finished

	s.mu.Lock()
	s.trails[meta.TripID] = t
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the trip's trail or domain.ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, tripID uuid.UUID) (domain.Trail, error) {
	t, ok := s.load(tripID)
	if !ok {
		return domain.Trail{}, fmt.Errorf("trail.MemoryStore.Get: %s: %w", domain.CollectionTrails, domain.ErrNotFound)
	}
	return t, nil
}

// MarkScored reports true the first time it is called for a trip.
func (s *MemoryStore) MarkScored(_ context.Context, tripID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trails[tripID]
	if !ok {
		return false, fmt.Errorf("trail.MemoryStore.MarkScored: %s: %w", domain.CollectionTrails, domain.ErrNotFound)
	}
	if t.Scored {
		return false, nil
	}
	t.Scored = true
	s.trails[tripID] = t
	return true, nil
}

func (s *MemoryStore) load(tripID uuid.UUID) (domain.Trail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trails[tripID]
	if !ok {
		return domain.Trail{}, false
	}
	t.Samples = slices.Clone(t.Samples)
	return t, true
}
