package trail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/geo"
)

// RedisStore keeps each trail under three keys:
//
//	trail:<trip>:samples  list of JSON samples, appended with RPUSH
//	trail:<trip>:meta     hash of driver_id, vehicle_id, finished
//	trail:<trip>:scored   set once with SETNX
//
// RPUSH is atomic, so concurrent appends for one trip never lose a sample.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisClient connects to addr and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("trail.NewRedisClient: ping %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisStore wraps rdb. A ttl of zero keeps trails forever; otherwise each
// append refreshes the expiry of all three keys.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func samplesKey(tripID uuid.UUID) string { return "trail:" + tripID.String() + ":samples" }
func metaKey(tripID uuid.UUID) string    { return "trail:" + tripID.String() + ":meta" }
func scoredKey(tripID uuid.UUID) string  { return "trail:" + tripID.String() + ":scored" }

// Append pushes sample onto the trip's list and records the trail identities.
func (s *RedisStore) Append(ctx context.Context, meta domain.TrailMeta, sample domain.TelemetrySample) error {
	sample.Geohash = geo.Geohash(sample.Point)
	body, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("trail.RedisStore.Append: encode: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		mk := metaKey(meta.TripID)
		pipe.HSetNX(ctx, mk, "driver_id", meta.DriverID.String())
		pipe.HSetNX(ctx, mk, "vehicle_id", meta.VehicleID.String())
		if sample.Finished {
			pipe.HSet(ctx, mk, "finished", "1")
		}
		pipe.RPush(ctx, samplesKey(meta.TripID), body)
		if s.ttl > 0 {
			pipe.Expire(ctx, mk, s.ttl)
			pipe.Expire(ctx, samplesKey(meta.TripID), s.ttl)
			pipe.Expire(ctx, scoredKey(meta.TripID), s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("trail.RedisStore.Append: %w", err)
	}
	return nil
}

// Get returns the trip's trail or domain.ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, tripID uuid.UUID) (domain.Trail, error) {
	fields, err := s.rdb.HGetAll(ctx, metaKey(tripID)).Result()
	if err != nil {
		return domain.Trail{}, fmt.Errorf("trail.RedisStore.Get: meta: %w", err)
	}
	if len(fields) == 0 {
		return domain.Trail{}, fmt.Errorf("trail.RedisStore.Get: %s: %w", domain.CollectionTrails, domain.ErrNotFound)
	}

	raw, err := s.rdb.LRange(ctx, samplesKey(tripID), 0, -1).Result()
	if err != nil {
		return domain.Trail{}, fmt.Errorf("trail.RedisStore.Get: samples: %w", err)
	}

	t := domain.Trail{
		TrailMeta: domain.TrailMeta{TripID: tripID},
		Samples:   make([]domain.TelemetrySample, 0, len(raw)),
		Finished:  fields["finished"] == "1",
	}
	if t.DriverID, err = uuid.Parse(fields["driver_id"]); err != nil {
		return domain.Trail{}, fmt.Errorf("trail.RedisStore.Get: driver_id: %w", err)
	}
	if t.VehicleID, err = uuid.Parse(fields["vehicle_id"]); err != nil {
		return domain.Trail{}, fmt.Errorf("trail.RedisStore.Get: vehicle_id: %w", err)
	}
	for _, r := range raw {
		var sample domain.TelemetrySample
		if err := json.Unmarshal([]byte(r), &sample); err != nil {
			return domain.Trail{}, fmt.Errorf("trail.RedisStore.Get: decode sample: %w", err)
		}
		t.Samples = append(t.Samples, sample)
	}

	n, err := s.rdb.Exists(ctx, scoredKey(tripID)).Result()
	if err != nil {
		return domain.Trail{}, fmt.Errorf("trail.RedisStore.Get: scored: %w", err)
	}
	t.Scored = n == 1
	return t, nil
}

// MarkScored reports true only for the first caller per trip.
func (s *RedisStore) MarkScored(ctx context.Context, tripID uuid.UUID) (bool, error) {
	first, err := s.rdb.SetNX(ctx, scoredKey(tripID), time.Now().Unix(), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("trail.RedisStore.MarkScored: %w", err)
	}
	return first, nil
}
