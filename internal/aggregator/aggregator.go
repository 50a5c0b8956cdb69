// Package aggregator accumulates telemetry into per-trip trails and, when a
// trip finishes, scores the trail and publishes the driver's reward.
package aggregator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
	"github.com/Admir-Walker/Fleet-Management-System/internal/event"
	"github.com/Admir-Walker/Fleet-Management-System/internal/geo"
	"github.com/Admir-Walker/Fleet-Management-System/internal/queue"
)

// TrailStore is the storage the aggregator needs. repo.TrailRepo,
// trail.RedisStore, and trail.MemoryStore all satisfy it.
type TrailStore interface {
	Append(ctx context.Context, meta domain.TrailMeta, sample domain.TelemetrySample) error
	Get(ctx context.Context, tripID uuid.UUID) (domain.Trail, error)
	MarkScored(ctx context.Context, tripID uuid.UUID) (bool, error)
}

// Aggregator handles telemetry deliveries.
type Aggregator struct {
	store TrailStore
	pub   queue.Publisher
	queue string
	log   *slog.Logger

	// idempotentFinish suppresses a second reward when a finished sample is
	// delivered more than once for the same trip.
	idempotentFinish bool
}

// New returns an Aggregator publishing rewards to rewardQueue.
func New(store TrailStore, pub queue.Publisher, rewardQueue string, idempotentFinish bool, log *slog.Logger) *Aggregator {
	return &Aggregator{
		store:            store,
		pub:              pub,
		queue:            rewardQueue,
		log:              log,
		idempotentFinish: idempotentFinish,
	}
}

// Handle is the queue.Handler for telemetry. It appends the sample and, on a
// finished sample, publishes exactly one reward for this delivery.
func (a *Aggregator) Handle(ctx context.Context, body []byte) error {
	tel, err := event.Decode[event.Telemetry](body)
	if err != nil {
		return fmt.Errorf("aggregator.Handle: %w", err)
	}

	meta := tel.Meta()
	if err := a.store.Append(ctx, meta, tel.Sample()); err != nil {
		return fmt.Errorf("aggregator.Handle: append: %w", err)
	}
	if !tel.Finished {
		return nil
	}

	if a.idempotentFinish {
		first, err := a.store.MarkScored(ctx, meta.TripID)
		if err != nil {
			return fmt.Errorf("aggregator.Handle: mark scored: %w", err)
		}
		if !first {
			a.log.Info("duplicate finish ignored", "trip_id", meta.TripID)
			return nil
		}
	}

	return a.reward(ctx, meta)
}

func (a *Aggregator) reward(ctx context.Context, meta domain.TrailMeta) error {
	t, err := a.store.Get(ctx, meta.TripID)
	if err != nil {
		return fmt.Errorf("aggregator.reward: get trail: %w", err)
	}

	b := geo.ScoreBreakdown(t.Samples)
	body, err := event.Encode(event.Reward{
		Points:   b.Points,
		TripID:   meta.TripID,
		DriverID: meta.DriverID,
	})
	if err != nil {
		return fmt.Errorf("aggregator.reward: %w", err)
	}
	if err := a.pub.Publish(ctx, a.queue, body); err != nil {
		return fmt.Errorf("aggregator.reward: publish: %w", err)
	}

	a.log.Info("trip scored",
		"trip_id", meta.TripID,
		"driver_id", meta.DriverID,
		"samples", len(t.Samples),
		"km_60_80", b.Km60to80,
		"km_80_100", b.Km80to100,
		"km_100_plus", b.Km100Plus,
		"points", b.Points,
	)
	return nil
}
