package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// RabbitMQ publishes and consumes on durable queues of the default exchange.
// Publishing and consuming use separate channels.
type RabbitMQ struct {
	conn *amqp.Connection

	mu  sync.Mutex // serialises publishes on pub
	pub *amqp.Channel

	log *slog.Logger
}

// DialOptions controls the initial connection attempts.
type DialOptions struct {
	Attempts int
	Backoff  time.Duration
}

// Dial connects to url, retrying with exponential backoff while the broker
// is starting up.
func Dial(ctx context.Context, url string, opts DialOptions, log *slog.Logger) (*RabbitMQ, error) {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	backoff := opts.Backoff

	var lastErr error
	for i := 1; i <= opts.Attempts; i++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			pub, err := conn.Channel()
			if err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("queue.Dial: open channel: %w", err)
			}
			log.Info("connected to rabbitmq", "attempt", i)
			return &RabbitMQ{conn: conn, pub: pub, log: log}, nil
		}
		lastErr = err
		log.Warn("rabbitmq not ready", "attempt", i, "of", opts.Attempts, "error", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("queue.Dial: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("queue.Dial: %w: %v", domain.ErrTransportUnavailable, lastErr)
}

// Declare makes sure every named queue exists: durable, non-exclusive and
// never auto-deleted.
func (r *RabbitMQ) Declare(names ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		if _, err := r.pub.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue.RabbitMQ.Declare %s: %w", name, r.wrap(err))
		}
	}
	return nil
}

// Publish sends body to queue with persistent delivery mode.
func (r *RabbitMQ) Publish(ctx context.Context, queue string, body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.pub.PublishWithContext(ctx,
		"",    // default exchange routes by queue name
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("queue.RabbitMQ.Publish %s: %w", queue, r.wrap(err))
	}
	return nil
}

// Consume subscribes to queue and runs h for every delivery on its own
// goroutine. It blocks until ctx is cancelled or the broker closes the
// subscription; the latter returns domain.ErrTransportUnavailable.
func (r *RabbitMQ) Consume(ctx context.Context, queue string, contract DeliveryContract, prefetch int, h Handler) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("queue.RabbitMQ.Consume %s: %w", queue, r.wrap(err))
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue.RabbitMQ.Consume %s: declare: %w", queue, r.wrap(err))
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("queue.RabbitMQ.Consume %s: qos: %w", queue, r.wrap(err))
	}

	deliveries, err := ch.Consume(
		queue,
		"",    // consumer tag generated by the broker
		false, // manual acknowledgment
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue.RabbitMQ.Consume %s: %w", queue, r.wrap(err))
	}
	r.log.Info("consumer started", "queue", queue, "ack_before_handling", contract.AckBeforeHandling)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("queue.RabbitMQ.Consume %s: %w", queue, domain.ErrTransportUnavailable)
			}
			if contract.AckBeforeHandling {
				if err := d.Ack(false); err != nil {
					r.log.Error("ack failed", "queue", queue, "error", err)
				}
			}
			go r.handle(ctx, queue, contract, h, d)
		}
	}
}

func (r *RabbitMQ) handle(ctx context.Context, queue string, contract DeliveryContract, h Handler, d amqp.Delivery) {
	err := h(ctx, d.Body)
	if err != nil {
		r.log.Error("message handler failed", "queue", queue, "error", err)
	}
	if contract.AckBeforeHandling {
		return
	}
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			r.log.Error("ack failed", "queue", queue, "error", ackErr)
		}
		return
	}
	if nackErr := d.Nack(false, requeue(contract, err)); nackErr != nil {
		r.log.Error("nack failed", "queue", queue, "error", nackErr)
	}
}

// Close closes the publish channel and the connection.
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.pub.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return fmt.Errorf("queue.RabbitMQ.Close: channel: %w", err)
	}
	if err := r.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return fmt.Errorf("queue.RabbitMQ.Close: connection: %w", err)
	}
	return nil
}

// wrap marks broker-side closure as a transport outage.
func (r *RabbitMQ) wrap(err error) error {
	if errors.Is(err, amqp.ErrClosed) || r.conn.IsClosed() {
		return fmt.Errorf("%w: %v", domain.ErrTransportUnavailable, err)
	}
	return err
}
