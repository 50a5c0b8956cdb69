package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// Memory is an in-process transport with one buffered channel per queue.
// It honours DeliveryContract the same way RabbitMQ does, including a
// requeue on failure under AtLeastOnceContract.
type Memory struct {
	mu     sync.Mutex
	queues map[string]chan []byte
	closed bool
	buffer int
	wg     sync.WaitGroup
}

// NewMemory returns a Memory transport whose queues buffer up to buffer messages.
func NewMemory(buffer int) *Memory {
	return &Memory{queues: make(map[string]chan []byte), buffer: buffer}
}

func (m *Memory) queue(name string) chan []byte {
	q, ok := m.queues[name]
	if !ok {
		q = make(chan []byte, m.buffer)
		m.queues[name] = q
	}
	return q
}

// Publish enqueues a copy of body. It fails with domain.ErrTransportUnavailable
// after Close.
func (m *Memory) Publish(ctx context.Context, name string, body []byte) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return fmt.Errorf("queue.Memory.Publish %s: %w", name, domain.ErrTransportUnavailable)
	}
	q := m.queue(name)
	m.mu.Unlock()

	msg := append([]byte(nil), body...)
	select {
	case q <- msg:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("queue.Memory.Publish %s: %w", name, ctx.Err())
	}
}

// Receive returns the raw channel for name so tests can drain published
// messages without running a consumer.
func (m *Memory) Receive(name string) <-chan []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue(name)
}

// Consume starts delivering messages from name until ctx is cancelled. Each
// message is handled on its own goroutine so a slow handler never blocks
// intake.
func (m *Memory) Consume(ctx context.Context, name string, contract DeliveryContract, h Handler) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return fmt.Errorf("queue.Memory.Consume %s: %w", name, domain.ErrTransportUnavailable)
	}
	q := m.queue(name)
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case body := <-q:
				m.wg.Add(1)
				go func() {
					defer m.wg.Done()
					m.deliver(ctx, name, q, contract, h, body)
				}()
			}
		}
	}()
	return nil
}

func (m *Memory) deliver(ctx context.Context, name string, q chan []byte, contract DeliveryContract, h Handler, body []byte) {
	err := h(ctx, body)
	if err == nil {
		return
	}
	slog.Error("message handler failed", "queue", name, "error", err)
	if !requeue(contract, err) {
		return
	}
	select {
	case q <- body:
	case <-ctx.Done():
	}
}

// Wait blocks until every consumer loop and in-flight handler has returned.
// Cancel the consume context first.
func (m *Memory) Wait() {
	m.wg.Wait()
}

// Close rejects further publishes and consumers.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// requeue reports whether a failed delivery goes back on its queue.
// Malformed payloads are never requeued; they would fail forever.
func requeue(contract DeliveryContract, err error) bool {
	if contract.AckBeforeHandling || !contract.RedeliverOnFailure {
		return false
	}
	return !errors.Is(err, domain.ErrMalformedEvent)
}
