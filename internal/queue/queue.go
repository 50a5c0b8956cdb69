// Package queue is the point-to-point transport between the three services.
// RabbitMQ carries traffic in production; Memory runs the same contract
// in-process for tests and single-binary setups.
package queue

import (
	"context"
	"fmt"
	"strings"
)

// Publisher sends a JSON body to a named queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// Handler processes one delivered message body. A nil return means the
// message was handled.
type Handler func(ctx context.Context, body []byte) error

// DeliveryContract describes when a delivery is acknowledged and whether a
// failed handler gets the message back.
type DeliveryContract struct {
	// AckBeforeHandling acknowledges on receipt, before the handler runs.
	// A crash or error inside the handler then loses the message.
	AckBeforeHandling bool

	// RedeliverOnFailure requeues the message when the handler returns an
	// error. Only meaningful when AckBeforeHandling is false.
	RedeliverOnFailure bool
}

// ReferenceContract acknowledges on receipt and never redelivers.
var ReferenceContract = DeliveryContract{AckBeforeHandling: true, RedeliverOnFailure: false}

// AtLeastOnceContract acknowledges after a successful handler run and
// requeues on failure.
var AtLeastOnceContract = DeliveryContract{AckBeforeHandling: false, RedeliverOnFailure: true}

// ParseContract maps the QUEUE_ACK_MODE setting onto a contract.
// "before" (the default) is ReferenceContract, "after" is AtLeastOnceContract.
func ParseContract(mode string) (DeliveryContract, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "before":
		return ReferenceContract, nil
	case "after":
		return AtLeastOnceContract, nil
	}
	return DeliveryContract{}, fmt.Errorf("queue.ParseContract: unknown ack mode %q", mode)
}
