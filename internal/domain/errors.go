package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the referenced
// trip, vehicle, driver, or trail does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing full name, latitude out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when an operation is rejected because of the current
// state of a resource: the trip is already completed, the vehicle has no
// driver, or the driver already holds a vehicle.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrTransportUnavailable is returned when the queue transport cannot accept
// or deliver messages (connection lost, channel closed).
var ErrTransportUnavailable = errors.New("transport unavailable")

// ErrMalformedEvent is returned when a queue payload cannot be decoded or is
// missing a required field.
var ErrMalformedEvent = errors.New("malformed event")
