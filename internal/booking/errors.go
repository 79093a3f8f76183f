// Package booking implements the reservation core: pricing, date-range
// availability, the reservation lifecycle and the orchestration of a new
// booking through to the hosted checkout redirect. It owns no transport
// or storage; collaborators are injected through the interfaces declared
// in service.go.
package booking

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the booking core. Handlers translate these
// into HTTP responses with errors.Is; none of them are retried here.
var (
	// ErrRoomNotFound is returned when the referenced room does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrReservationNotFound is returned when a reservation lookup or
	// confirmation targets an unknown record.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidRange is returned when check-out is not after check-in.
	ErrInvalidRange = errors.New("check-out must be after check-in")

	// ErrUnavailable is returned when the requested dates overlap an
	// existing non-cancelled reservation, or when another booking holds
	// the room lock.
	ErrUnavailable = errors.New("room not available for selected dates")

	// ErrPaymentUpstream wraps failures from the payment collaborator.
	// The already-created pending reservation is left intact.
	ErrPaymentUpstream = errors.New("payment provider request failed")
)

// ValidationError reports a missing or malformed required input. It is
// user-correctable and carries the offending field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
