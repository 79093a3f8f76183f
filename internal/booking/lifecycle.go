package booking

import "github.com/meridianbay/hotel-booking/internal/model"

// transitions is the legal admin state machine for the stay status:
//
//	pending -> confirmed -> checked_in -> completed
//
// with cancelled reachable from any non-terminal state. completed and
// cancelled are terminal. Payment confirmation (pending -> confirmed)
// is driven by the webhook, not by this table.
var transitions = map[string]map[string]bool{
	model.StatusPending:   {model.StatusConfirmed: true, model.StatusCancelled: true},
	model.StatusConfirmed: {model.StatusCheckedIn: true, model.StatusCancelled: true},
	model.StatusCheckedIn: {model.StatusCompleted: true, model.StatusCancelled: true},
	model.StatusCompleted: {},
	model.StatusCancelled: {},
}

// CanTransition reports whether an admin may move a reservation from one
// status to another. Re-asserting the current status is allowed and
// treated as a no-op by callers.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	return transitions[from][to]
}

// ValidateTransition checks the requested target status against the
// enumeration and the transition table, returning a ValidationError
// suitable for surfacing to the admin UI when the move is illegal.
func ValidateTransition(from, to string) error {
	if !model.ValidStatus(to) {
		return invalid("status", "unknown status")
	}
	if !CanTransition(from, to) {
		return invalid("status", "illegal transition from "+from+" to "+to)
	}
	return nil
}
