package booking

import (
	"testing"

	"github.com/meridianbay/hotel-booking/internal/model"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{model.StatusPending, model.StatusConfirmed},
		{model.StatusPending, model.StatusCancelled},
		{model.StatusConfirmed, model.StatusCheckedIn},
		{model.StatusConfirmed, model.StatusCancelled},
		{model.StatusCheckedIn, model.StatusCompleted},
		{model.StatusCheckedIn, model.StatusCancelled},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to string }{
		{model.StatusPending, model.StatusCheckedIn},
		{model.StatusPending, model.StatusCompleted},
		{model.StatusConfirmed, model.StatusCompleted},
		{model.StatusConfirmed, model.StatusPending},
		{model.StatusCompleted, model.StatusCancelled},
		{model.StatusCompleted, model.StatusCheckedIn},
		{model.StatusCancelled, model.StatusConfirmed},
		{model.StatusCancelled, model.StatusPending},
	}
	for _, tc := range forbidden {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}
}

func TestCanTransitionSameStatus(t *testing.T) {
	for _, s := range []string{model.StatusPending, model.StatusConfirmed, model.StatusCheckedIn, model.StatusCompleted, model.StatusCancelled} {
		if !CanTransition(s, s) {
			t.Errorf("re-asserting %s must be allowed", s)
		}
	}
}

func TestValidateTransition(t *testing.T) {
	if err := ValidateTransition(model.StatusPending, model.StatusConfirmed); err != nil {
		t.Fatalf("legal transition rejected: %v", err)
	}
	if err := ValidateTransition(model.StatusPending, "teleported"); err == nil {
		t.Fatal("unknown target status accepted")
	}
	err := ValidateTransition(model.StatusCompleted, model.StatusCancelled)
	if err == nil {
		t.Fatal("transition out of terminal status accepted")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("got %T, want *ValidationError", err)
	}
}
