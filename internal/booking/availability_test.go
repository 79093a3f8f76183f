package booking

import (
	"context"
	"testing"
	"time"

	"github.com/meridianbay/hotel-booking/internal/model"
)

func TestOverlapsSymmetry(t *testing.T) {
	a1, a2 := date(2025, 6, 1), date(2025, 6, 5)
	b1, b2 := date(2025, 6, 3), date(2025, 6, 7)
	if Overlaps(a1, a2, b1, b2) != Overlaps(b1, b2, a1, a2) {
		t.Fatal("Overlaps is not symmetric")
	}
	if !Overlaps(a1, a2, b1, b2) {
		t.Fatal("intersecting ranges reported as non-overlapping")
	}
}

func TestOverlapsSelf(t *testing.T) {
	a1, a2 := date(2025, 6, 1), date(2025, 6, 5)
	if !Overlaps(a1, a2, a1, a2) {
		t.Fatal("a non-empty range must overlap itself")
	}
}

func TestOverlapsBoundaryTouch(t *testing.T) {
	// [d1, d2) and [d2, d3): a check-out on another stay's check-in day
	// is not a conflict.
	d1, d2, d3 := date(2025, 6, 1), date(2025, 6, 5), date(2025, 6, 8)
	if Overlaps(d1, d2, d2, d3) {
		t.Fatal("ranges sharing only a boundary must not overlap")
	}
	if Overlaps(d2, d3, d1, d2) {
		t.Fatal("boundary touch must not overlap in either order")
	}
}

func TestOverlapsContainment(t *testing.T) {
	if !Overlaps(date(2025, 6, 1), date(2025, 6, 10), date(2025, 6, 3), date(2025, 6, 5)) {
		t.Fatal("contained range must overlap")
	}
}

// availabilitySvc builds a Service whose reservation store holds the
// given reservations for room 1.
func availabilitySvc(reservations ...model.Reservation) *Service {
	store := &fakeReservationStore{}
	for i := range reservations {
		reservations[i].RoomID = 1
		store.items = append(store.items, reservations[i])
	}
	return NewService(&fakeRoomStore{}, store, &fakePaymentProvider{}, nil, Options{Currency: "USD"})
}

func TestIsAvailableOverlappingConfirmed(t *testing.T) {
	svc := availabilitySvc(model.Reservation{
		Status:  model.StatusConfirmed,
		CheckIn: date(2025, 6, 1), CheckOut: date(2025, 6, 5),
	})
	free, err := svc.IsAvailable(context.Background(), 1, date(2025, 6, 3), date(2025, 6, 7))
	if err != nil {
		t.Fatal(err)
	}
	if free {
		t.Fatal("room with overlapping confirmed reservation reported available")
	}
}

func TestIsAvailableBackToBackStay(t *testing.T) {
	svc := availabilitySvc(model.Reservation{
		Status:  model.StatusConfirmed,
		CheckIn: date(2025, 6, 1), CheckOut: date(2025, 6, 5),
	})
	free, err := svc.IsAvailable(context.Background(), 1, date(2025, 6, 5), date(2025, 6, 8))
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Fatal("stay starting on another's check-out day must be available")
	}
}

func TestIsAvailableCancelledDoesNotBlock(t *testing.T) {
	svc := availabilitySvc(model.Reservation{
		Status:  model.StatusCancelled,
		CheckIn: date(2025, 6, 1), CheckOut: date(2025, 6, 5),
	})
	free, err := svc.IsAvailable(context.Background(), 1, date(2025, 6, 1), date(2025, 6, 5))
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Fatal("cancelled reservation must not block its dates")
	}
}

func TestIsAvailableExpiredPendingHold(t *testing.T) {
	now := date(2025, 6, 1).Add(12 * time.Hour)
	expired := now.Add(-time.Minute)
	alive := now.Add(30 * time.Minute)

	svc := availabilitySvc(model.Reservation{
		Status:  model.StatusPending,
		CheckIn: date(2025, 6, 10), CheckOut: date(2025, 6, 12),
		HoldExpiresAt: &expired,
	})
	free, err := svc.isAvailable(context.Background(), 1, date(2025, 6, 10), date(2025, 6, 12), now)
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Fatal("pending reservation with an expired hold must not block")
	}

	svc = availabilitySvc(model.Reservation{
		Status:  model.StatusPending,
		CheckIn: date(2025, 6, 10), CheckOut: date(2025, 6, 12),
		HoldExpiresAt: &alive,
	})
	free, err = svc.isAvailable(context.Background(), 1, date(2025, 6, 10), date(2025, 6, 12), now)
	if err != nil {
		t.Fatal(err)
	}
	if free {
		t.Fatal("pending reservation with a live hold must block")
	}
}
