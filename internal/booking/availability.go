package booking

import (
	"context"
	"time"

	"github.com/meridianbay/hotel-booking/internal/model"
)

// Overlaps reports whether the half-open stay ranges [start1, end1) and
// [start2, end2) intersect. A check-out on the same day as another
// stay's check-in does not conflict.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// blocksRange reports whether reservation r keeps the given range
// occupied at instant now. Cancelled reservations never block. Pending
// reservations block only while their date hold is still alive; an
// abandoned checkout therefore frees its dates once the hold expires.
func blocksRange(r *model.Reservation, checkIn, checkOut, now time.Time) bool {
	if r.Status == model.StatusCancelled {
		return false
	}
	if r.Status == model.StatusPending && r.HoldExpiresAt != nil && r.HoldExpiresAt.Before(now) {
		return false
	}
	return Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut)
}

// IsAvailable reports whether the room can host a stay over
// [checkIn, checkOut). The store narrows candidates to reservations for
// the room whose dates intersect the range; the status and hold-expiry
// policy is applied here so it stays in one place.
//
// The check is read-only and racy by design: CreateBooking re-runs it
// under the room lock before inserting.
func (s *Service) IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	return s.isAvailable(ctx, roomID, checkIn, checkOut, time.Now().UTC())
}

func (s *Service) isAvailable(ctx context.Context, roomID uint64, checkIn, checkOut, now time.Time) (bool, error) {
	candidates, err := s.reservations.FindOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	for i := range candidates {
		if blocksRange(&candidates[i], checkIn, checkOut, now) {
			return false, nil
		}
	}
	return true, nil
}
