package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/meridianbay/hotel-booking/internal/model"
	"github.com/meridianbay/hotel-booking/internal/payment"
)

// RoomStore is the slice of the room collaborator the booking core needs.
// FindByID returns (nil, nil) when no room has the given id.
type RoomStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Room, error)
}

// ReservationStore is the reservation persistence boundary used by the
// core. FindOverlapping narrows to reservations for the room whose
// [checkIn, checkOut) range intersects the given one, regardless of
// status; the status/hold policy is applied by the availability checker.
// MarkPaid atomically sets paymentStatus=paid, status=confirmed, records
// the payment intent id and clears the date hold; it reports found=false
// when no reservation carries the given public code. MarkPaid must be
// idempotent: applying it twice leaves the same final state.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	FindOverlapping(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) ([]model.Reservation, error)
	SetPaymentSession(ctx context.Context, id uint64, sessionID string) error
	MarkPaid(ctx context.Context, reservationID, paymentIntentID string) (found bool, err error)
}

// RoomLocker serializes booking attempts per room. Lock returns ok=false
// when another booking currently holds the room; a non-nil error means
// the lock backend itself failed, in which case the orchestrator
// degrades to the plain availability re-check.
type RoomLocker interface {
	Lock(ctx context.Context, roomID uint64) (release func(), ok bool, err error)
}

// Options carries the fixed booking policy values out of config.
type Options struct {
	Currency       string        // currency code stamped on every reservation
	ClientBaseURL  string        // base URL for checkout success/cancel redirects
	PendingHoldTTL time.Duration // how long a pending reservation holds its dates
}

// Service composes pricing, availability and lifecycle into the booking
// flow. All collaborators are injected; the zero value is not usable.
type Service struct {
	rooms        RoomStore
	reservations ReservationStore
	payments     payment.Provider
	locks        RoomLocker
	opts         Options
}

// NewService wires a booking Service. locks may be nil when no Redis is
// available; every other dependency is required.
func NewService(rooms RoomStore, reservations ReservationStore, payments payment.Provider, locks RoomLocker, opts Options) *Service {
	if rooms == nil || reservations == nil || payments == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{rooms: rooms, reservations: reservations, payments: payments, locks: locks, opts: opts}
}

// CreateBookingInput is the validated-at-the-door request for a new
// booking. Dates are UTC midnights of the stay days.
type CreateBookingInput struct {
	RoomID      uint64
	CheckIn     time.Time
	CheckOut    time.Time
	GuestsCount int
	Guest       model.Guest
	BoardOption string
}

// CreateBookingResult is handed back to the client so it can redirect the
// guest to the hosted checkout page.
type CreateBookingResult struct {
	ReservationID string
	SessionID     string
	SessionURL    string
}

func (in *CreateBookingInput) validate() error {
	switch {
	case in.RoomID == 0:
		return invalid("roomId", "required")
	case in.CheckIn.IsZero():
		return invalid("checkIn", "required")
	case in.CheckOut.IsZero():
		return invalid("checkOut", "required")
	case in.GuestsCount < 1:
		return invalid("guestsCount", "must be at least 1")
	case strings.TrimSpace(in.Guest.FullName) == "":
		return invalid("guestInfo.fullName", "required")
	case strings.TrimSpace(in.Guest.Email) == "":
		return invalid("guestInfo.email", "required")
	case strings.TrimSpace(in.Guest.Phone) == "":
		return invalid("guestInfo.phone", "required")
	case strings.TrimSpace(in.Guest.Nationality) == "":
		return invalid("guestInfo.nationality", "required")
	}
	return nil
}

// CreateBooking runs the whole booking flow: validate, resolve the room,
// check availability under the per-room lock, price the stay, persist the
// pending reservation and open the hosted checkout session. On payment
// collaborator failure the pending reservation is left intact (its date
// hold expires on its own); there is no compensating delete.
func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	room, err := s.rooms.FindByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if !in.CheckIn.Before(in.CheckOut) {
		return nil, ErrInvalidRange
	}
	if in.GuestsCount > room.Capacity {
		return nil, invalid("guestsCount", fmt.Sprintf("room sleeps at most %d guests", room.Capacity))
	}
	if in.BoardOption != "" && !room.HasBoardOption(in.BoardOption) {
		return nil, invalid("boardOption", "not offered for this room")
	}

	// Best-effort double-booking guard: serialize the availability check
	// and the insert per room. A lock backend outage falls back to the
	// unguarded re-check rather than refusing bookings.
	if s.locks != nil {
		release, ok, lockErr := s.locks.Lock(ctx, in.RoomID)
		switch {
		case lockErr != nil:
			log.Printf("booking: room lock unavailable, proceeding unguarded: %v", lockErr)
		case !ok:
			return nil, ErrUnavailable
		default:
			defer release()
		}
	}

	available, err := s.IsAvailable(ctx, in.RoomID, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrUnavailable
	}

	nights, err := Nights(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	total := TotalPrice(room, nights, in.BoardOption)

	holdUntil := time.Now().UTC().Add(s.opts.PendingHoldTTL)
	res := &model.Reservation{
		ReservationID: NewReservationID(),
		RoomID:        room.ID,
		Guest:         in.Guest,
		CheckIn:       in.CheckIn,
		CheckOut:      in.CheckOut,
		Nights:        nights,
		GuestsCount:   in.GuestsCount,
		BoardOption:   in.BoardOption,
		TotalAmount:   total,
		Currency:      s.opts.Currency,
		PaymentStatus: model.PaymentPending,
		Status:        model.StatusPending,
		HoldExpiresAt: &holdUntil,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	sess, err := s.payments.CreateCheckoutSession(ctx, payment.CheckoutParams{
		Amount:        total,
		Currency:      s.opts.Currency,
		Name:          checkoutName(room.Title, nights),
		Description:   checkoutDescription(in.CheckIn, in.CheckOut),
		SuccessURL:    s.opts.ClientBaseURL + "/confirmation?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.opts.ClientBaseURL + "/reserve?canceled=true",
		ReservationID: res.ReservationID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentUpstream, err)
	}
	if err := s.reservations.SetPaymentSession(ctx, res.ID, sess.ID); err != nil {
		return nil, fmt.Errorf("%w: save session id: %v", ErrPaymentUpstream, err)
	}

	return &CreateBookingResult{
		ReservationID: res.ReservationID,
		SessionID:     sess.ID,
		SessionURL:    sess.URL,
	}, nil
}

// ConfirmPayment applies a verified "session completed" event: a single
// idempotent update moving the reservation to paid/confirmed and
// recording the payment intent id. Replaying the same event is harmless.
func (s *Service) ConfirmPayment(ctx context.Context, reservationID, paymentIntentID string) error {
	if reservationID == "" {
		return ErrReservationNotFound
	}
	found, err := s.reservations.MarkPaid(ctx, reservationID, paymentIntentID)
	if err != nil {
		return err
	}
	if !found {
		return ErrReservationNotFound
	}
	return nil
}

func checkoutName(title string, nights int) string {
	unit := "night"
	if nights > 1 {
		unit = "nights"
	}
	return fmt.Sprintf("%s - %d %s", title, nights, unit)
}

func checkoutDescription(checkIn, checkOut time.Time) string {
	const layout = "Jan 2, 2006"
	return fmt.Sprintf("Check-in: %s, Check-out: %s", checkIn.Format(layout), checkOut.Format(layout))
}
