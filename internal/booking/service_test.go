package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/meridianbay/hotel-booking/internal/model"
	"github.com/meridianbay/hotel-booking/internal/payment"
)

// ----- fakes -----

type fakeRoomStore struct {
	rooms map[uint64]*model.Room
}

func (s *fakeRoomStore) FindByID(_ context.Context, id uint64) (*model.Room, error) {
	return s.rooms[id], nil
}

type fakeReservationStore struct {
	items    []model.Reservation
	nextID   uint64
	sessions map[uint64]string
}

func (s *fakeReservationStore) Create(_ context.Context, res *model.Reservation) error {
	s.nextID++
	res.ID = s.nextID
	s.items = append(s.items, *res)
	return nil
}

func (s *fakeReservationStore) FindOverlapping(_ context.Context, roomID uint64, checkIn, checkOut time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range s.items {
		if r.RoomID == roomID && Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeReservationStore) SetPaymentSession(_ context.Context, id uint64, sessionID string) error {
	if s.sessions == nil {
		s.sessions = make(map[uint64]string)
	}
	s.sessions[id] = sessionID
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].StripeSessionID = sessionID
		}
	}
	return nil
}

func (s *fakeReservationStore) MarkPaid(_ context.Context, reservationID, paymentIntentID string) (bool, error) {
	for i := range s.items {
		if s.items[i].ReservationID == reservationID {
			s.items[i].PaymentStatus = model.PaymentPaid
			s.items[i].Status = model.StatusConfirmed
			s.items[i].StripePaymentIntentID = paymentIntentID
			s.items[i].HoldExpiresAt = nil
			return true, nil
		}
	}
	return false, nil
}

type fakePaymentProvider struct {
	lastParams payment.CheckoutParams
	fail       bool
}

func (p *fakePaymentProvider) CreateCheckoutSession(_ context.Context, params payment.CheckoutParams) (payment.CheckoutSession, error) {
	p.lastParams = params
	if p.fail {
		return payment.CheckoutSession{}, errors.New("provider down")
	}
	return payment.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.example/cs_test_123"}, nil
}

type fakeLocker struct {
	held    bool
	failure error
	locked  int
}

func (l *fakeLocker) Lock(_ context.Context, _ uint64) (func(), bool, error) {
	if l.failure != nil {
		return nil, false, l.failure
	}
	if l.held {
		return nil, false, nil
	}
	l.locked++
	return func() { l.locked-- }, true, nil
}

// ----- helpers -----

func testRoom() *model.Room {
	return &model.Room{
		ID:           1,
		Slug:         "sea-view-double",
		Title:        "Sea View Double",
		Capacity:     2,
		BasePrice:    29900,
		BoardOptions: map[string]int64{model.BoardBB: 1500},
	}
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		RoomID:      1,
		CheckIn:     date(2025, 6, 1),
		CheckOut:    date(2025, 6, 4),
		GuestsCount: 2,
		BoardOption: model.BoardBB,
		Guest: model.Guest{
			FullName:    "Ada Lovelace",
			Email:       "ada@example.com",
			Phone:       "+44 1234 567890",
			Nationality: "GB",
		},
	}
}

func newTestService(locker RoomLocker) (*Service, *fakeReservationStore, *fakePaymentProvider) {
	rooms := &fakeRoomStore{rooms: map[uint64]*model.Room{1: testRoom()}}
	store := &fakeReservationStore{}
	provider := &fakePaymentProvider{}
	svc := NewService(rooms, store, provider, locker, Options{
		Currency:       "USD",
		ClientBaseURL:  "https://hotel.example",
		PendingHoldTTL: 30 * time.Minute,
	})
	return svc, store, provider
}

var reservationIDPattern = regexp.MustCompile(`^RES-[0-9A-Z]+-[0-9A-Z]{5}$`)

// ----- CreateBooking -----

func TestCreateBooking(t *testing.T) {
	svc, store, provider := newTestService(nil)

	result, err := svc.CreateBooking(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if !reservationIDPattern.MatchString(result.ReservationID) {
		t.Errorf("reservation id %q does not match expected pattern", result.ReservationID)
	}
	if result.SessionID != "cs_test_123" || result.SessionURL == "" {
		t.Errorf("unexpected session result: %+v", result)
	}

	if len(store.items) != 1 {
		t.Fatalf("expected one stored reservation, got %d", len(store.items))
	}
	res := store.items[0]
	if res.Status != model.StatusPending || res.PaymentStatus != model.PaymentPending {
		t.Errorf("new reservation must be pending/pending, got %s/%s", res.Status, res.PaymentStatus)
	}
	if res.TotalAmount != 94200 {
		t.Errorf("total = %d, want 94200", res.TotalAmount)
	}
	if res.Nights != 3 {
		t.Errorf("nights = %d, want 3", res.Nights)
	}
	if res.Currency != "USD" {
		t.Errorf("currency = %q, want USD", res.Currency)
	}
	if res.HoldExpiresAt == nil || !res.HoldExpiresAt.After(time.Now().UTC()) {
		t.Error("pending reservation must carry a future hold expiry")
	}
	if res.StripeSessionID != "cs_test_123" {
		t.Errorf("session id not persisted: %q", res.StripeSessionID)
	}

	if provider.lastParams.Amount != 94200 {
		t.Errorf("provider amount = %d, want 94200", provider.lastParams.Amount)
	}
	if provider.lastParams.SuccessURL != "https://hotel.example/confirmation?session_id={CHECKOUT_SESSION_ID}" {
		t.Errorf("unexpected success URL: %q", provider.lastParams.SuccessURL)
	}
	if provider.lastParams.CancelURL != "https://hotel.example/reserve?canceled=true" {
		t.Errorf("unexpected cancel URL: %q", provider.lastParams.CancelURL)
	}
	if provider.lastParams.ReservationID != result.ReservationID {
		t.Error("provider must receive the reservation code as correlation id")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _ := newTestService(nil)

	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
	}{
		{"missing room", func(in *CreateBookingInput) { in.RoomID = 0 }},
		{"missing check-in", func(in *CreateBookingInput) { in.CheckIn = time.Time{} }},
		{"missing check-out", func(in *CreateBookingInput) { in.CheckOut = time.Time{} }},
		{"zero guests", func(in *CreateBookingInput) { in.GuestsCount = 0 }},
		{"missing name", func(in *CreateBookingInput) { in.Guest.FullName = "  " }},
		{"missing email", func(in *CreateBookingInput) { in.Guest.Email = "" }},
		{"missing phone", func(in *CreateBookingInput) { in.Guest.Phone = "" }},
		{"missing nationality", func(in *CreateBookingInput) { in.Guest.Nationality = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.CreateBooking(context.Background(), in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want *ValidationError", err)
			}
		})
	}
}

func TestCreateBookingRoomNotFound(t *testing.T) {
	svc, _, _ := newTestService(nil)
	in := validInput()
	in.RoomID = 99
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("got %v, want ErrRoomNotFound", err)
	}
}

func TestCreateBookingInvalidRange(t *testing.T) {
	svc, _, _ := newTestService(nil)
	in := validInput()
	in.CheckIn, in.CheckOut = in.CheckOut, in.CheckIn
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("reversed range: got %v, want ErrInvalidRange", err)
	}
	in = validInput()
	in.CheckOut = in.CheckIn
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("equal dates: got %v, want ErrInvalidRange", err)
	}
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	svc, _, _ := newTestService(nil)
	in := validInput()
	in.GuestsCount = 5
	_, err := svc.CreateBooking(context.Background(), in)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "guestsCount" {
		t.Fatalf("got %v, want guestsCount ValidationError", err)
	}
}

func TestCreateBookingUnknownBoardRejected(t *testing.T) {
	svc, _, _ := newTestService(nil)
	in := validInput()
	in.BoardOption = model.BoardFB // not offered by the test room
	_, err := svc.CreateBooking(context.Background(), in)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "boardOption" {
		t.Fatalf("got %v, want boardOption ValidationError", err)
	}
}

func TestCreateBookingSequentialDoubleBooking(t *testing.T) {
	svc, _, _ := newTestService(nil)

	if _, err := svc.CreateBooking(context.Background(), validInput()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := svc.CreateBooking(context.Background(), validInput())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("second overlapping booking: got %v, want ErrUnavailable", err)
	}
}

func TestCreateBookingPaymentFailureLeavesPending(t *testing.T) {
	svc, store, provider := newTestService(nil)
	provider.fail = true

	_, err := svc.CreateBooking(context.Background(), validInput())
	if !errors.Is(err, ErrPaymentUpstream) {
		t.Fatalf("got %v, want ErrPaymentUpstream", err)
	}
	// No compensating delete: the pending reservation stays and its date
	// hold expires on its own.
	if len(store.items) != 1 {
		t.Fatalf("expected the pending reservation to remain, got %d records", len(store.items))
	}
	if store.items[0].Status != model.StatusPending {
		t.Fatalf("orphaned reservation status = %s, want pending", store.items[0].Status)
	}
}

func TestCreateBookingLockHeld(t *testing.T) {
	svc, _, _ := newTestService(&fakeLocker{held: true})
	if _, err := svc.CreateBooking(context.Background(), validInput()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("held lock: got %v, want ErrUnavailable", err)
	}
}

func TestCreateBookingLockReleased(t *testing.T) {
	locker := &fakeLocker{}
	svc, _, _ := newTestService(locker)
	if _, err := svc.CreateBooking(context.Background(), validInput()); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if locker.locked != 0 {
		t.Fatal("room lock not released after booking")
	}
}

func TestCreateBookingLockBackendFailureDegrades(t *testing.T) {
	svc, store, _ := newTestService(&fakeLocker{failure: errors.New("redis down")})
	if _, err := svc.CreateBooking(context.Background(), validInput()); err != nil {
		t.Fatalf("lock backend failure must not block bookings: %v", err)
	}
	if len(store.items) != 1 {
		t.Fatal("booking not persisted after lock degradation")
	}
}

// ----- ConfirmPayment -----

func TestConfirmPayment(t *testing.T) {
	svc, store, _ := newTestService(nil)
	result, err := svc.CreateBooking(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.ConfirmPayment(context.Background(), result.ReservationID, "pi_abc"); err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}
	res := store.items[0]
	if res.PaymentStatus != model.PaymentPaid || res.Status != model.StatusConfirmed {
		t.Fatalf("after confirm: %s/%s, want paid/confirmed", res.PaymentStatus, res.Status)
	}
	if res.StripePaymentIntentID != "pi_abc" {
		t.Fatalf("payment intent id = %q, want pi_abc", res.StripePaymentIntentID)
	}
	if res.HoldExpiresAt != nil {
		t.Fatal("confirmation must clear the date hold")
	}

	// Replaying the same event must leave the identical final state.
	if err := svc.ConfirmPayment(context.Background(), result.ReservationID, "pi_abc"); err != nil {
		t.Fatalf("replayed confirmation failed: %v", err)
	}
	res = store.items[0]
	if res.PaymentStatus != model.PaymentPaid || res.Status != model.StatusConfirmed {
		t.Fatalf("after replay: %s/%s, want paid/confirmed", res.PaymentStatus, res.Status)
	}
}

func TestConfirmPaymentUnknownReservation(t *testing.T) {
	svc, _, _ := newTestService(nil)
	if err := svc.ConfirmPayment(context.Background(), "RES-NOPE-XXXXX", "pi_x"); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("got %v, want ErrReservationNotFound", err)
	}
	if err := svc.ConfirmPayment(context.Background(), "", "pi_x"); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("empty code: got %v, want ErrReservationNotFound", err)
	}
}

// ----- reservation ids -----

func TestNewReservationID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := NewReservationID()
		if !reservationIDPattern.MatchString(id) {
			t.Fatalf("id %q does not match pattern", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
