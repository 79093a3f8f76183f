package model

import "time"

// Reservation statuses. A reservation enters the system as pending and is
// confirmed by the payment webhook; later transitions are admin-driven.
// cancelled and completed are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCheckedIn = "checked_in"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment statuses, tracked separately from the stay status.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Guest is the contact snapshot embedded in a reservation. It is captured
// at booking time and never re-derived from a separate guest entity.
type Guest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
}

// Reservation records one stay in one room. Reservations reference rooms
// but do not own them; they are never deleted, only mutated.
//
// Fields:
//
//	ID                    – internal primary key.
//	ReservationID         – public code, RES-<base36 ts>-<5 char suffix>, unique.
//	RoomID                – the booked room.
//	Guest                 – contact snapshot captured at booking time.
//	CheckIn / CheckOut    – stay dates; CheckIn < CheckOut, half-open range.
//	Nights                – calendar-day span between CheckIn and CheckOut.
//	GuestsCount           – number of guests, <= room capacity at creation.
//	BoardOption           – optional board code, validated against the room.
//	TotalAmount           – locked price in minor units; never recomputed.
//	Currency              – fixed at creation.
//	PaymentStatus         – pending | paid | refunded.
//	Status                – pending | confirmed | checked_in | completed | cancelled.
//	StripeSessionID       – checkout session correlation id, written once.
//	StripePaymentIntentID – payment intent id, written by the webhook.
//	HoldExpiresAt         – while pending, when the reservation stops
//	                        blocking its dates; cleared on confirmation.
//	CreatedAt / UpdatedAt – record timestamps.
type Reservation struct {
	ID                    uint64     `json:"id"`
	ReservationID         string     `json:"reservationId"`
	RoomID                uint64     `json:"roomId"`
	Guest                 Guest      `json:"guest"`
	CheckIn               time.Time  `json:"checkIn"`
	CheckOut              time.Time  `json:"checkOut"`
	Nights                int        `json:"nights"`
	GuestsCount           int        `json:"guestsCount"`
	BoardOption           string     `json:"boardOption,omitempty"`
	TotalAmount           int64      `json:"totalAmount"`
	Currency              string     `json:"currency"`
	PaymentStatus         string     `json:"paymentStatus"`
	Status                string     `json:"status"`
	StripeSessionID       string     `json:"stripeSessionId,omitempty"`
	StripePaymentIntentID string     `json:"stripePaymentIntentId,omitempty"`
	HoldExpiresAt         *time.Time `json:"holdExpiresAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// ValidStatus reports whether s is one of the five reservation statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
