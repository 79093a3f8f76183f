// Package queue carries reservation events over the message broker and
// hosts the background consumer that records them.
package queue

// ReservationConfirmedEvent is published after a payment webhook moves a
// reservation to confirmed. It carries enough for downstream consumers
// (logging, notifications) without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID string `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Nights        int    `json:"nights"`
	TotalAmount   int64  `json:"total_amount"`
	Currency      string `json:"currency"`
	ConfirmedAt   string `json:"confirmed_at"`
}
