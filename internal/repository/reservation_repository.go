package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/meridianbay/hotel-booking/internal/model"
)

// ReservationRepo provides access to the reservations table. Reservations
// are append-then-mutate records: they are never deleted, and the guest
// snapshot and locked price are written once at creation. All timestamp
// fields are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, reservation_id, room_id,
	guest_full_name, guest_email, guest_phone, guest_nationality,
	check_in, check_out, nights, guests_count, board_option,
	total_amount, currency, payment_status, status,
	stripe_session_id, stripe_payment_intent_id, hold_expires_at,
	created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	var boardOption, sessionID, intentID sql.NullString
	var holdExpires sql.NullTime
	err := row.Scan(&res.ID, &res.ReservationID, &res.RoomID,
		&res.Guest.FullName, &res.Guest.Email, &res.Guest.Phone, &res.Guest.Nationality,
		&res.CheckIn, &res.CheckOut, &res.Nights, &res.GuestsCount, &boardOption,
		&res.TotalAmount, &res.Currency, &res.PaymentStatus, &res.Status,
		&sessionID, &intentID, &holdExpires,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res.BoardOption = boardOption.String
	res.StripeSessionID = sessionID.String
	res.StripePaymentIntentID = intentID.String
	if holdExpires.Valid {
		t := holdExpires.Time
		res.HoldExpiresAt = &t
	}
	return &res, nil
}

// Create inserts a new reservation and populates the generated id and
// database timestamps on the provided record.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
		(reservation_id, room_id, guest_full_name, guest_email, guest_phone, guest_nationality,
		 check_in, check_out, nights, guests_count, board_option,
		 total_amount, currency, payment_status, status, hold_expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var board any
	if res.BoardOption != "" {
		board = res.BoardOption
	}
	var holdExpires any
	if res.HoldExpiresAt != nil {
		holdExpires = res.HoldExpiresAt.UTC()
	}
	result, err := r.db.ExecContext(ctx, q,
		res.ReservationID, res.RoomID,
		res.Guest.FullName, res.Guest.Email, res.Guest.Phone, res.Guest.Nationality,
		res.CheckIn.UTC(), res.CheckOut.UTC(), res.Nights, res.GuestsCount, board,
		res.TotalAmount, res.Currency, res.PaymentStatus, res.Status, holdExpires)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// FindOverlapping returns every reservation for the room whose half-open
// [check_in, check_out) range intersects the given one, regardless of
// status. The caller applies the cancellation and hold-expiry policy.
func (r *ReservationRepo) FindOverlapping(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
		WHERE room_id = ? AND check_in < ? AND check_out > ?`
	rows, err := r.db.QueryContext(ctx, q, roomID, checkOut.UTC(), checkIn.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// SetPaymentSession records the checkout session id on a freshly created
// reservation. The column is written once; later confirmations match on it.
func (r *ReservationRepo) SetPaymentSession(ctx context.Context, id uint64, sessionID string) error {
	const q = `UPDATE reservations SET stripe_session_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, sessionID, id)
	return err
}

// MarkPaid applies the payment confirmation in one update: payment_status
// to paid, status to confirmed, the payment intent id recorded and the
// date hold cleared. It reports found=false when the public code matches
// no reservation. Replays write identical values, so the operation is
// idempotent by construction.
func (r *ReservationRepo) MarkPaid(ctx context.Context, reservationID, paymentIntentID string) (bool, error) {
	// RowsAffected is zero both for missing rows and for no-op replays on
	// MySQL, so existence is checked explicitly.
	var id uint64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM reservations WHERE reservation_id = ?`, reservationID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	const q = `UPDATE reservations
		SET payment_status = ?, status = ?, stripe_payment_intent_id = ?, hold_expires_at = NULL
		WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, model.PaymentPaid, model.StatusConfirmed, paymentIntentID, id); err != nil {
		return false, err
	}
	return true, nil
}

// FindByID returns the reservation with the given internal id, or
// (nil, nil) when it does not exist.
func (r *ReservationRepo) FindByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return res, err
}

// FindBySessionID returns the reservation correlated with a checkout
// session id, or (nil, nil) when none matches. The confirmation page
// uses this after the guest returns from the hosted checkout.
func (r *ReservationRepo) FindBySessionID(ctx context.Context, sessionID string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE stripe_session_id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, sessionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return res, err
}

// UpdateStatus sets the stay status of a reservation. Transition
// legality is validated by the caller against the lifecycle table.
// ErrNotFound is returned when the id matches no reservation.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	var exists uint64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM reservations WHERE id = ?`, id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	return err
}

// ReservationFilter narrows the admin reservation listing. Nil/empty
// fields are ignored. Search matches the reservation code, guest name or
// guest email, case-insensitively. The date bounds apply to check_in.
type ReservationFilter struct {
	Status    string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

// ReservationWithRoom pairs a reservation with display fields of its
// room for admin listings and the CSV export. Room fields are empty when
// the room has since been deleted.
type ReservationWithRoom struct {
	model.Reservation
	RoomTitle string `json:"roomTitle"`
	RoomSlug  string `json:"roomSlug"`
}

// Find returns reservations matching the filter ordered by creation time
// descending (newest first), each joined with its room's title and slug.
func (r *ReservationRepo) Find(ctx context.Context, f ReservationFilter) ([]ReservationWithRoom, error) {
	query := `SELECT r.id, r.reservation_id, r.room_id,
		r.guest_full_name, r.guest_email, r.guest_phone, r.guest_nationality,
		r.check_in, r.check_out, r.nights, r.guests_count, r.board_option,
		r.total_amount, r.currency, r.payment_status, r.status,
		r.stripe_session_id, r.stripe_payment_intent_id, r.hold_expires_at,
		r.created_at, r.updated_at,
		rm.title, rm.slug
		FROM reservations r
		LEFT JOIN rooms rm ON rm.id = r.room_id`
	var conds []string
	var args []any
	if f.Status != "" {
		conds = append(conds, "r.status = ?")
		args = append(args, f.Status)
	}
	if f.Search != "" {
		needle := "%" + f.Search + "%"
		conds = append(conds, "(r.reservation_id LIKE ? OR r.guest_full_name LIKE ? OR r.guest_email LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if f.StartDate != nil {
		conds = append(conds, "r.check_in >= ?")
		args = append(args, f.StartDate.UTC())
	}
	if f.EndDate != nil {
		conds = append(conds, "r.check_in <= ?")
		args = append(args, f.EndDate.UTC())
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationWithRoom, 0)
	for rows.Next() {
		var item ReservationWithRoom
		var boardOption, sessionID, intentID sql.NullString
		var holdExpires sql.NullTime
		var roomTitle, roomSlug sql.NullString
		err := rows.Scan(&item.ID, &item.ReservationID, &item.RoomID,
			&item.Guest.FullName, &item.Guest.Email, &item.Guest.Phone, &item.Guest.Nationality,
			&item.CheckIn, &item.CheckOut, &item.Nights, &item.GuestsCount, &boardOption,
			&item.TotalAmount, &item.Currency, &item.PaymentStatus, &item.Status,
			&sessionID, &intentID, &holdExpires,
			&item.CreatedAt, &item.UpdatedAt,
			&roomTitle, &roomSlug)
		if err != nil {
			return nil, err
		}
		item.BoardOption = boardOption.String
		item.StripeSessionID = sessionID.String
		item.StripePaymentIntentID = intentID.String
		if holdExpires.Valid {
			t := holdExpires.Time
			item.HoldExpiresAt = &t
		}
		item.RoomTitle = roomTitle.String
		item.RoomSlug = roomSlug.String
		out = append(out, item)
	}
	return out, rows.Err()
}
