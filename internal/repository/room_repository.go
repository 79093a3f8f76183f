package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/meridianbay/hotel-booking/internal/model"
)

// RoomRepo provides access to the rooms table. Amenities, images and
// board options are stored as JSON columns, mirroring the document shape
// the public API exposes.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, slug, title, description, capacity, beds, amenities, images, base_price, board_options, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var r model.Room
	// boards scans as nil when the board_options column is NULL.
	var amenities, images, boards []byte
	err := row.Scan(&r.ID, &r.Slug, &r.Title, &r.Description, &r.Capacity, &r.Beds,
		&amenities, &images, &r.BasePrice, &boards, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &r.Amenities); err != nil {
			return nil, err
		}
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &r.Images); err != nil {
			return nil, err
		}
	}
	if len(boards) > 0 {
		if err := json.Unmarshal(boards, &r.BoardOptions); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

func roomJSONArgs(r *model.Room) (amenities, images []byte, boards any, err error) {
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
	if r.Images == nil {
		r.Images = []string{}
	}
	if amenities, err = json.Marshal(r.Amenities); err != nil {
		return nil, nil, nil, err
	}
	if images, err = json.Marshal(r.Images); err != nil {
		return nil, nil, nil, err
	}
	if len(r.BoardOptions) == 0 {
		return amenities, images, nil, nil
	}
	b, err := json.Marshal(r.BoardOptions)
	if err != nil {
		return nil, nil, nil, err
	}
	return amenities, images, b, nil
}

// FindByID returns the room with the given id, or (nil, nil) when it
// does not exist.
func (r *RoomRepo) FindByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	room, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return room, err
}

// FindBySlug returns the room with the given slug, or (nil, nil) when it
// does not exist.
func (r *RoomRepo) FindBySlug(ctx context.Context, slug string) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE slug = ?`
	room, err := scanRoom(r.db.QueryRowContext(ctx, q, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return room, err
}

// RoomFilter narrows the public room listing. Nil fields are ignored.
type RoomFilter struct {
	MinCapacity *int   // at least this many guests
	MinPrice    *int64 // basePrice >= MinPrice, minor units
	MaxPrice    *int64 // basePrice <= MaxPrice, minor units
}

// Find returns rooms matching the filter ordered by ascending base
// price. An empty filter returns every room.
func (r *RoomRepo) Find(ctx context.Context, f RoomFilter) ([]model.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms`
	var conds []string
	var args []any
	if f.MinCapacity != nil {
		conds = append(conds, "capacity >= ?")
		args = append(args, *f.MinCapacity)
	}
	if f.MinPrice != nil {
		conds = append(conds, "base_price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "base_price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY base_price ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

// Create inserts a new room and populates its generated id and
// timestamps on the provided struct.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	amenities, images, boards, err := roomJSONArgs(room)
	if err != nil {
		return err
	}
	const q = `INSERT INTO rooms
		(slug, title, description, capacity, beds, amenities, images, base_price, board_options)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, room.Slug, room.Title, room.Description,
		room.Capacity, room.Beds, amenities, images, room.BasePrice, boards)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	// Query back to populate timestamps set by the database.
	const sel = `SELECT created_at, updated_at FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, room.ID).Scan(&room.CreatedAt, &room.UpdatedAt)
}

// Update overwrites every editable field of the room. Callers load the
// current record, apply their partial changes and save the result.
// ErrNotFound is returned when the id matches no room.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	amenities, images, boards, err := roomJSONArgs(room)
	if err != nil {
		return err
	}
	const q = `UPDATE rooms SET slug = ?, title = ?, description = ?, capacity = ?,
		beds = ?, amenities = ?, images = ?, base_price = ?, board_options = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q, room.Slug, room.Title, room.Description,
		room.Capacity, room.Beds, amenities, images, room.BasePrice, boards, room.ID)
	if err != nil {
		return err
	}
	// MySQL reports zero affected rows for no-op updates, so verify
	// existence instead of trusting RowsAffected.
	var exists uint64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ?`, room.ID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes a room. Reservations referencing it are intentionally
// left untouched; they carry their own guest and price snapshot.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
