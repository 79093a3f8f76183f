package model

import "time"

// Board plan codes accepted in Room.BoardOptions and
// Reservation.BoardOption. Surcharges are per night, additive to the
// room's base price.
const (
	BoardBB = "BB" // bed & breakfast
	BoardHB = "HB" // half board
	BoardFB = "FB" // full board
)

// Room describes a bookable room type. Prices are integers in minor
// currency units (cents); no floating point is used anywhere in the
// money path. Rooms are created and edited by admins and read-only to
// the public flow.
//
// Fields:
//
//	ID           – primary key identifier.
//	Slug         – unique human-readable identifier used in public URLs.
//	Title        – display name.
//	Description  – display description.
//	Capacity     – maximum number of guests (>= 1).
//	Beds         – number of beds.
//	Amenities    – amenity labels.
//	Images       – image URLs; upload handling is outside this service.
//	BasePrice    – nightly rate in minor currency units (>= 0).
//	BoardOptions – per-night surcharge by board code (BB/HB/FB); absent
//	               codes are not offered for this room.
//	CreatedAt    – creation timestamp.
//	UpdatedAt    – last update timestamp.
type Room struct {
	ID           uint64           `json:"id"`
	Slug         string           `json:"slug"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Capacity     int              `json:"capacity"`
	Beds         int              `json:"beds"`
	Amenities    []string         `json:"amenities"`
	Images       []string         `json:"images"`
	BasePrice    int64            `json:"basePrice"`
	BoardOptions map[string]int64 `json:"boardOptions,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// HasBoardOption reports whether the room offers the given board code.
func (r *Room) HasBoardOption(code string) bool {
	_, ok := r.BoardOptions[code]
	return ok
}
