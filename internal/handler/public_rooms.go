package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meridianbay/hotel-booking/internal/booking"
	"github.com/meridianbay/hotel-booking/internal/model"
	"github.com/meridianbay/hotel-booking/internal/repository"
)

// PublicHandler serves the unauthenticated catalog endpoints: room
// listing, room detail by slug and the availability search.
type PublicHandler struct {
	Rooms    *repository.RoomRepo
	Booking  *booking.Service
	Currency string
}

func NewPublicHandler(rooms *repository.RoomRepo, svc *booking.Service, currency string) *PublicHandler {
	return &PublicHandler{Rooms: rooms, Booking: svc, Currency: currency}
}

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp.
// Clients send bare dates; the stored check-in/out instants are UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ListRooms returns the catalog ordered by ascending base price, with
// optional capacity and price-band filters from the query string.
func (h *PublicHandler) ListRooms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var f repository.RoomFilter
	if v := c.QueryParam("capacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid capacity"})
		}
		f.MinCapacity = &n
	}
	if v := c.QueryParam("minPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid minPrice"})
		}
		f.MinPrice = &n
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maxPrice"})
		}
		f.MaxPrice = &n
	}

	rooms, err := h.Rooms.Find(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch rooms"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoomBySlug returns a single room by its public slug.
func (h *PublicHandler) GetRoomBySlug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch room"})
	}
	if room == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	return c.JSON(http.StatusOK, room)
}

type availabilityReq struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Guests   int    `json:"guests"`
	RoomSlug string `json:"roomSlug"`
}

type priceBreakdown struct {
	BasePrice  int64  `json:"basePrice"`
	Nights     int    `json:"nights"`
	TotalPrice int64  `json:"totalPrice"`
	Currency   string `json:"currency"`
}

type availableRoom struct {
	Room           model.Room     `json:"room"`
	PriceBreakdown priceBreakdown `json:"priceBreakdown"`
}

// CheckAvailability returns the rooms free over the requested stay,
// each with a base-rate price breakdown. Scoped to one room when a slug
// is supplied; narrowed by guest count when one is given.
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
	var req availabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CheckIn == "" || req.CheckOut == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check-in and check-out dates are required"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-in date"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-out date"})
	}
	if !checkIn.Before(checkOut) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check-out must be after check-in"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	nights, err := booking.Nights(checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date range"})
	}

	var rooms []model.Room
	if req.RoomSlug != "" {
		room, err := h.Rooms.FindBySlug(ctx, req.RoomSlug)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
		}
		if room != nil {
			rooms = append(rooms, *room)
		}
	} else {
		var f repository.RoomFilter
		if req.Guests > 0 {
			f.MinCapacity = &req.Guests
		}
		if rooms, err = h.Rooms.Find(ctx, f); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
		}
	}

	available := make([]availableRoom, 0, len(rooms))
	for i := range rooms {
		free, err := h.Booking.IsAvailable(ctx, rooms[i].ID, checkIn, checkOut)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
		}
		if !free {
			continue
		}
		available = append(available, availableRoom{
			Room: rooms[i],
			PriceBreakdown: priceBreakdown{
				BasePrice:  rooms[i].BasePrice,
				Nights:     nights,
				TotalPrice: booking.TotalPrice(&rooms[i], nights, ""),
				Currency:   h.Currency,
			},
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"available": len(available) > 0,
		"rooms":     available,
		"checkIn":   checkIn,
		"checkOut":  checkOut,
		"nights":    nights,
	})
}
