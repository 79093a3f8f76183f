package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meridianbay/hotel-booking/internal/booking"
	"github.com/meridianbay/hotel-booking/internal/model"
	"github.com/meridianbay/hotel-booking/internal/repository"
)

// BookingHandler serves the public booking flow: opening a checkout
// session for a stay and fetching the reservation after the guest
// returns from the hosted payment page.
type BookingHandler struct {
	Booking      *booking.Service
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
}

func NewBookingHandler(svc *booking.Service, reservations *repository.ReservationRepo, rooms *repository.RoomRepo) *BookingHandler {
	return &BookingHandler{Booking: svc, Reservations: reservations, Rooms: rooms}
}

type guestInfoReq struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
}

type createIntentReq struct {
	RoomID      uint64       `json:"roomId"`
	CheckIn     string       `json:"checkIn"`
	CheckOut    string       `json:"checkOut"`
	GuestsCount int          `json:"guestsCount"`
	GuestInfo   guestInfoReq `json:"guestInfo"`
	BoardOption string       `json:"boardOption"`
}

// CreateIntent validates the request, runs the booking flow and returns
// the checkout session the client should redirect to.
func (h *BookingHandler) CreateIntent(c echo.Context) error {
	var req createIntentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	in := booking.CreateBookingInput{
		RoomID:      req.RoomID,
		GuestsCount: req.GuestsCount,
		BoardOption: req.BoardOption,
		Guest: model.Guest{
			FullName:    req.GuestInfo.FullName,
			Email:       req.GuestInfo.Email,
			Phone:       req.GuestInfo.Phone,
			Nationality: req.GuestInfo.Nationality,
		},
	}
	if req.CheckIn != "" {
		t, err := parseDate(req.CheckIn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-in date"})
		}
		in.CheckIn = t
	}
	if req.CheckOut != "" {
		t, err := parseDate(req.CheckOut)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-out date"})
		}
		in.CheckOut = t
	}

	// The checkout round-trip to the payment provider dominates this
	// budget; 15s keeps a stuck provider from pinning the request.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	result, err := h.Booking.CreateBooking(ctx, in)
	if err != nil {
		var verr *booking.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message, "field": verr.Field})
		case errors.Is(err, booking.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, booking.ErrInvalidRange):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check-out must be after check-in"})
		case errors.Is(err, booking.ErrUnavailable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room not available for selected dates"})
		case errors.Is(err, booking.ErrPaymentUpstream):
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create checkout session"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"sessionId":     result.SessionID,
		"sessionUrl":    result.SessionURL,
		"reservationId": result.ReservationID,
	})
}

// GetBySession returns the reservation correlated with a checkout
// session id, joined with its room. The confirmation page calls this
// when the guest lands back from the hosted checkout.
func (h *BookingHandler) GetBySession(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.FindBySessionID(ctx, c.Param("sessionId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	if res == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}

	// Room lookup is best effort; the reservation is self-contained.
	var room *model.Room
	if r, err := h.Rooms.FindByID(ctx, res.RoomID); err == nil {
		room = r
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res, "room": room})
}
