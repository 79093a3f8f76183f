package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meridianbay/hotel-booking/internal/booking"
	"github.com/meridianbay/hotel-booking/internal/repository"
)

// AdminReservationHandler serves the back-office reservation views:
// filtered listing, detail, status changes and the CSV export.
type AdminReservationHandler struct {
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
}

func NewAdminReservationHandler(reservations *repository.ReservationRepo, rooms *repository.RoomRepo) *AdminReservationHandler {
	return &AdminReservationHandler{Reservations: reservations, Rooms: rooms}
}

func reservationFilterFromQuery(c echo.Context) (repository.ReservationFilter, error) {
	f := repository.ReservationFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}
	if v := c.QueryParam("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid startDate")
		}
		f.StartDate = &t
	}
	if v := c.QueryParam("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid endDate")
		}
		f.EndDate = &t
	}
	return f, nil
}

// List returns reservations newest first, narrowed by the optional
// status, search, startDate and endDate query parameters.
func (h *AdminReservationHandler) List(c echo.Context) error {
	f, err := reservationFilterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	items, err := h.Reservations.Find(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservations"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns a single reservation by its internal id.
func (h *AdminReservationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.FindByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	if res == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.JSON(http.StatusOK, res)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves a reservation through the stay lifecycle. The
// target is checked against the transition table; re-asserting the
// current status is accepted without a write.
func (h *AdminReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.FindByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	if res == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}

	if err := booking.ValidateTransition(res.Status, req.Status); err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	if res.Status != req.Status {
		if err := h.Reservations.UpdateStatus(ctx, id, req.Status); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
		}
		res.Status = req.Status
	}
	return c.JSON(http.StatusOK, res)
}

// ExportCSV streams the reservation list as a CSV attachment, bounded
// by the optional startDate/endDate check-in window.
func (h *AdminReservationHandler) ExportCSV(c echo.Context) error {
	f, err := reservationFilterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	items, err := h.Reservations.Find(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to export reservations"})
	}

	filename := fmt.Sprintf("reservations-%d.csv", time.Now().UnixMilli())
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	header := []string{"Reservation ID", "Guest Name", "Email", "Phone", "Room",
		"Check-In", "Check-Out", "Nights", "Guests", "Total Amount",
		"Payment Status", "Status", "Created At"}
	if err := w.Write(header); err != nil {
		return err
	}
	const dateLayout = "2006-01-02"
	for i := range items {
		r := &items[i]
		roomTitle := r.RoomTitle
		if roomTitle == "" {
			roomTitle = "N/A"
		}
		row := []string{
			r.ReservationID,
			r.Guest.FullName,
			r.Guest.Email,
			r.Guest.Phone,
			roomTitle,
			r.CheckIn.Format(dateLayout),
			r.CheckOut.Format(dateLayout),
			strconv.Itoa(r.Nights),
			strconv.Itoa(r.GuestsCount),
			fmt.Sprintf("$%.2f", float64(r.TotalAmount)/100),
			r.PaymentStatus,
			r.Status,
			r.CreatedAt.Format(dateLayout),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
