package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meridianbay/hotel-booking/internal/model"
	"github.com/meridianbay/hotel-booking/internal/repository"
)

// AdminRoomHandler serves the back-office room inventory: create, edit
// and delete. The public catalog reads the same table.
type AdminRoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewAdminRoomHandler(rooms *repository.RoomRepo) *AdminRoomHandler {
	return &AdminRoomHandler{Rooms: rooms}
}

type createRoomReq struct {
	Slug         string           `json:"slug"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Capacity     int              `json:"capacity"`
	Beds         int              `json:"beds"`
	Amenities    []string         `json:"amenities"`
	Images       []string         `json:"images"`
	BasePrice    int64            `json:"basePrice"`
	BoardOptions map[string]int64 `json:"boardOptions"`
}

func validateBoardOptions(opts map[string]int64) string {
	for code, surcharge := range opts {
		switch code {
		case model.BoardBB, model.BoardHB, model.BoardFB:
		default:
			return "unknown board option code: " + code
		}
		if surcharge < 0 {
			return "board surcharge must be non-negative"
		}
	}
	return ""
}

// Create adds a room to the inventory. Prices are integer minor
// currency units; board surcharges are per night.
func (h *AdminRoomHandler) Create(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Slug = strings.TrimSpace(req.Slug)
	req.Title = strings.TrimSpace(req.Title)
	switch {
	case req.Slug == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug is required"})
	case req.Title == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	case req.Capacity < 1:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be at least 1"})
	case req.BasePrice < 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "basePrice must be non-negative"})
	}
	if msg := validateBoardOptions(req.BoardOptions); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	room := &model.Room{
		Slug:         req.Slug,
		Title:        req.Title,
		Description:  req.Description,
		Capacity:     req.Capacity,
		Beds:         req.Beds,
		Amenities:    req.Amenities,
		Images:       req.Images,
		BasePrice:    req.BasePrice,
		BoardOptions: req.BoardOptions,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Create(ctx, room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
	}
	return c.JSON(http.StatusCreated, room)
}

// updateRoomReq is a partial patch; nil fields keep their stored value.
type updateRoomReq struct {
	Slug         *string           `json:"slug"`
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Capacity     *int              `json:"capacity"`
	Beds         *int              `json:"beds"`
	Amenities    *[]string         `json:"amenities"`
	Images       *[]string         `json:"images"`
	BasePrice    *int64            `json:"basePrice"`
	BoardOptions *map[string]int64 `json:"boardOptions"`
}

// Update applies a partial edit to a room. Existing reservations keep
// their locked price; nothing is recomputed.
func (h *AdminRoomHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.FindByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch room"})
	}
	if room == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}

	if req.Slug != nil {
		room.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Title != nil {
		room.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Beds != nil {
		room.Beds = *req.Beds
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}
	if req.Images != nil {
		room.Images = *req.Images
	}
	if req.BasePrice != nil {
		room.BasePrice = *req.BasePrice
	}
	if req.BoardOptions != nil {
		room.BoardOptions = *req.BoardOptions
	}

	switch {
	case room.Slug == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug is required"})
	case room.Title == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	case room.Capacity < 1:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be at least 1"})
	case room.BasePrice < 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "basePrice must be non-negative"})
	}
	if msg := validateBoardOptions(room.BoardOptions); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Rooms.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
	}
	return c.JSON(http.StatusOK, room)
}

// Delete removes a room from the inventory. Reservations referencing it
// survive with their own snapshot of guest and price data.
func (h *AdminRoomHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete room"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room deleted successfully"})
}
