package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meridianbay/hotel-booking/internal/booking"
	"github.com/meridianbay/hotel-booking/internal/payment"
	"github.com/meridianbay/hotel-booking/internal/queue"
	"github.com/meridianbay/hotel-booking/internal/repository"
)

// WebhookParser verifies and decodes a raw payment webhook payload.
// Implemented by payment.StripeProvider.
type WebhookParser interface {
	ParseWebhook(payload []byte, sigHeader string) (*payment.CompletedCheckout, error)
}

// WebhookHandler receives payment-provider callbacks. The only event it
// acts on is a completed checkout, which confirms the reservation.
type WebhookHandler struct {
	Parser       WebhookParser
	Booking      *booking.Service
	Reservations *repository.ReservationRepo
}

func NewWebhookHandler(parser WebhookParser, svc *booking.Service, reservations *repository.ReservationRepo) *WebhookHandler {
	return &WebhookHandler{Parser: parser, Booking: svc, Reservations: reservations}
}

// HandleStripeWebhook verifies the event signature, applies the payment
// confirmation and acknowledges. Unknown event types are acknowledged
// without action. Confirmation is idempotent, so provider retries and
// duplicate deliveries are safe.
func (h *WebhookHandler) HandleStripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to read body"})
	}
	sig := c.Request().Header.Get("Stripe-Signature")

	done, err := h.Parser.ParseWebhook(payload, sig)
	if err != nil {
		if errors.Is(err, payment.ErrSignature) {
			// Security-relevant: either a misconfigured secret or a forgery attempt.
			log.Printf("webhook: signature verification failed from %s: %v", c.RealIP(), err)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "webhook signature verification failed"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid webhook payload"})
	}
	if done == nil {
		// Event type we do not handle; acknowledge so the provider stops retrying.
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Booking.ConfirmPayment(ctx, done.ReservationID, done.PaymentIntentID); err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			// The session points at a reservation we no longer know about.
			// Acknowledge anyway: retrying will never succeed.
			log.Printf("webhook: completed session %s references unknown reservation %q", done.SessionID, done.ReservationID)
			return c.JSON(http.StatusOK, echo.Map{"received": true})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm reservation"})
	}
	log.Printf("webhook: reservation %s confirmed and paid", done.ReservationID)

	h.publishConfirmed(ctx, done.SessionID)
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

// publishConfirmed emits the reservation.confirmed event for downstream
// consumers. Strictly best effort: the reservation is already confirmed
// in the database, so a broker or lookup failure is only logged.
func (h *WebhookHandler) publishConfirmed(ctx context.Context, sessionID string) {
	res, err := h.Reservations.FindBySessionID(ctx, sessionID)
	if err != nil || res == nil {
		log.Printf("webhook: could not load reservation for event publish (session %s): %v", sessionID, err)
		return
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ReservationID,
		RoomID:        res.RoomID,
		GuestName:     res.Guest.FullName,
		GuestEmail:    res.Guest.Email,
		CheckIn:       res.CheckIn.Format("2006-01-02"),
		CheckOut:      res.CheckOut.Format("2006-01-02"),
		Nights:        res.Nights,
		TotalAmount:   res.TotalAmount,
		Currency:      res.Currency,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	_ = queue.PublishReservationConfirmed(ctx, ev)
}
