// Package payment abstracts the hosted checkout collaborator. The booking
// core only sees the Provider interface; the Stripe implementation lives
// in stripe.go so tests can substitute a fake.
package payment

import (
	"context"
	"errors"
)

// ErrSignature is returned when a webhook payload fails authenticity
// verification. No state may be mutated after this error.
var ErrSignature = errors.New("webhook signature verification failed")

// CheckoutParams describes one hosted checkout session request. Amount is
// in minor currency units. ReservationID is the public reservation code
// attached as correlation metadata and echoed back by the webhook.
type CheckoutParams struct {
	Amount        int64
	Currency      string
	Name          string
	Description   string
	SuccessURL    string
	CancelURL     string
	ReservationID string
}

// CheckoutSession is the provider's handle for a created session. URL is
// where the guest is redirected to pay.
type CheckoutSession struct {
	ID  string
	URL string
}

// CompletedCheckout is the decoded "session completed" webhook event.
type CompletedCheckout struct {
	SessionID       string
	PaymentIntentID string
	ReservationID   string
}

// Provider creates hosted checkout sessions. Implementations must not
// retry on failure; the orchestrator surfaces errors per-request.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (CheckoutSession, error)
}
