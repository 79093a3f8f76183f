package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

// metadataReservationKey is the checkout session metadata key carrying the
// public reservation code back through the webhook.
const metadataReservationKey = "reservation_id"

// StripeProvider implements Provider against the Stripe API. The API
// client is owned by this struct and injected where needed rather than
// configured through the stripe package globals.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProvider builds a provider from the secret API key and the
// webhook signing secret.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api, webhookSecret: webhookSecret}
}

// CreateCheckoutSession opens a one-off payment checkout session for a
// reservation and returns its id and redirect URL.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (CheckoutSession, error) {
	sp := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(params.Currency)),
					UnitAmount: stripe.Int64(params.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(params.Name),
						Description: stripe.String(params.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sp.Context = ctx
	sp.AddMetadata(metadataReservationKey, params.ReservationID)

	sess, err := p.api.CheckoutSessions.New(sp)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// ParseWebhook verifies the signature of a raw webhook payload and, for
// "checkout.session.completed" events, decodes the session into a
// CompletedCheckout. Events of any other type yield (nil, nil) so the
// caller can acknowledge and ignore them. An invalid or missing
// signature yields ErrSignature.
func (p *StripeProvider) ParseWebhook(payload []byte, sigHeader string) (*CompletedCheckout, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	if event.Type != "checkout.session.completed" {
		return nil, nil
	}
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode completed session: %w", err)
	}
	done := &CompletedCheckout{
		SessionID:     sess.ID,
		ReservationID: sess.Metadata[metadataReservationKey],
	}
	if sess.PaymentIntent != nil {
		done.PaymentIntentID = sess.PaymentIntent.ID
	}
	return done, nil
}
