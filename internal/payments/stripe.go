// Package payments adapts Stripe Checkout to the provider-agnostic types in
// internal/models.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

var (
	ErrInvalidSignature      = errors.New("invalid webhook signature")
	ErrInvalidPayload        = errors.New("invalid webhook payload")
	ErrWebhookNotConfigured  = errors.New("webhook secret not configured")
	ErrMissingCheckoutFields = errors.New("checkout request is missing required fields")
)

const (
	EventCheckoutCompleted          = "checkout.session.completed"
	EventCheckoutAsyncSucceeded     = "checkout.session.async_payment_succeeded"
	EventCheckoutAsyncFailed        = "checkout.session.async_payment_failed"
	EventPaymentIntentPaymentFailed = "payment_intent.payment_failed"
)

type checkoutSessions interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type StripeGateway struct {
	sessions      checkoutSessions
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	sc := client.New(secretKey, nil)
	return &StripeGateway{
		sessions:      sc.CheckoutSessions,
		webhookSecret: strings.TrimSpace(webhookSecret),
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	if req.LineItem.Amount <= 0 || req.LineItem.Currency == "" || req.SuccessURL == "" || req.CancelURL == "" {
		return nil, ErrMissingCheckoutFields
	}

	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.LineItem.Name),
	}
	if req.LineItem.Description != "" {
		product.Description = stripe.String(req.LineItem.Description)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(req.LineItem.Currency),
					ProductData: product,
					UnitAmount:  stripe.Int64(req.LineItem.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}
	return &models.CheckoutSession{URL: s.URL, SessionID: s.ID}, nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSnapshot, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get checkout session %s: %w", sessionID, err)
	}

	var raw json.RawMessage
	if s.LastResponse != nil && len(s.LastResponse.RawJSON) > 0 {
		raw = s.LastResponse.RawJSON
	} else if raw, err = json.Marshal(s); err != nil {
		return nil, fmt.Errorf("encode checkout session: %w", err)
	}
	return snapshotFromSession(s, raw), nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
// Session is populated only for checkout.session.* events.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*models.WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, ErrWebhookNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &models.WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data == nil || !strings.HasPrefix(out.Type, "checkout.session.") {
		return out, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if s.ID == "" {
		return nil, fmt.Errorf("%w: checkout session id missing", ErrInvalidPayload)
	}
	out.Session = snapshotFromSession(&s, event.Data.Raw)
	return out, nil
}

func snapshotFromSession(s *stripe.CheckoutSession, raw json.RawMessage) *models.CheckoutSnapshot {
	email := s.CustomerEmail
	if email == "" && s.CustomerDetails != nil {
		email = s.CustomerDetails.Email
	}
	return &models.CheckoutSnapshot{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		CustomerEmail: email,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
		Raw:           raw,
	}
}
