package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/payments"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/services"
	"github.com/sirupsen/logrus"
)

type webhookParser interface {
	ParseWebhook(payload []byte, signature string) (*models.WebhookEvent, error)
}

type WebhookHandler struct {
	parser     webhookParser
	reconciler bookingReconciler
	enabled    bool
}

func NewWebhookHandler(parser services.PaymentProvider, reconciler *services.ReconciliationService, enabled bool) *WebhookHandler {
	return &WebhookHandler{parser: parser, reconciler: reconciler, enabled: enabled}
}

// HandleWebhook acknowledges every verified event with 200. Processing
// failures are logged rather than returned so the provider does not retry
// events that cannot succeed.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	if !h.enabled {
		logrus.Warn("webhook received but STRIPE_WEBHOOK_SECRET is not configured")
		return c.Status(fiber.StatusOK).SendString("Webhook secret not configured")
	}

	event, err := h.parser.ParseWebhook(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrWebhookNotConfigured):
			return c.Status(fiber.StatusOK).SendString("Webhook secret not configured")
		case errors.Is(err, payments.ErrInvalidPayload):
			logrus.WithError(err).Warn("webhook payload rejected")
			return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: invalid payload")
		default:
			logrus.WithError(err).Warn("webhook signature rejected")
			return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: invalid signature")
		}
	}

	log := logrus.WithFields(logrus.Fields{"event_id": event.ID, "event_type": event.Type})

	switch event.Type {
	case payments.EventCheckoutCompleted, payments.EventCheckoutAsyncSucceeded:
		h.reconcile(c.Context(), event, log)
	case payments.EventCheckoutAsyncFailed, payments.EventPaymentIntentPaymentFailed:
		log.Warn("payment failed")
	default:
		log.Debug("unhandled webhook event")
	}

	return c.JSON(fiber.Map{"received": true})
}

func (h *WebhookHandler) reconcile(ctx context.Context, event *models.WebhookEvent, log *logrus.Entry) {
	result, err := h.reconciler.Reconcile(ctx, event.Session)
	switch {
	case errors.Is(err, services.ErrPaymentNotCompleted):
		log.Info("checkout completed without payment, waiting for async result")
	case errors.Is(err, services.ErrIncompleteMetadata):
		log.Error("checkout metadata incomplete, booking not recorded")
	case err != nil:
		log.WithError(err).Error("webhook reconciliation failed")
	case result.Duplicate:
		log.Info("webhook for already recorded booking")
	default:
		log.WithField("booking_id", result.Booking.ID).Info("booking recorded from webhook")
	}
}
