package handlers

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/services"
	"github.com/sirupsen/logrus"
)

type checkoutSessionReader interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSnapshot, error)
}

type bookingReconciler interface {
	Reconcile(ctx context.Context, snapshot *models.CheckoutSnapshot) (*services.ReconcileResult, error)
}

// CheckoutSessionHandler serves the success page. A paid session is
// reconciled before it is returned, so a booking exists even when the
// webhook never arrives.
type CheckoutSessionHandler struct {
	sessions   checkoutSessionReader
	reconciler bookingReconciler
}

func NewCheckoutSessionHandler(sessions services.PaymentProvider, reconciler *services.ReconciliationService) *CheckoutSessionHandler {
	return &CheckoutSessionHandler{sessions: sessions, reconciler: reconciler}
}

func (h *CheckoutSessionHandler) GetCheckoutSession(c *fiber.Ctx) error {
	sessionID, err := url.PathUnescape(c.Params("sessionId"))
	if err != nil || strings.TrimSpace(sessionID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}
	sessionID = strings.TrimSpace(sessionID)

	snapshot, err := h.sessions.GetCheckoutSession(c.Context(), sessionID)
	if err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Warn("checkout session lookup failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could not load booking details"})
	}

	if snapshot.Paid() {
		if _, err := h.reconciler.Reconcile(c.Context(), snapshot); err != nil {
			if !errors.Is(err, services.ErrIncompleteMetadata) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not record booking"})
			}
			logrus.WithField("session_id", sessionID).Error("paid checkout session has incomplete metadata")
		}
	}

	if len(snapshot.Raw) == 0 {
		return c.JSON(snapshot)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(snapshot.Raw)
}
