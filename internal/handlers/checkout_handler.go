package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/services"
	"github.com/sirupsen/logrus"
)

type CheckoutHandler struct {
	service checkoutApplicationService
}

type checkoutApplicationService interface {
	CreateCheckoutSession(ctx context.Context, input services.CheckoutInput) (*models.CheckoutSession, error)
}

func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type createCheckoutSessionRequest struct {
	Retreat           string      `json:"retreat"`
	AccommodationType string      `json:"accommodationType"`
	Email             string      `json:"email"`
	FirstName         string      `json:"firstName"`
	LastName          string      `json:"lastName"`
	Gender            string      `json:"gender"`
	Age               looseString `json:"age"`
	BeenHiking        looseString `json:"beenHiking"`
	HikingExperience  string      `json:"hikingExperience"`
}

func (h *CheckoutHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req createCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateCheckoutRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	session, err := h.service.CreateCheckoutSession(c.Context(), services.CheckoutInput{
		Retreat:           req.Retreat,
		AccommodationType: req.AccommodationType,
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Gender:            req.Gender,
		Age:               req.Age.String(),
		BeenHiking:        req.BeenHiking.String(),
		HikingExperience:  req.HikingExperience,
	})
	if err != nil {
		return mapCheckoutError(c, err)
	}

	return c.JSON(session)
}

func mapCheckoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	case errors.Is(err, services.ErrAccommodationRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please select an accommodation type"})
	case errors.Is(err, services.ErrInvalidSelection):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid retreat selection"})
	case errors.Is(err, services.ErrSoldOut):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Sorry, this retreat is sold out!"})
	case errors.Is(err, services.ErrPaymentProvider):
		logrus.WithError(err).Error("checkout session could not be created")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Unable to start checkout, please try again"})
	default:
		logrus.WithError(err).Error("checkout failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
