package handlers

import (
	"context"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/services"
	"github.com/sirupsen/logrus"
)

type capacityStatsReader interface {
	Stats(ctx context.Context, retreat string) (*models.RetreatStats, error)
}

type CapacityHandler struct {
	service capacityStatsReader
}

func NewCapacityHandler(service *services.CapacityService) *CapacityHandler {
	return &CapacityHandler{service: service}
}

func (h *CapacityHandler) GetRetreatCapacity(c *fiber.Ctx) error {
	retreat, err := url.PathUnescape(c.Params("retreatName"))
	if err != nil || strings.TrimSpace(retreat) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid retreat name"})
	}

	stats, err := h.service.Stats(c.Context(), strings.TrimSpace(retreat))
	if err != nil {
		logrus.WithError(err).WithField("retreat", retreat).Error("retreat capacity lookup failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load retreat capacity"})
	}

	return c.JSON(stats)
}
