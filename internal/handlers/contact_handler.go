package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/notify"
	"github.com/sirupsen/logrus"
)

type contactSender interface {
	SendContact(ctx context.Context, msg notify.ContactMessage) error
}

type ContactHandler struct {
	sender contactSender
}

func NewContactHandler(sender *notify.SendGridMailer) *ContactHandler {
	return &ContactHandler{sender: sender}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (h *ContactHandler) SendContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateContactRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	msg := notify.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
	}
	log := logrus.WithFields(logrus.Fields{"name": msg.Name, "email": msg.Email})

	if err := h.sender.SendContact(c.Context(), msg); err != nil {
		if !errors.Is(err, notify.ErrNotConfigured) {
			log.WithError(err).Error("contact form email failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process contact form"})
		}
		log.WithField("message", msg.Message).Info("contact form received without email delivery")
		return c.JSON(fiber.Map{"success": true, "message": "Contact form received."})
	}

	log.Info("contact form forwarded")
	return c.JSON(fiber.Map{"success": true, "message": "Thank you for your message. We'll get back to you soon."})
}
