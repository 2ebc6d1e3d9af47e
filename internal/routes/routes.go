package routes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/catalog"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/config"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/handlers"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/notify"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/repository"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/services"
)

type Dependencies struct {
	DB       repository.DBTX
	Catalog  *catalog.Catalog
	Payments services.PaymentProvider
	Mailer   *notify.SendGridMailer
	// Alerters are extra operator channels on top of the admin email.
	Alerters []notify.AdminAlerter
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, deps Dependencies) error {
	capacityPolicy, err := services.ParseCapacityCheckPolicy(cfg.CapacityCheckPolicy)
	if err != nil {
		return fmt.Errorf("CAPACITY_CHECK_POLICY: %w", err)
	}
	notificationPolicy, err := services.ParseNotificationPolicy(cfg.NotificationPolicy)
	if err != nil {
		return fmt.Errorf("NOTIFICATION_POLICY: %w", err)
	}

	bookingRepo := repository.NewBookingRepository(deps.DB)
	capacityRepo := repository.NewRetreatCapacityRepository(deps.DB)

	capacityService := services.NewCapacityService(deps.Catalog, capacityRepo, bookingRepo, cfg.DefaultCapacity)
	checkoutService := services.NewCheckoutService(deps.Catalog, capacityService, deps.Payments, cfg.ClientURL, capacityPolicy)
	alerters := append([]notify.AdminAlerter{deps.Mailer}, deps.Alerters...)
	dispatcher := notify.NewDispatcher(deps.Mailer, alerters...)
	reconciler := services.NewReconciliationService(bookingRepo, dispatcher, notificationPolicy)

	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	checkoutSessionHandler := handlers.NewCheckoutSessionHandler(deps.Payments, reconciler)
	capacityHandler := handlers.NewCapacityHandler(capacityService)
	webhookHandler := handlers.NewWebhookHandler(deps.Payments, reconciler, cfg.WebhookEnabled())
	contactHandler := handlers.NewContactHandler(deps.Mailer)

	app.Post("/create-checkout-session", checkoutHandler.CreateCheckoutSession)
	app.Get("/checkout-session/:sessionId", checkoutSessionHandler.GetCheckoutSession)
	app.Get("/retreat-capacity/:retreatName", capacityHandler.GetRetreatCapacity)
	app.Post("/webhook", webhookHandler.HandleWebhook)
	app.Post("/send-contact", contactHandler.SendContact)

	return registerDocsRoutes(app, cfg)
}
