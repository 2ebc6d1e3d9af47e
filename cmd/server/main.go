package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/catalog"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/config"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/database"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/logging"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/mq"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/notify"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/obs"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/payments"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/repository"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/routes"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/services"
	"github.com/sirupsen/logrus"
)

const serviceName = "wildadventure-booking"

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logging.Setup(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.AppEnv)
	if err != nil {
		logrus.Fatalf("Failed to init tracer: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(shutdownCtx)
	}()

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		logrus.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	// 3. Catalog and capacities
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logrus.Fatalf("Failed to load retreat catalog: %v", err)
	}
	syncCtx, cancelSync := context.WithTimeout(ctx, 10*time.Second)
	capacitySync := services.NewCapacityService(
		cat,
		repository.NewRetreatCapacityRepository(database.DB),
		repository.NewBookingRepository(database.DB),
		cfg.DefaultCapacity,
	)
	if err := capacitySync.SyncFromCatalog(syncCtx); err != nil {
		logrus.WithError(err).Warn("retreat capacities not synced, falling back to stored values")
	}
	cancelSync()

	// 4. Outbound integrations
	mailer := notify.NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromEmail, cfg.AdminEmail, cat.Dates)
	if !mailer.Configured() {
		logrus.Warn("SENDGRID_API_KEY not set, emails will be skipped")
	}

	var alerters []notify.AdminAlerter
	if cfg.RabbitURL != "" {
		publisher, err := mq.NewPublisher(cfg.RabbitURL, cfg.NotifyExchange)
		if err != nil {
			logrus.WithError(err).Warn("RabbitMQ unavailable, booking events disabled")
		} else {
			defer publisher.Close()
			alerters = append(alerters, notify.NewMQAlerter(publisher))
		}
	}

	// 5. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.ClientURL,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	err = routes.RegisterRoutes(app, cfg, routes.Dependencies{
		DB:       database.DB,
		Catalog:  cat,
		Payments: payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret),
		Mailer:   mailer,
		Alerters: alerters,
	})
	if err != nil {
		logrus.Fatalf("Failed to register routes: %v", err)
	}
	if !cfg.WebhookEnabled() {
		logrus.Warn("STRIPE_WEBHOOK_SECRET not set, bookings are recorded from the success page only")
	}

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logrus.WithError(err).Error("server shutdown failed")
		}
	}()

	// 6. Start Server
	logrus.WithField("port", cfg.Port).Info("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
