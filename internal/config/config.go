package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port                string `envconfig:"PORT" default:"4242"`
	DBUrl               string `envconfig:"DB_URL"`
	ClientURL           string `envconfig:"CLIENT_URL" default:"http://localhost:3000"`
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	SendGridAPIKey      string `envconfig:"SENDGRID_API_KEY"`
	FromEmail           string `envconfig:"FROM_EMAIL" default:"bookings@wildadventurecoach.com"`
	AdminEmail          string `envconfig:"ADMIN_EMAIL"`
	CatalogPath         string `envconfig:"CATALOG_PATH"`
	DefaultCapacity     int    `envconfig:"DEFAULT_CAPACITY" default:"9"`
	CapacityCheckPolicy string `envconfig:"CAPACITY_CHECK_POLICY" default:"advisory"`
	NotificationPolicy  string `envconfig:"NOTIFICATION_POLICY" default:"fire_and_forget"`
	RabbitURL           string `envconfig:"RABBIT_URL"`
	NotifyExchange      string `envconfig:"NOTIFY_EXCHANGE" default:"booking.exchange"`
	OTLPEndpoint        string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	AppEnv              string `envconfig:"APP_ENV" default:"production"`
	EnableDocs          bool   `envconfig:"ENABLE_API_DOCS" default:"false"`
	LogLevel            string `envconfig:"LOG_LEVEL" default:"info"`
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if strings.TrimSpace(cfg.StripeSecretKey) == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.DefaultCapacity < 1 {
		return nil, fmt.Errorf("DEFAULT_CAPACITY must be at least 1")
	}

	cfg.AppEnv = normalizeEnv(cfg.AppEnv)
	cfg.ClientURL = strings.TrimRight(strings.TrimSpace(cfg.ClientURL), "/")
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.FromEmail
	}
	return &cfg, nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}

// WebhookEnabled reports whether push-path events can be verified.
func (c *Config) WebhookEnabled() bool {
	return c != nil && strings.TrimSpace(c.StripeWebhookSecret) != ""
}
