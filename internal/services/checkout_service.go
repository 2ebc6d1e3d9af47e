package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/meadows123/WildAdventureCoach-sub000/internal/catalog"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/meadows123/WildAdventureCoach-sub000/internal/services")

// PaymentProvider is the hosted-checkout boundary. The Stripe adapter lives
// in internal/payments.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSnapshot, error)
	ParseWebhook(payload []byte, signature string) (*models.WebhookEvent, error)
}

type spotsReader interface {
	AvailableSpots(ctx context.Context, retreat string) (int, error)
}

type CheckoutInput struct {
	Retreat           string
	AccommodationType string
	Email             string
	FirstName         string
	LastName          string
	Gender            string
	Age               string
	BeenHiking        string
	HikingExperience  string
}

type CheckoutService struct {
	catalog   *catalog.Catalog
	capacity  spotsReader
	payments  PaymentProvider
	clientURL string
	policy    CapacityCheckPolicy
}

func NewCheckoutService(
	cat *catalog.Catalog,
	capacity spotsReader,
	payments PaymentProvider,
	clientURL string,
	policy CapacityCheckPolicy,
) *CheckoutService {
	return &CheckoutService{
		catalog:   cat,
		capacity:  capacity,
		payments:  payments,
		clientURL: strings.TrimRight(clientURL, "/"),
		policy:    policy,
	}
}

// CreateCheckoutSession validates the request, prices it, applies the
// capacity gate and opens a hosted checkout for the deposit. It never writes
// a booking; that happens only on reconciliation.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, input CheckoutInput) (*models.CheckoutSession, error) {
	ctx, span := tracer.Start(ctx, "checkout.create_session")
	defer span.End()

	input = trimCheckoutInput(input)
	span.SetAttributes(attribute.String("retreat", input.Retreat))

	if err := s.validate(input); err != nil {
		return nil, err
	}

	price, err := s.catalog.ResolvePrice(input.Retreat, input.AccommodationType)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrInvalidSelection
		}
		return nil, err
	}

	spots, err := s.capacity.AvailableSpots(ctx, input.Retreat)
	switch {
	case err != nil && s.policy == CapacityCheckStrict:
		span.RecordError(err)
		span.SetStatus(codes.Error, "capacity read failed")
		return nil, fmt.Errorf("capacity check: %w", err)
	case err != nil:
		logrus.WithError(err).WithField("retreat", input.Retreat).Warn("capacity check failed, allowing checkout")
	case spots < 1:
		return nil, ErrSoldOut
	}

	item := models.CheckoutLineItem{
		Name:        lineItemName(input),
		Description: fmt.Sprintf("Deposit payment. Remaining balance of %s due before the retreat.", catalog.FormatAmount(price.RemainingBalance(), price.Currency)),
		Amount:      price.DepositPrice,
		Currency:    price.Currency,
	}

	session, err := s.payments.CreateCheckoutSession(ctx, models.CheckoutRequest{
		CustomerEmail: input.Email,
		LineItem:      item,
		Metadata:      checkoutMetadata(input, price),
		SuccessURL:    s.clientURL + "/booking/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.clientURL + "/booking?canceled=true",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	span.SetAttributes(attribute.String("checkout.session_id", session.SessionID))
	logrus.WithFields(logrus.Fields{
		"retreat":    input.Retreat,
		"session_id": session.SessionID,
		"deposit":    price.DepositPrice,
		"currency":   price.Currency,
	}).Info("checkout session created")
	return session, nil
}

func (s *CheckoutService) validate(input CheckoutInput) error {
	required := []string{
		input.Retreat,
		input.Email,
		input.FirstName,
		input.LastName,
		input.Gender,
		input.Age,
		input.BeenHiking,
		input.HikingExperience,
	}
	for _, value := range required {
		if value == "" {
			return ErrMissingFields
		}
	}
	if input.AccommodationType == "" && s.catalog.RequiresAccommodation(input.Retreat) {
		return ErrAccommodationRequired
	}
	return nil
}

func trimCheckoutInput(input CheckoutInput) CheckoutInput {
	return CheckoutInput{
		Retreat:           strings.TrimSpace(input.Retreat),
		AccommodationType: strings.TrimSpace(input.AccommodationType),
		Email:             strings.TrimSpace(input.Email),
		FirstName:         strings.TrimSpace(input.FirstName),
		LastName:          strings.TrimSpace(input.LastName),
		Gender:            strings.TrimSpace(input.Gender),
		Age:               strings.TrimSpace(input.Age),
		BeenHiking:        strings.TrimSpace(input.BeenHiking),
		HikingExperience:  strings.TrimSpace(input.HikingExperience),
	}
}

func lineItemName(input CheckoutInput) string {
	if input.AccommodationType == "" {
		return input.Retreat
	}
	return input.Retreat + catalog.KeySeparator + input.AccommodationType
}

func checkoutMetadata(input CheckoutInput, price catalog.Price) map[string]string {
	return map[string]string{
		models.MetaRetreat:           input.Retreat,
		models.MetaAccommodationType: input.AccommodationType,
		models.MetaEmail:             input.Email,
		models.MetaFirstName:         input.FirstName,
		models.MetaLastName:          input.LastName,
		models.MetaGender:            input.Gender,
		models.MetaAge:               input.Age,
		models.MetaBeenHiking:        input.BeenHiking,
		models.MetaHikingExperience:  input.HikingExperience,
		models.MetaFullPrice:         strconv.FormatInt(price.FullPrice, 10),
		models.MetaDepositAmount:     strconv.FormatInt(price.DepositPrice, 10),
		models.MetaRemainingBalance:  strconv.FormatInt(price.RemainingBalance(), 10),
	}
}
