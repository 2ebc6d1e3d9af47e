package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/repository"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const notifyTimeout = 30 * time.Second

type bookingWriter interface {
	Create(ctx context.Context, input repository.CreateBookingInput) (*models.Booking, error)
}

type bookingNotifier interface {
	Notify(ctx context.Context, booking *models.Booking) models.NotificationResult
}

type ReconcileResult struct {
	Booking *models.Booking
	// Duplicate is set when another caller already recorded this checkout.
	Duplicate bool
}

// ReconciliationService turns a paid checkout into exactly one booking. The
// webhook and the success page both call Reconcile; the unique index on
// stripe_session_id arbitrates between them.
type ReconciliationService struct {
	bookings bookingWriter
	notifier bookingNotifier
	policy   NotificationPolicy
}

func NewReconciliationService(bookings bookingWriter, notifier bookingNotifier, policy NotificationPolicy) *ReconciliationService {
	return &ReconciliationService{
		bookings: bookings,
		notifier: notifier,
		policy:   policy,
	}
}

func (s *ReconciliationService) Reconcile(ctx context.Context, snapshot *models.CheckoutSnapshot) (*ReconcileResult, error) {
	if snapshot == nil || !snapshot.Paid() {
		return nil, ErrPaymentNotCompleted
	}

	ctx, span := tracer.Start(ctx, "booking.reconcile")
	defer span.End()
	span.SetAttributes(attribute.String("checkout.session_id", snapshot.ID))

	input, err := bookingFromSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{
		"session_id": snapshot.ID,
		"retreat":    input.RetreatName,
	})

	booking, err := s.bookings.Create(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateBooking) {
			span.SetAttributes(attribute.Bool("booking.duplicate", true))
			log.Info("booking already recorded, skipping")
			return &ReconcileResult{Duplicate: true}, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "booking insert failed")
		log.WithError(err).WithFields(logrus.Fields{
			"email":           input.Email,
			"amount_paid":     input.AmountPaid,
			"manual_recovery": true,
		}).Error("payment captured but booking could not be saved")
		return nil, fmt.Errorf("record booking %s: %w", snapshot.ID, err)
	}

	log.WithField("booking_id", booking.ID).Info("booking recorded")
	s.dispatch(ctx, booking)
	return &ReconcileResult{Booking: booking}, nil
}

func (s *ReconciliationService) dispatch(ctx context.Context, booking *models.Booking) {
	if s.notifier == nil {
		return
	}
	if s.policy == NotifyInline {
		s.notifier.Notify(ctx, booking)
		return
	}
	// Outlives the request but stays on its trace.
	spanCtx := trace.SpanContextFromContext(ctx)
	go func() {
		base := trace.ContextWithSpanContext(context.Background(), spanCtx)
		notifyCtx, cancel := context.WithTimeout(base, notifyTimeout)
		defer cancel()
		s.notifier.Notify(notifyCtx, booking)
	}()
}

func bookingFromSnapshot(snapshot *models.CheckoutSnapshot) (repository.CreateBookingInput, error) {
	meta := snapshot.Metadata
	get := func(key string) string {
		return strings.TrimSpace(meta[key])
	}

	email := strings.TrimSpace(snapshot.CustomerEmail)
	if email == "" {
		email = get(models.MetaEmail)
	}

	input := repository.CreateBookingInput{
		StripeSessionID:   snapshot.ID,
		RetreatName:       get(models.MetaRetreat),
		AccommodationType: optionalString(get(models.MetaAccommodationType)),
		FirstName:         get(models.MetaFirstName),
		LastName:          get(models.MetaLastName),
		Email:             email,
		Gender:            optionalString(get(models.MetaGender)),
		Age:               optionalInt(get(models.MetaAge)),
		BeenHiking:        optionalString(get(models.MetaBeenHiking)),
		HikingExperience:  optionalString(get(models.MetaHikingExperience)),
		Participants:      1,
		AmountPaid:        snapshot.AmountTotal,
		Currency:          strings.ToLower(snapshot.Currency),
		FullPrice:         optionalInt64(get(models.MetaFullPrice)),
		RemainingBalance:  optionalInt64(get(models.MetaRemainingBalance)),
		PaymentStatus:     models.PaymentStatusCompleted,
	}

	if input.StripeSessionID == "" || input.RetreatName == "" || input.FirstName == "" ||
		input.LastName == "" || input.Email == "" {
		return repository.CreateBookingInput{}, ErrIncompleteMetadata
	}
	if input.AmountPaid < 0 {
		input.AmountPaid = 0
	}
	return input, nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalInt(value string) *int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

func optionalInt64(value string) *int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
