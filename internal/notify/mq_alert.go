package notify

import (
	"context"
	"time"

	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
)

const RoutingKeyBookingConfirmed = "booking.confirmed"

type eventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingConfirmedEvent struct {
	BookingID        int64     `json:"bookingId"`
	SessionID        string    `json:"sessionId"`
	Retreat          string    `json:"retreat"`
	Accommodation    *string   `json:"accommodationType,omitempty"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	AmountPaid       int64     `json:"amountPaid"`
	Currency         string    `json:"currency"`
	RemainingBalance *int64    `json:"remainingBalance,omitempty"`
	BookedAt         time.Time `json:"bookedAt"`
}

// MQAlerter announces confirmed bookings on the notify exchange.
type MQAlerter struct {
	publisher eventPublisher
}

func NewMQAlerter(publisher eventPublisher) *MQAlerter {
	return &MQAlerter{publisher: publisher}
}

func (a *MQAlerter) SendAdminAlert(ctx context.Context, booking *models.Booking) error {
	if booking == nil {
		return ErrIncompleteBooking
	}
	return a.publisher.PublishJSON(ctx, RoutingKeyBookingConfirmed, BookingConfirmedEvent{
		BookingID:        booking.ID,
		SessionID:        booking.StripeSessionID,
		Retreat:          booking.RetreatName,
		Accommodation:    booking.AccommodationType,
		Name:             booking.FullName(),
		Email:            booking.Email,
		AmountPaid:       booking.AmountPaid,
		Currency:         booking.Currency,
		RemainingBalance: booking.RemainingBalance,
		BookedAt:         booking.CreatedAt,
	})
}
