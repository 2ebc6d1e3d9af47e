// Package notify sends booking confirmations to payers and alerts to the
// operator. Delivery failures are logged and reported, never retried.
package notify

import (
	"context"

	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/sirupsen/logrus"
)

type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, booking *models.Booking) error
}

type AdminAlerter interface {
	SendAdminAlert(ctx context.Context, booking *models.Booking) error
}

type Dispatcher struct {
	confirmations ConfirmationSender
	alerters      []AdminAlerter
}

func NewDispatcher(confirmations ConfirmationSender, alerters ...AdminAlerter) *Dispatcher {
	return &Dispatcher{confirmations: confirmations, alerters: alerters}
}

// Notify sends the payer confirmation and every operator alert. The admin
// alert counts as sent when at least one channel succeeded.
func (d *Dispatcher) Notify(ctx context.Context, booking *models.Booking) models.NotificationResult {
	var result models.NotificationResult
	if booking == nil {
		return result
	}
	log := logrus.WithFields(logrus.Fields{
		"session_id": booking.StripeSessionID,
		"booking_id": booking.ID,
	})

	if d.confirmations != nil {
		if err := d.confirmations.SendConfirmation(ctx, booking); err != nil {
			log.WithError(err).Warn("booking confirmation not sent")
		} else {
			result.ConfirmationSent = true
		}
	}

	for _, alerter := range d.alerters {
		if err := alerter.SendAdminAlert(ctx, booking); err != nil {
			log.WithError(err).Warnf("admin alert via %T not sent", alerter)
			continue
		}
		result.AdminAlertSent = true
	}

	log.WithFields(logrus.Fields{
		"confirmation_sent": result.ConfirmationSent,
		"admin_alert_sent":  result.AdminAlertSent,
	}).Info("booking notifications dispatched")
	return result
}
