package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meadows123/WildAdventureCoach-sub000/internal/catalog"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotConfigured     = errors.New("email delivery not configured")
	ErrIncompleteBooking = errors.New("booking is missing fields required for email")
)

const senderName = "Wild Adventure Coach"

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// DatesFunc returns the display dates for a retreat, or "".
type DatesFunc func(retreat string) string

type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type SendGridMailer struct {
	client     sendGridClient
	fromEmail  string
	adminEmail string
	dates      DatesFunc
}

// NewSendGridMailer returns a mailer that logs and reports ErrNotConfigured
// on every send when apiKey is empty.
func NewSendGridMailer(apiKey, fromEmail, adminEmail string, dates DatesFunc) *SendGridMailer {
	m := &SendGridMailer{
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
		dates:      dates,
	}
	if strings.TrimSpace(apiKey) != "" {
		m.client = sendgrid.NewSendClient(apiKey)
	}
	return m
}

func (m *SendGridMailer) Configured() bool {
	return m != nil && m.client != nil
}

func (m *SendGridMailer) SendConfirmation(ctx context.Context, booking *models.Booking) error {
	if !m.Configured() {
		logrus.WithField("session_id", sessionOf(booking)).Warn("sendgrid not configured, skipping confirmation email")
		return ErrNotConfigured
	}
	if booking == nil || booking.Email == "" || booking.FirstName == "" || booking.RetreatName == "" {
		return ErrIncompleteBooking
	}

	data := m.bookingData(booking)
	var html, text bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return fmt.Errorf("render confirmation html: %w", err)
	}
	if err := confirmationText.Execute(&text, data); err != nil {
		return fmt.Errorf("render confirmation text: %w", err)
	}

	from := mail.NewEmail(senderName, m.fromEmail)
	to := mail.NewEmail(booking.FullName(), booking.Email)
	msg := mail.NewSingleEmail(from, "Booking Confirmed - "+booking.RetreatName, to, text.String(), html.String())
	msg.SetReplyTo(mail.NewEmail(senderName, m.fromEmail))
	msg.AddCategories("booking-confirmation", "transactional")
	msg.SetHeader("X-Entity-Ref-ID", "booking-"+booking.StripeSessionID)
	msg.SetHeader("List-Unsubscribe", fmt.Sprintf("<mailto:%s?subject=unsubscribe>", m.fromEmail))
	msg.SetHeader("List-Unsubscribe-Post", "List-Unsubscribe=One-Click")

	return m.send(ctx, msg)
}

func (m *SendGridMailer) SendAdminAlert(ctx context.Context, booking *models.Booking) error {
	if !m.Configured() {
		logrus.WithField("session_id", sessionOf(booking)).Warn("sendgrid not configured, skipping admin alert")
		return ErrNotConfigured
	}
	if booking == nil {
		return ErrIncompleteBooking
	}

	var html bytes.Buffer
	if err := adminAlertHTML.Execute(&html, m.bookingData(booking)); err != nil {
		return fmt.Errorf("render admin alert: %w", err)
	}

	from := mail.NewEmail(senderName+" Booking System", m.fromEmail)
	to := mail.NewEmail(senderName+" Admin", m.adminEmail)
	subject := fmt.Sprintf("New Booking: %s - %s", booking.FullName(), booking.RetreatName)
	text := fmt.Sprintf("%s booked %s (%s). Stripe session %s.", booking.FullName(), booking.RetreatName, booking.Email, booking.StripeSessionID)
	msg := mail.NewSingleEmail(from, subject, to, text, html.String())
	msg.AddCategories("booking-admin")

	return m.send(ctx, msg)
}

func (m *SendGridMailer) SendContact(ctx context.Context, contact ContactMessage) error {
	if !m.Configured() {
		logrus.WithField("from", contact.Email).Warn("sendgrid not configured, skipping contact email")
		return ErrNotConfigured
	}

	var html bytes.Buffer
	if err := contactHTML.Execute(&html, contactEmailData(contact)); err != nil {
		return fmt.Errorf("render contact email: %w", err)
	}

	from := mail.NewEmail(senderName+" Website", m.fromEmail)
	to := mail.NewEmail(senderName, m.adminEmail)
	msg := mail.NewSingleEmail(from, "New Contact Form Message from "+contact.Name, to, contact.Message, html.String())
	msg.SetReplyTo(mail.NewEmail(contact.Name, contact.Email))
	msg.AddCategories("contact-form")

	return m.send(ctx, msg)
}

func (m *SendGridMailer) send(ctx context.Context, msg *mail.SGMailV3) error {
	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (m *SendGridMailer) bookingData(b *models.Booking) bookingEmailData {
	data := bookingEmailData{
		FirstName:        b.FirstName,
		FullName:         b.FullName(),
		Email:            b.Email,
		Retreat:          b.RetreatName,
		Accommodation:    deref(b.AccommodationType),
		AmountPaid:       catalog.FormatAmount(b.AmountPaid, b.Currency),
		SessionID:        b.StripeSessionID,
		Gender:           deref(b.Gender),
		BeenHiking:       deref(b.BeenHiking),
		HikingExperience: deref(b.HikingExperience),
		BookedAt:         b.CreatedAt.UTC().Format(time.RFC1123),
	}
	if m.dates != nil {
		data.Dates = m.dates(b.RetreatName)
	}
	if b.RemainingBalance != nil {
		data.RemainingBalance = catalog.FormatAmount(*b.RemainingBalance, b.Currency)
	}
	if b.Age != nil {
		data.Age = strconv.Itoa(*b.Age)
	}
	return data
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sessionOf(b *models.Booking) string {
	if b == nil {
		return ""
	}
	return b.StripeSessionID
}
