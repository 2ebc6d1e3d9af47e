package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type stubSendGrid struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (s *stubSendGrid) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	s.sent = append(s.sent, email)
	if s.err != nil {
		return nil, s.err
	}
	status := s.status
	if status == 0 {
		status = 202
	}
	return &rest.Response{StatusCode: status}, nil
}

type stubConfirmations struct {
	err   error
	calls int
}

func (s *stubConfirmations) SendConfirmation(_ context.Context, _ *models.Booking) error {
	s.calls++
	return s.err
}

type stubAlerter struct {
	err   error
	calls int
}

func (s *stubAlerter) SendAdminAlert(_ context.Context, _ *models.Booking) error {
	s.calls++
	return s.err
}

type stubPublisher struct {
	key   string
	value any
	err   error
}

func (p *stubPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.key = key
	p.value = v
	return p.err
}

func testBooking() *models.Booking {
	accommodation := "Double"
	remaining := int64(150000)
	age := 34
	return &models.Booking{
		ID:                11,
		StripeSessionID:   "cs_123",
		RetreatName:       "Hiking & Yoga Retreat Chamonix",
		AccommodationType: &accommodation,
		FirstName:         "Jane",
		LastName:          "Doe",
		Email:             "jane@example.com",
		Age:               &age,
		Participants:      1,
		AmountPaid:        25000,
		Currency:          "gbp",
		RemainingBalance:  &remaining,
		PaymentStatus:     models.PaymentStatusCompleted,
		CreatedAt:         time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newTestMailer(client *stubSendGrid) *SendGridMailer {
	return &SendGridMailer{
		client:     client,
		fromEmail:  "bookings@example.com",
		adminEmail: "admin@example.com",
		dates: func(retreat string) string {
			if retreat == "Hiking & Yoga Retreat Chamonix" {
				return "June 4 - 9, 2026"
			}
			return ""
		},
	}
}

func htmlBody(t *testing.T, msg *mail.SGMailV3) string {
	t.Helper()
	for _, c := range msg.Content {
		if c.Type == "text/html" {
			return c.Value
		}
	}
	t.Fatal("expected html content")
	return ""
}

func TestSendConfirmationBuildsMessage(t *testing.T) {
	client := &stubSendGrid{}
	mailer := newTestMailer(client)

	if err := mailer.SendConfirmation(context.Background(), testBooking()); err != nil {
		t.Fatalf("SendConfirmation: %v", err)
	}
	if len(client.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(client.sent))
	}

	msg := client.sent[0]
	if msg.Subject != "Booking Confirmed - Hiking & Yoga Retreat Chamonix" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if msg.Personalizations[0].To[0].Address != "jane@example.com" {
		t.Fatalf("unexpected recipient %+v", msg.Personalizations[0].To[0])
	}
	if msg.Headers["X-Entity-Ref-ID"] != "booking-cs_123" {
		t.Fatalf("expected entity ref header, got %v", msg.Headers)
	}
	if len(msg.Categories) != 2 || msg.Categories[0] != "booking-confirmation" {
		t.Fatalf("unexpected categories %v", msg.Categories)
	}

	body := htmlBody(t, msg)
	for _, want := range []string{"June 4 - 9, 2026", "£250.00", "£1,500.00", "Double", "cs_123"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected html body to contain %q", want)
		}
	}
}

func TestSendConfirmationWithoutAPIKey(t *testing.T) {
	mailer := NewSendGridMailer("", "bookings@example.com", "admin@example.com", nil)

	if err := mailer.SendConfirmation(context.Background(), testBooking()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := mailer.SendContact(context.Background(), ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSendConfirmationRejectsIncompleteBooking(t *testing.T) {
	client := &stubSendGrid{}
	mailer := newTestMailer(client)

	booking := testBooking()
	booking.Email = ""
	if err := mailer.SendConfirmation(context.Background(), booking); !errors.Is(err, ErrIncompleteBooking) {
		t.Fatalf("expected ErrIncompleteBooking, got %v", err)
	}
	if len(client.sent) != 0 {
		t.Fatal("expected nothing sent")
	}
}

func TestSendReportsRejectedStatus(t *testing.T) {
	mailer := newTestMailer(&stubSendGrid{status: 401})

	if err := mailer.SendAdminAlert(context.Background(), testBooking()); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestSendAdminAlertGoesToAdmin(t *testing.T) {
	client := &stubSendGrid{}
	mailer := newTestMailer(client)

	if err := mailer.SendAdminAlert(context.Background(), testBooking()); err != nil {
		t.Fatalf("SendAdminAlert: %v", err)
	}
	msg := client.sent[0]
	if msg.Personalizations[0].To[0].Address != "admin@example.com" {
		t.Fatalf("unexpected recipient %+v", msg.Personalizations[0].To[0])
	}
	if !strings.Contains(msg.Subject, "Jane Doe") {
		t.Fatalf("expected payer name in subject, got %q", msg.Subject)
	}
}

func TestSendContactSetsReplyTo(t *testing.T) {
	client := &stubSendGrid{}
	mailer := newTestMailer(client)

	err := mailer.SendContact(context.Background(), ContactMessage{
		Name:    "Sam",
		Email:   "sam@example.com",
		Message: "<b>Is June still open?</b>",
	})
	if err != nil {
		t.Fatalf("SendContact: %v", err)
	}
	msg := client.sent[0]
	if msg.ReplyTo == nil || msg.ReplyTo.Address != "sam@example.com" {
		t.Fatalf("expected reply-to sender, got %+v", msg.ReplyTo)
	}
	if strings.Contains(htmlBody(t, msg), "<b>Is June") {
		t.Fatal("expected message to be html-escaped")
	}
}

func TestMQAlerterPublishesBookingConfirmed(t *testing.T) {
	pub := &stubPublisher{}
	alerter := NewMQAlerter(pub)

	if err := alerter.SendAdminAlert(context.Background(), testBooking()); err != nil {
		t.Fatalf("SendAdminAlert: %v", err)
	}
	if pub.key != RoutingKeyBookingConfirmed {
		t.Fatalf("expected %s, got %s", RoutingKeyBookingConfirmed, pub.key)
	}
	event, ok := pub.value.(BookingConfirmedEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", pub.value)
	}
	if event.SessionID != "cs_123" || event.AmountPaid != 25000 || event.Name != "Jane Doe" {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestDispatcherReportsPerChannelOutcome(t *testing.T) {
	confirm := &stubConfirmations{}
	failing := &stubAlerter{err: errors.New("smtp down")}
	working := &stubAlerter{}

	result := NewDispatcher(confirm, failing, working).Notify(context.Background(), testBooking())
	if !result.ConfirmationSent || !result.AdminAlertSent {
		t.Fatalf("unexpected result %+v", result)
	}
	if failing.calls != 1 || working.calls != 1 {
		t.Fatalf("expected every alerter to be tried, got %d / %d", failing.calls, working.calls)
	}
}

func TestDispatcherAllChannelsFail(t *testing.T) {
	confirm := &stubConfirmations{err: ErrNotConfigured}
	alerter := &stubAlerter{err: ErrNotConfigured}

	result := NewDispatcher(confirm, alerter).Notify(context.Background(), testBooking())
	if result.ConfirmationSent || result.AdminAlertSent {
		t.Fatalf("expected nothing sent, got %+v", result)
	}
}
