package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/notify"
)

type stubContactSender struct {
	err  error
	last notify.ContactMessage
	sent bool
}

func (s *stubContactSender) SendContact(_ context.Context, msg notify.ContactMessage) error {
	s.sent = true
	s.last = msg
	return s.err
}

func postContact(t *testing.T, handler *ContactHandler, body string) *http.Response {
	t.Helper()

	app := fiber.New()
	app.Post("/send-contact", handler.SendContact)

	req := httptest.NewRequest(http.MethodPost, "/send-contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestSendContactForwardsMessage(t *testing.T) {
	sender := &stubContactSender{}
	handler := &ContactHandler{sender: sender}

	resp := postContact(t, handler, `{"name":" Sam ","email":"sam@example.com","phone":"","message":"Is June still open?"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if sender.last.Name != "Sam" || sender.last.Message != "Is June still open?" {
		t.Fatalf("unexpected message %+v", sender.last)
	}
}

func TestSendContactRequiresFields(t *testing.T) {
	sender := &stubContactSender{}
	handler := &ContactHandler{sender: sender}

	resp := postContact(t, handler, `{"name":"Sam","email":"sam@example.com"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if sender.sent {
		t.Fatal("expected nothing sent")
	}
}

func TestSendContactWithoutEmailDeliveryStillSucceeds(t *testing.T) {
	handler := &ContactHandler{sender: &stubContactSender{err: notify.ErrNotConfigured}}

	resp := postContact(t, handler, `{"name":"Sam","email":"sam@example.com","message":"hello"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSendContactDeliveryFailure(t *testing.T) {
	handler := &ContactHandler{sender: &stubContactSender{err: errors.New("sendgrid 500")}}

	resp := postContact(t, handler, `{"name":"Sam","email":"sam@example.com","message":"hello"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
