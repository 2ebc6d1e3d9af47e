package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

type stubChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (c *stubChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange = exchange
	c.key = key
	c.msg = msg
	return c.err
}

func (c *stubChannel) Close() error {
	c.closed = true
	return nil
}

func TestPublishJSON(t *testing.T) {
	ch := &stubChannel{}
	p := &Publisher{ch: ch, exchange: "booking.exchange"}

	if err := p.PublishJSON(context.Background(), "booking.confirmed", map[string]string{"sessionId": "cs_123"}); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}
	if ch.exchange != "booking.exchange" || ch.key != "booking.confirmed" {
		t.Fatalf("unexpected routing %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.ContentType != "application/json" || ch.msg.MessageId == "" {
		t.Fatalf("unexpected message headers %+v", ch.msg)
	}
	var body map[string]string
	if err := json.Unmarshal(ch.msg.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["sessionId"] != "cs_123" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestPublishJSONReturnsChannelError(t *testing.T) {
	chErr := errors.New("channel closed")
	p := &Publisher{ch: &stubChannel{err: chErr}, exchange: "booking.exchange"}

	if err := p.PublishJSON(context.Background(), "booking.confirmed", struct{}{}); !errors.Is(err, chErr) {
		t.Fatalf("expected channel error, got %v", err)
	}
}

func TestCloseWithoutConnection(t *testing.T) {
	ch := &stubChannel{}
	p := &Publisher{ch: ch}

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ch.closed {
		t.Fatal("expected channel to be closed")
	}
}
