package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"tutorbook/pkg/kafka"
	"tutorbook/pkg/logger"
	"tutorbook/pkg/middleware"
)

type mockProducer struct {
	published []kafka.Message
	err       error
	closed    bool
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

func (m *mockProducer) Close() error {
	m.closed = true
	return nil
}

func TestKafkaPublisher_RoundTrip(t *testing.T) {
	producer := &mockProducer{}
	pub := newKafkaPublisher(producer, "tutorbook")

	event, err := New(BookingCreated, "b1", BookingPayload{
		BookingID: "b1",
		StudentID: "s1",
		TeacherID: "t1",
		Date:      "2025-01-02",
		Time:      "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	if err := pub.Publish(ctx, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(producer.published) != 1 {
		t.Fatalf("expected one message, got %d", len(producer.published))
	}

	msg := producer.published[0]
	if msg.Key != "b1" {
		t.Errorf("expected key b1, got %q", msg.Key)
	}
	if msg.GetEventType() != string(BookingCreated) || msg.GetEventID() != event.ID {
		t.Errorf("unexpected headers: %v", msg.Headers)
	}
	if msg.Headers[kafka.HeaderSource] != "tutorbook" {
		t.Errorf("expected source header, got %v", msg.Headers)
	}
	if msg.GetCorrelationID() != "req-1" {
		t.Errorf("expected request id as correlation id, got %q", msg.GetCorrelationID())
	}

	decoded, err := Decode(msg)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	var payload BookingPayload
	if err := decoded.DecodePayload(&payload); err != nil {
		t.Fatalf("unexpected payload error: %v", err)
	}
	if payload.TeacherID != "t1" || payload.Time != "10:00" {
		t.Errorf("unexpected payload: %+v", payload)
	}

	if err := pub.Close(); err != nil || !producer.closed {
		t.Errorf("expected producer to be closed, err=%v", err)
	}
}

func TestKafkaPublisher_WrapsError(t *testing.T) {
	sentinel := errors.New("broker down")
	pub := newKafkaPublisher(&mockProducer{err: sentinel}, "tutorbook")

	event, _ := New(BookingDeleted, "b1", BookingPayload{BookingID: "b1"})
	if err := pub.Publish(context.Background(), event); !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped broker error, got %v", err)
	}
}

func TestEmit_SwallowsFailures(t *testing.T) {
	producer := &mockProducer{err: errors.New("broker down")}
	Emit(context.Background(), newKafkaPublisher(producer, "tutorbook"), logger.Discard(),
		AccountRegistered, "a1", AccountPayload{AccountID: "a1", Role: "student"})

	if len(producer.published) != 0 {
		t.Errorf("expected nothing published, got %d", len(producer.published))
	}
}

type stalledPublisher struct {
	parentErr error
	deadline  bool
	released  error
}

func (p *stalledPublisher) Publish(ctx context.Context, event Event) error {
	p.parentErr = ctx.Err()
	_, p.deadline = ctx.Deadline()
	<-ctx.Done()
	p.released = ctx.Err()
	return p.released
}

func (p *stalledPublisher) Close() error { return nil }

func TestEmit_DetachedAndBounded(t *testing.T) {
	original := publishTimeout
	publishTimeout = 20 * time.Millisecond
	t.Cleanup(func() { publishTimeout = original })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pub := &stalledPublisher{}
	done := make(chan struct{})
	go func() {
		Emit(ctx, pub, logger.Discard(), BookingCreated, "b1", BookingPayload{BookingID: "b1"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit did not return after the publish timeout")
	}

	if pub.parentErr != nil {
		t.Errorf("expected request cancellation not to reach the publisher, got %v", pub.parentErr)
	}
	if !pub.deadline {
		t.Error("expected the publish context to carry a deadline")
	}
	if !errors.Is(pub.released, context.DeadlineExceeded) {
		t.Errorf("expected publish to end on its own deadline, got %v", pub.released)
	}
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher()
	event, _ := New(BookingCreated, "b1", nil)
	if err := pub.Publish(context.Background(), event); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
