package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tutorbook/pkg/logger"

	"github.com/google/uuid"
)

type Type string

const (
	BookingCreated    Type = "booking.created"
	BookingDeleted    Type = "booking.deleted"
	AccountRegistered Type = "account.registered"
)

// SchemaVersion is bumped whenever a payload changes incompatibly.
const SchemaVersion = "1"

// Event is the envelope written to the bookings topic.
type Event struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type BookingPayload struct {
	BookingID string `json:"booking_id"`
	StudentID string `json:"student_id"`
	TeacherID string `json:"teacher_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Note      string `json:"note,omitempty"`
	// ActorID is the account that performed the change.
	ActorID string `json:"actor_id,omitempty"`
}

type AccountPayload struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}

// New builds an event keyed for partitioning by key.
func New(t Type, key string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode %s payload: %w", t, err)
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

func (e Event) DecodePayload(dst any) error {
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Type, err)
	}
	return nil
}

// Publisher delivers domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event. Used when
// Kafka is disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func (noopPublisher) Close() error { return nil }

// publishTimeout bounds a single Emit. It stays well under the request
// timeout so a stalled broker cannot turn a committed write into a 504.
var publishTimeout = 2 * time.Second

// Emit builds and publishes an event. Failures are logged, not returned.
// The publish is detached from ctx cancellation: the change it announces
// has already been committed.
func Emit(ctx context.Context, p Publisher, log *logger.Logger, t Type, key string, payload any) {
	event, err := New(t, key, payload)
	if err == nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		err = p.Publish(pubCtx, event)
		cancel()
	}
	if err != nil {
		log.Warn("Failed to publish event", "type", t, "key", key, "error", err)
		return
	}
	log.Debug("Event published", "type", t, "id", event.ID, "key", key)
}
