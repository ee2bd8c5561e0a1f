package notifications

import (
	"context"
	"fmt"

	"tutorbook/internal/events"
	"tutorbook/pkg/kafka"
	"tutorbook/pkg/logger"
	"tutorbook/pkg/model"
)

// Notification is a message addressed to one account.
type Notification struct {
	RecipientID   string
	RecipientRole model.Role
	Subject       string
	Body          string
}

// Sink delivers notifications. Delivery errors are retried by the consumer.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

type logSink struct {
	log *logger.Logger
}

// NewLogSink writes notifications to the log instead of a mail provider.
func NewLogSink(log *logger.Logger) Sink {
	return &logSink{log: log}
}

func (s *logSink) Send(ctx context.Context, n Notification) error {
	s.log.Info("Notification sent",
		"recipient_id", n.RecipientID,
		"recipient_role", n.RecipientRole,
		"subject", n.Subject,
		"body", n.Body,
	)
	return nil
}

type Notifier struct {
	sink Sink
	log  *logger.Logger
}

func NewNotifier(sink Sink, log *logger.Logger) *Notifier {
	return &Notifier{sink: sink, log: log}
}

// Handle is a kafka.MessageHandler. Undecodable messages are permanent
// failures and go straight to the DLQ.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	event, err := events.Decode(msg)
	if err != nil {
		return kafka.NewPermanentError("undecodable event", err)
	}

	notes, err := Build(event)
	if err != nil {
		return kafka.NewPermanentError("invalid event payload", err).WithDetail("event_id", event.ID)
	}
	if len(notes) == 0 {
		n.log.Debug("Ignoring event", "type", event.Type, "id", event.ID)
		return nil
	}

	for _, note := range notes {
		if err := n.sink.Send(ctx, note); err != nil {
			return kafka.NewTransientError("failed to deliver notification", err)
		}
	}
	return nil
}

// Build turns an event into the notifications it triggers. Unknown event
// types produce none.
func Build(event events.Event) ([]Notification, error) {
	switch event.Type {
	case events.BookingCreated, events.BookingDeleted:
		var p events.BookingPayload
		if err := event.DecodePayload(&p); err != nil {
			return nil, err
		}
		return bookingNotifications(event.Type, p), nil

	case events.AccountRegistered:
		var p events.AccountPayload
		if err := event.DecodePayload(&p); err != nil {
			return nil, err
		}
		return []Notification{{
			RecipientID:   p.AccountID,
			RecipientRole: model.Role(p.Role),
			Subject:       "Welcome to TutorBook",
			Body:          fmt.Sprintf("Your %s account for %s is ready.", p.Role, p.Email),
		}}, nil
	}
	return nil, nil
}

func bookingNotifications(t events.Type, p events.BookingPayload) []Notification {
	subject := "Session booked"
	body := fmt.Sprintf("Session %s on %s at %s is confirmed.", p.BookingID, p.Date, p.Time)
	if t == events.BookingDeleted {
		subject = "Session cancelled"
		body = fmt.Sprintf("Session %s on %s at %s was cancelled.", p.BookingID, p.Date, p.Time)
	}

	return []Notification{
		{RecipientID: p.StudentID, RecipientRole: model.RoleStudent, Subject: subject, Body: body},
		{RecipientID: p.TeacherID, RecipientRole: model.RoleTeacher, Subject: subject, Body: body},
	}
}
