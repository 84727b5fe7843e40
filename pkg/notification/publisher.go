// Package notification implements the fire-and-forget notification
// collaborator. Business operations publish a message describing what
// happened; a consumer turns messages into emails. Failures on either side
// are logged and never surfaced to the triggering operation.
package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const QueueName = "notifications"

// Message kinds.
const (
	KindUserRegistered      = "USER_REGISTERED"
	KindEnrollmentConfirmed = "ENROLLMENT_CONFIRMED"
	KindEnrollmentCancelled = "ENROLLMENT_CANCELLED"
)

// Message is the wire format published to the notifications queue.
type Message struct {
	Kind          string    `json:"kind"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	EventName     string    `json:"eventName,omitempty"`
	EventStartsAt time.Time `json:"eventStartsAt,omitempty"`
	EventLocation string    `json:"eventLocation,omitempty"`
}

func NewPublisher(logger *slog.Logger, channel *amqp.Channel) (*Publisher, error) {
	_, err := channel.QueueDeclare(QueueName, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		logger:  logger,
		channel: channel,
	}, nil
}

type Publisher struct {
	logger  *slog.Logger
	channel *amqp.Channel
}

// Notify publishes the message. It never returns an error, a notification is
// a side effect of the triggering action, not a precondition.
func (p *Publisher) Notify(ctx context.Context, message Message) {
	body, err := json.Marshal(message)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to marshal notification", "kind", message.Kind, "error", err)
		return
	}

	err = p.channel.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish notification", "kind", message.Kind, "error", err)
	}
}
