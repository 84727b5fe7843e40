package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-mail/mail"
	amqp "github.com/rabbitmq/amqp091-go"
)

type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

func NewMailConsumer(logger *slog.Logger, channel *amqp.Channel, dialer dialer, from string) *MailConsumer {
	return &MailConsumer{
		logger:  logger,
		channel: channel,
		dialer:  dialer,
		from:    from,
	}
}

// MailConsumer drains the notifications queue and sends one email per
// message. Undeliverable messages are logged and dropped rather than
// requeued, a lost notification must never block or replay a business
// action.
type MailConsumer struct {
	logger  *slog.Logger
	channel *amqp.Channel
	dialer  dialer
	from    string
}

func (c *MailConsumer) Consume() error {
	deliveries, err := c.channel.Consume(QueueName, "eventhub-mailer", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for d := range deliveries {
			c.handle(d)
		}
	}()

	return nil
}

func (c *MailConsumer) handle(d amqp.Delivery) {
	var message Message
	if err := json.Unmarshal(d.Body, &message); err != nil {
		c.logger.Error("Failed to unmarshal notification", "error", err)
		_ = d.Nack(false, false)
		return
	}

	subject, body := compose(message)
	if subject == "" {
		c.logger.Error("Unknown notification kind", "kind", message.Kind)
		_ = d.Nack(false, false)
		return
	}

	m := mail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", message.UserEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := c.dialer.DialAndSend(m); err != nil {
		c.logger.Error("Failed to send notification email", "kind", message.Kind, "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := d.Ack(false); err != nil {
		c.logger.Error("Failed to acknowledge notification", "kind", message.Kind, "error", err)
	}
}

func compose(message Message) (subject, body string) {
	switch message.Kind {
	case KindUserRegistered:
		subject = "Bem-vindo! Cadastro confirmado"
		body = fmt.Sprintf("Olá %s,<br/>seu cadastro foi realizado com sucesso.", message.UserName)
	case KindEnrollmentConfirmed:
		subject = fmt.Sprintf("Inscrição confirmada - %s", message.EventName)
		body = fmt.Sprintf("Olá %s,<br/>sua inscrição no evento <b>%s</b> foi confirmada.<br/>Início: %s<br/>Local: %s",
			message.UserName, message.EventName, message.EventStartsAt.Format("02/01/2006 15:04"), message.EventLocation)
	case KindEnrollmentCancelled:
		subject = fmt.Sprintf("Inscrição cancelada - %s", message.EventName)
		body = fmt.Sprintf("Olá %s,<br/>sua inscrição no evento <b>%s</b> foi cancelada.",
			message.UserName, message.EventName)
	}
	return subject, body
}
