// Package mailqueue dispatches transactional email through RabbitMQ. The
// API publishes one message per email onto a durable queue; a delivery
// worker consumes the queue and talks to the actual mail provider, so a
// slow or flaky provider never blocks a request.
package mailqueue

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// QueueName is the durable queue email messages are published to.
const QueueName = "email_queue"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	sender  string
}

// Config holds RabbitMQ connection details and the sender address stamped
// on outgoing mail.
type Config struct {
	URL    string
	Sender string
}

// EmailMessage is the wire format consumed by the delivery worker.
type EmailMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	PlainText string `json:"plain_text"`
	HTML      string `json:"html"`
}

// NewClient connects to RabbitMQ and declares the email queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		QueueName, // name
		true,      // durable (persists messages across broker restarts)
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", QueueName, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", QueueName)

	return &Client{
		conn:    conn,
		channel: ch,
		sender:  cfg.Sender,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during mail queue close: %v", errs)
	}
	return nil
}

// NewOTPMessage builds the email message for a verification code.
func NewOTPMessage(sender, recipient, code string) EmailMessage {
	return EmailMessage{
		ID:        uuid.New().String(),
		Sender:    sender,
		Recipient: recipient,
		Subject:   "Your Verification Code",
		PlainText: fmt.Sprintf("Your verification code is: %s\nThis code will expire in 10 minutes.", code),
		HTML: fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">`+
			`<div style="max-width: 600px; margin: 0 auto; padding: 20px;">`+
			`<h2>Your Verification Code</h2>`+
			`<p>Your verification code is: <strong style="font-size: 18px;">%s</strong></p>`+
			`<p>This code will expire in 10 minutes.</p>`+
			`<p style="color: #666; font-size: 12px;">This is an automated message, please do not reply.</p>`+
			`</div></body></html>`, code),
	}
}

// SendOTPEmail publishes a verification-code email for the recipient. It
// satisfies the services.NotificationSender interface; a publish failure
// means the code was not dispatched.
func (c *Client) SendOTPEmail(recipient, code string) error {
	return c.publish(NewOTPMessage(c.sender, recipient, code))
}

func (c *Client) publish(msg EmailMessage) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal email message: %w", err)
	}

	err = c.channel.Publish(
		"",        // exchange: default exchange
		QueueName, // routing key: the queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			MessageId:    msg.ID,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish email message: %w", err)
	}

	log.Printf(" [x] Queued email %s for %s", msg.ID, msg.Recipient)
	return nil
}

// DeliveryHandler adapts a delivery function into a queue message handler:
// it decodes the EmailMessage payload and hands it off. A decode or
// delivery error propagates so the message is nacked and requeued.
func DeliveryHandler(deliver func(msg EmailMessage) error) func(msg amqp.Delivery) error {
	return func(d amqp.Delivery) error {
		var msg EmailMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			return fmt.Errorf("failed to decode email message: %w", err)
		}
		return deliver(msg)
	}
}

// ConsumeEmailEvents starts a goroutine that feeds queued email messages to
// the handler. The delivery worker acks on success and nacks (requeue) on
// failure.
func (c *Client) ConsumeEmailEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		QueueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack: manual acknowledgement
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := messageHandler(msg); err != nil {
				log.Printf("Error processing email message %d: %v", msg.DeliveryTag, err)
				if requeueErr := msg.Nack(false, true); requeueErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, requeueErr)
				}
			} else {
				if ackErr := msg.Ack(false); ackErr != nil {
					log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
				}
			}
		}
	}()

	return nil
}
