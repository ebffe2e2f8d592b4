package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"productapi/internal/models"

	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// product events queue.
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
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", cfg.Queue, err)
	}

	slog.Info("RabbitMQ client connected", slog.String("queue", cfg.Queue))

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
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
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishProductEvent sends event to the product events queue as persistent JSON.
func (c *Client) PublishProductEvent(event models.ProductEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	err = c.channel.Publish(
		"",      // exchange: default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func newPublishing(event models.ProductEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal product event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    event.EventID,
		Type:         string(event.Type),
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}, nil
}

// EventHandler processes one product event. Returning an error requeues the message.
type EventHandler func(event models.ProductEvent) error

// ConsumeProductEvents delivers queued events to handler until ctx is cancelled
// or the broker closes the channel.
func (c *Client) ConsumeProductEvents(ctx context.Context, handler EventHandler) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			handleDelivery(msg, handler)
		}
	}
}

// handleDelivery acks processed messages, requeues handler failures and drops
// messages that cannot be decoded.
func handleDelivery(msg amqp.Delivery, handler EventHandler) {
	var event models.ProductEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		slog.Warn("discarding undecodable message", slog.Uint64("delivery_tag", msg.DeliveryTag), slog.Any("error", err))
		if nackErr := msg.Nack(false, false); nackErr != nil {
			slog.Error("error nacking message", slog.Uint64("delivery_tag", msg.DeliveryTag), slog.Any("error", nackErr))
		}
		return
	}

	if err := handler(event); err != nil {
		slog.Warn("error processing message", slog.Uint64("delivery_tag", msg.DeliveryTag), slog.Any("error", err))
		if nackErr := msg.Nack(false, true); nackErr != nil {
			slog.Error("error nacking message", slog.Uint64("delivery_tag", msg.DeliveryTag), slog.Any("error", nackErr))
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		slog.Error("error acking message", slog.Uint64("delivery_tag", msg.DeliveryTag), slog.Any("error", ackErr))
	}
}
