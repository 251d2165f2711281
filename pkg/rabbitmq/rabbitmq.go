package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"artisan/pkg/logger"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// OrderQueue receives one message per confirmed order.
const OrderQueue = "order_queue"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// OrderEvent is the body of an order.created message.
type OrderEvent struct {
	OrderID   string  `json:"orderId"`
	SessionID string  `json:"sessionId"`
	Email     string  `json:"email"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
}

// NewClient connects to RabbitMQ, opens a channel and declares the order
// queue.
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

	if err := declareOrderQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Info("RabbitMQ client connected and %s declared", OrderQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareOrderQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		OrderQueue, // name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", OrderQueue, err)
	}
	return nil
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
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.Publish(
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logger.Debug("sent message to %q/%q: %s", exchange, routingKey, body)
	return nil
}

// ConsumeOrderEvents starts a goroutine that hands every order message to
// messageHandler, acking on success and requeueing on failure.
func (c *Client) ConsumeOrderEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		OrderQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := messageHandler(msg); err != nil {
				logger.Warn("error processing message %d: %v", msg.DeliveryTag, err)
				// Malformed bodies never succeed, so only requeue redelivery-free failures.
				if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
					logger.Error("error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				logger.Error("error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
	}()

	return nil
}

// HandleOrderMessage decodes an order event and logs the confirmation that
// would be emailed to the buyer.
func HandleOrderMessage(msg amqp.Delivery) error {
	event, err := DecodeOrderEvent(msg.Body)
	if err != nil {
		return err
	}
	logger.L().Info("order confirmation sent",
		zap.String("order_id", event.OrderID),
		zap.String("email", event.Email),
		zap.Float64("total", event.Total))
	return nil
}

func DecodeOrderEvent(body []byte) (OrderEvent, error) {
	var event OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return OrderEvent{}, fmt.Errorf("invalid order event: %w", err)
	}
	if event.OrderID == "" {
		return OrderEvent{}, fmt.Errorf("invalid order event: missing orderId")
	}
	return event, nil
}
