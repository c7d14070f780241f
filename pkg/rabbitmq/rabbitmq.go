package rabbitmq

import (
	"fmt"
	"time"

	amqp "github.com/streadway/amqp"

	"lelang/pkg/logging"
)

const (
	// ExchangeAuctions is the topic exchange carrying auction lifecycle
	// events (auction.created, auction.winner_set, auction.closed).
	ExchangeAuctions = "auctions"

	queueAuctionEvents = "auction_events"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the
// auctions exchange plus the auction_events queue bound to "auction.*".
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

	if err := ch.ExchangeDeclare(
		ExchangeAuctions, // name
		"topic",          // kind
		true,             // durable
		false,            // auto-delete
		false,            // internal
		false,            // no-wait
		nil,              // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s exchange: %w", ExchangeAuctions, err)
	}

	q, err := ch.QueueDeclare(
		queueAuctionEvents, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", queueAuctionEvents, err)
	}

	if err := ch.QueueBind(q.Name, "auction.*", ExchangeAuctions, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind %s queue: %w", queueAuctionEvents, err)
	}

	logging.Info("RabbitMQ client connected", map[string]any{
		"exchange": ExchangeAuctions,
		"queue":    queueAuctionEvents,
	})

	return &Client{
		conn:    conn,
		channel: ch,
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
		return fmt.Errorf("errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to the given exchange with the
// given routing key.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

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
	return nil
}

// ConsumeAuctionEvents registers a consumer on the auction_events queue
// and processes deliveries with the given handler in a goroutine. A
// handler error nacks the message back onto the queue.
func (c *Client) ConsumeAuctionEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		queueAuctionEvents, // queue
		"",                 // consumer tag
		false,              // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := messageHandler(msg); err != nil {
				logging.Error("failed to process auction event", map[string]any{
					"delivery_tag": msg.DeliveryTag,
					"error":        err.Error(),
				})
				if requeueErr := msg.Nack(false, true); requeueErr != nil {
					logging.Error("failed to nack auction event", map[string]any{
						"delivery_tag": msg.DeliveryTag,
						"error":        requeueErr.Error(),
					})
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				logging.Error("failed to ack auction event", map[string]any{
					"delivery_tag": msg.DeliveryTag,
					"error":        ackErr.Error(),
				})
			}
		}
	}()

	return nil
}
