package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPDispatcher publishes messages as persistent JSON to a topic exchange
// with routing key "email.<kind>".
type AMQPDispatcher struct {
	ch       channel
	conn     *amqp.Connection
	exchange string
}

// DialAMQP connects to the broker and declares the exchange.
func DialAMQP(url, exchange string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	return &AMQPDispatcher{ch: ch, conn: conn, exchange: exchange}, nil
}

// NewAMQPDispatcher wraps an already open channel.
func NewAMQPDispatcher(ch channel, exchange string) *AMQPDispatcher {
	return &AMQPDispatcher{ch: ch, exchange: exchange}
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("notify: message has no recipient")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify: encode message: %w", err)
	}

	return d.ch.PublishWithContext(ctx, d.exchange, "email."+msg.Kind, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    msg.ID,
		Body:         body,
		Timestamp:    time.Now(),
		DeliveryMode: amqp.Persistent,
	})
}

func (d *AMQPDispatcher) Close() error {
	err := d.ch.Close()
	if d.conn != nil {
		err = errors.Join(err, d.conn.Close())
	}
	return err
}
