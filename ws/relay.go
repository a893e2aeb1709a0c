package ws

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const relayExchange = "restx.broadcast"

// Relay fans hub events out to every app instance through a RabbitMQ fanout
// exchange. Each instance consumes from its own exclusive queue.
type Relay struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	log   logrus.FieldLogger
	queue string
}

func DialRelay(url string, log logrus.FieldLogger) (*Relay, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(relayExchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", relayExchange, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}
	return &Relay{conn: conn, ch: ch, log: log, queue: q.Name}, nil
}

func (r *Relay) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return r.ch.PublishWithContext(ctx, relayExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Consume hands every relayed event to deliver until ctx ends or the broker
// closes the channel.
func (r *Relay) Consume(ctx context.Context, deliver func(context.Context, Event) error) error {
	msgs, err := r.ch.Consume(r.queue, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-msgs:
			if !ok {
				return fmt.Errorf("relay channel closed")
			}
			var evt Event
			if err := json.Unmarshal(m.Body, &evt); err != nil {
				r.log.WithError(err).Warn("drop malformed relay message")
				continue
			}
			if err := deliver(ctx, evt); err != nil {
				r.log.WithError(err).Warn("relayed event not delivered")
			}
		}
	}
}

func (r *Relay) Close() error {
	if r.ch != nil && !r.ch.IsClosed() {
		if err := r.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}
	if r.conn != nil && !r.conn.IsClosed() {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}
