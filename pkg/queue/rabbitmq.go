// Package queue carries enrichment jobs between the HTTP process and workers over RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

var ErrClosed = errors.New("queue: delivery channel closed")

// Job - сообщение очереди: заявка, которую нужно обогатить.
type Job struct {
	ApplicationID string `json:"application_id"`
}

// Handler processes one job. Returning ErrDrop acknowledges the message
// without retrying.
type Handler func(ctx context.Context, applicationID string) error

var ErrDrop = errors.New("queue: drop job")

type RabbitMQ struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   zerolog.Logger

	mu sync.Mutex
}

// Dial connects and declares a durable queue.
func Dial(url, queue string, log zerolog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq declare %s: %w", queue, err)
	}
	return &RabbitMQ{conn: conn, ch: ch, queue: queue, log: log}, nil
}

// Conn exposes the connection for readiness checks.
func (r *RabbitMQ) Conn() *amqp.Connection { return r.conn }

// Dispatch publishes a persistent job for the application.
func (r *RabbitMQ) Dispatch(ctx context.Context, applicationID string) error {
	body, err := json.Marshal(Job{ApplicationID: applicationID})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ch.PublishWithContext(ctx,
		"",      // exchange
		r.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Consume handles jobs one at a time until ctx is cancelled.
func (r *RabbitMQ) Consume(ctx context.Context, h Handler) error {
	if err := r.ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("rabbitmq qos: %w", err)
	}
	msgs, err := r.ch.ConsumeWithContext(ctx,
		r.queue,
		"",
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq consume: %w", err)
	}
	r.log.Info().Str("queue", r.queue).Msg("worker consuming")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrClosed
			}
			handleDelivery(ctx, d, h, r.log)
		}
	}
}

// handleDelivery acks processed and undecodable jobs. A failed job is
// requeued once, then dropped.
func handleDelivery(ctx context.Context, d amqp.Delivery, h Handler, log zerolog.Logger) {
	var job Job
	if err := json.Unmarshal(d.Body, &job); err != nil || job.ApplicationID == "" {
		log.Error().Err(err).Bytes("body", d.Body).Msg("invalid job format")
		_ = d.Reject(false)
		return
	}
	l := log.With().Str("application_id", job.ApplicationID).Logger()

	err := h(ctx, job.ApplicationID)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrDrop):
		l.Warn().Err(err).Msg("job dropped")
		_ = d.Ack(false)
	case d.Redelivered:
		l.Error().Err(err).Msg("job failed twice, dropping")
		_ = d.Nack(false, false)
	default:
		l.Warn().Err(err).Msg("job failed, requeueing")
		_ = d.Nack(false, true)
	}
}

func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}
