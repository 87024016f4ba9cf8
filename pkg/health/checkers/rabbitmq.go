package checkers

import (
	"context"
	"errors"
)

var ErrConnectionClosed = errors.New("connection closed")

// Closer is satisfied by *amqp091.Connection.
type Closer interface {
	IsClosed() bool
}

type RabbitMQChecker struct {
	conn Closer
}

func NewRabbitMQChecker(conn Closer) *RabbitMQChecker {
	return &RabbitMQChecker{conn: conn}
}

func (c *RabbitMQChecker) Name() string { return "rabbitmq" }

func (c *RabbitMQChecker) Check(_ context.Context) error {
	if c.conn.IsClosed() {
		return ErrConnectionClosed
	}
	return nil
}
