package queue

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type ackRecorder struct {
	acked    int
	nacked   int
	requeued bool
	rejected int
}

func (a *ackRecorder) Ack(uint64, bool) error { a.acked++; return nil }

func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked++
	a.requeued = requeue
	return nil
}

func (a *ackRecorder) Reject(uint64, bool) error { a.rejected++; return nil }

func delivery(ack amqp.Acknowledger, body string, redelivered bool) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, Body: []byte(body), Redelivered: redelivered, DeliveryTag: 1}
}

func TestHandleDelivery_AcksProcessedJob(t *testing.T) {
	ack := &ackRecorder{}
	var got string
	h := func(_ context.Context, id string) error { got = id; return nil }

	handleDelivery(context.Background(), delivery(ack, `{"application_id":"abc"}`, false), h, zerolog.Nop())

	assert.Equal(t, "abc", got)
	assert.Equal(t, 1, ack.acked)
	assert.Zero(t, ack.nacked)
}

func TestHandleDelivery_RejectsMalformedBody(t *testing.T) {
	ack := &ackRecorder{}
	called := false
	h := func(context.Context, string) error { called = true; return nil }

	handleDelivery(context.Background(), delivery(ack, `not json`, false), h, zerolog.Nop())
	handleDelivery(context.Background(), delivery(ack, `{}`, false), h, zerolog.Nop())

	assert.False(t, called)
	assert.Equal(t, 2, ack.rejected)
}

func TestHandleDelivery_RequeuesOnceThenDrops(t *testing.T) {
	h := func(context.Context, string) error { return errors.New("db down") }

	first := &ackRecorder{}
	handleDelivery(context.Background(), delivery(first, `{"application_id":"abc"}`, false), h, zerolog.Nop())
	assert.Equal(t, 1, first.nacked)
	assert.True(t, first.requeued)

	second := &ackRecorder{}
	handleDelivery(context.Background(), delivery(second, `{"application_id":"abc"}`, true), h, zerolog.Nop())
	assert.Equal(t, 1, second.nacked)
	assert.False(t, second.requeued)
}

func TestHandleDelivery_DropAcknowledges(t *testing.T) {
	ack := &ackRecorder{}
	h := func(context.Context, string) error { return ErrDrop }

	handleDelivery(context.Background(), delivery(ack, `{"application_id":"gone"}`, false), h, zerolog.Nop())

	assert.Equal(t, 1, ack.acked)
	assert.Zero(t, ack.nacked)
}
