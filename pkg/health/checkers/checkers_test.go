package checkers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct{ closed bool }

func (f fakeConn) IsClosed() bool { return f.closed }

func TestPingChecker(t *testing.T) {
	ok := NewPingChecker("db", func(context.Context) error { return nil })
	assert.Equal(t, "db", ok.Name())
	assert.NoError(t, ok.Check(context.Background()))

	boom := errors.New("refused")
	bad := NewPingChecker("db", func(context.Context) error { return boom })
	err := bad.Check(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "db ping")
}

func TestPingChecker_BoundsSlowPing(t *testing.T) {
	var deadline time.Time
	c := NewPingChecker("slow", func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	})
	start := time.Now()
	assert.NoError(t, c.Check(context.Background()))
	assert.WithinDuration(t, start.Add(checkTimeout), deadline, 500*time.Millisecond)
}

func TestRabbitMQChecker(t *testing.T) {
	assert.NoError(t, NewRabbitMQChecker(fakeConn{}).Check(context.Background()))
	assert.ErrorIs(t, NewRabbitMQChecker(fakeConn{closed: true}).Check(context.Background()), ErrConnectionClosed)
}
