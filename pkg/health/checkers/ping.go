package checkers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const checkTimeout = time.Second

// PingChecker reports a dependency as ready when its ping succeeds within
// checkTimeout.
type PingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func NewPingChecker(name string, ping func(ctx context.Context) error) *PingChecker {
	return &PingChecker{name: name, ping: ping}
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := c.ping(ctx); err != nil {
		return fmt.Errorf("%s ping: %w", c.name, err)
	}
	return nil
}

func NewPostgresChecker(pool *pgxpool.Pool) *PingChecker {
	return NewPingChecker("postgres", pool.Ping)
}

// NewSQLChecker is used for the sqlite store.
func NewSQLChecker(name string, db *sql.DB) *PingChecker {
	return NewPingChecker(name, db.PingContext)
}

func NewRedisChecker(rdb redis.UniversalClient) *PingChecker {
	return NewPingChecker("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
}
