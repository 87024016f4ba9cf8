package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/artem13815/internhub/api/http/presenter"
)

// RequestLogger пишет одну строку на запрос.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// ErrorHandler ещё не отработал, статус берём из ошибки.
			if e, ok := err.(*fiber.Error); ok {
				c.Status(e.Code)
			} else {
				c.Status(http.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("request_id", requestID(c)).
			Msg("http request")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return v
	}
	return ""
}

// ErrorHandler отдаёт ошибки fiber в формате presenter.ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	msg := "internal error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	}
	return presenter.Error(c, code, msg)
}

// IPLimiter ограничивает частоту запросов с одного адреса.
type IPLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*visitor
	ttl     time.Duration
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewIPLimiter allows perMinute requests per client with the given burst.
// perMinute <= 0 disables limiting.
func NewIPLimiter(perMinute, burst int) *IPLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &IPLimiter{
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		clients: make(map[string]*visitor),
		ttl:     10 * time.Minute,
	}
}

func (l *IPLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, v := range l.clients {
		if now.Sub(v.seen) > l.ttl {
			delete(l.clients, k)
		}
	}
	v, ok := l.clients[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = v
	}
	v.seen = now
	return v.lim.AllowN(now, 1)
}

// Handler returns 429 once a client runs out of tokens.
func (l *IPLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l == nil {
			return c.Next()
		}
		if !l.allow(c.IP(), time.Now()) {
			return presenter.Error(c, http.StatusTooManyRequests, "too many requests, try again later")
		}
		return c.Next()
	}
}
