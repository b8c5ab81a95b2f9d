package ratelimit

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// Config holds configuration for the rate limit middleware.
type Config struct {
	// PerSecond is the steady request rate allowed per client.
	PerSecond float64
	// Burst is the burst size allowed on top of the steady rate.
	Burst int
}

// store keeps one token bucket per client key.
type store struct {
	mu      sync.Mutex
	entries map[string]*rate.Limiter
	rps     rate.Limit
	burst   int
}

func (s *store) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lim, ok := s.entries[key]; ok {
		return lim
	}

	lim := rate.NewLimiter(s.rps, s.burst)
	s.entries[key] = lim
	return lim
}

// New returns a middleware that applies a token-bucket rate limit per client.
// Clients are keyed by their API key when presented, falling back to the
// remote IP for unauthenticated requests.
func New(cfg Config) fiber.Handler {
	s := &store{
		entries: make(map[string]*rate.Limiter),
		rps:     rate.Limit(cfg.PerSecond),
		burst:   cfg.Burst,
	}

	return func(c *fiber.Ctx) error {
		key := c.Get("X-Api-Key")
		if key == "" {
			key = c.Get("X-Master-Api-Key")
		}
		if key == "" {
			key = c.IP()
		}

		if !s.get(key).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded",
			})
		}

		return c.Next()
	}
}
