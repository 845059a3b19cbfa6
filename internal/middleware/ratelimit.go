package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/tofind/freelead/internal/config"
	"github.com/tofind/freelead/internal/store"
)

// FreeTierLimiter applies a per-user token bucket to search endpoints for
// free accounts. Premium accounts bypass the limiter entirely.
func FreeTierLimiter(cfg config.RateLimitConfig, users store.UserStore) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	var (
		mu       sync.Mutex
		limiters = map[string]*rate.Limiter{}
	)

	limiterFor := func(email string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[email]; ok {
			return l
		}
		l := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
		limiters[email] = l
		return l
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(ContextKeyUserEmail).(string)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authenticated user"})
			}

			if user, err := users.FindByEmail(c.Request().Context(), email); err == nil && user.Premium {
				return next(c)
			}

			if !limiterFor(email).Allow() {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "search rate limit exceeded, upgrade to premium for unlimited searches"})
			}

			return next(c)
		}
	}
}
