package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/Grizzway/SalonSync-sub000/models"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

type RateLimiter struct {
	limiters       map[string]*rate.Limiter
	blockedIPs     map[string]time.Time
	mu             sync.Mutex
	defaultLimit   rate.Limit
	defaultBurst   int
	blockDuration  time.Duration
	endpointLimits map[string]endpointLimit
	now            func() time.Time
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		limiters:      make(map[string]*rate.Limiter),
		blockedIPs:    make(map[string]time.Time),
		defaultLimit:  rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:  20,
		blockDuration: 5 * time.Minute,
		now:           time.Now,
		endpointLimits: map[string]endpointLimit{
			// credential endpoints are strict to slow down brute force attempts
			"/login":             {rate.Every(2 * time.Second), 5},
			"/login/employee":    {rate.Every(2 * time.Second), 5},
			"/register":          {rate.Every(500 * time.Millisecond), 5},
			"/register/business": {rate.Every(500 * time.Millisecond), 5},
			"/register/employee": {rate.Every(500 * time.Millisecond), 5},
			"/appointments":      {rate.Every(200 * time.Millisecond), 10},
		},
	}

	go limiter.cleanupBlockedIPs()

	return limiter
}

func (r *RateLimiter) cleanupBlockedIPs() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		r.cleanup()
	}
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for ip, blockUntil := range r.blockedIPs {
		if now.After(blockUntil) {
			delete(r.blockedIPs, ip)
		}
	}
	// idle limiters refill to full burst, so dropping them loses nothing
	for key, limiter := range r.limiters {
		if limiter.TokensAt(now) >= float64(limiter.Burst()) {
			delete(r.limiters, key)
		}
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			now := r.now()

			r.mu.Lock()
			if blockUntil, blocked := r.blockedIPs[ip]; blocked {
				if now.Before(blockUntil) {
					r.mu.Unlock()
					return tooManyRequests(c, "IP address blocked due to too many requests", blockUntil)
				}
				delete(r.blockedIPs, ip)
			}
			r.mu.Unlock()

			// endpoint limits get their own bucket so a strict login limit does not throttle browsing
			key := ip
			limit, burst := r.defaultLimit, r.defaultBurst
			if el, ok := r.endpointLimits[c.Path()]; ok && c.Request().Method == http.MethodPost {
				key = ip + " " + c.Path()
				limit, burst = el.limit, el.burst
			}

			if !r.getLimiter(key, limit, burst).AllowN(now, 1) {
				blockUntil := now.Add(r.blockDuration)
				r.mu.Lock()
				r.blockedIPs[ip] = blockUntil
				r.mu.Unlock()
				return tooManyRequests(c, "Too many requests", blockUntil)
			}

			return next(c)
		}
	}
}

func (r *RateLimiter) getLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	limiter, exists := r.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(limit, burst)
		r.limiters[key] = limiter
	}
	return limiter
}

func tooManyRequests(c echo.Context, message string, retryAfter time.Time) error {
	c.Response().Header().Set("Retry-After", retryAfter.UTC().Format(http.TimeFormat))
	return c.JSON(http.StatusTooManyRequests, models.Response{
		Status:  http.StatusTooManyRequests,
		Message: message,
		Data:    map[string]string{"retryAfter": retryAfter.Format(time.RFC3339)},
	})
}
