package client

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter - ограничитель запросов, блокируется после ответа 429
type RateLimiter struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	blocked time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

// Wait не ждёт окончания блокировки: запрос сразу завершается ошибкой
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.Blocked() {
		return ErrRateLimited
	}
	return rl.limiter.Wait(ctx)
}

func (rl *RateLimiter) Update(limit rate.Limit, burst int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.limiter.SetLimit(limit)
	rl.limiter.SetBurst(burst)
}

func (rl *RateLimiter) Blocked() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return time.Now().Before(rl.blocked)
}

func (rl *RateLimiter) BlockFor(duration time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	until := time.Now().Add(duration)
	if until.After(rl.blocked) {
		rl.blocked = until
	}
}

func ParseRetryAfter(headers http.Header) time.Duration {
	retryAfter := headers.Get("Retry-After")
	if retryAfter == "" {
		return time.Minute // default
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}

	return time.Minute // fallback
}
