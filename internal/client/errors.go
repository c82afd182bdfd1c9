package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	ErrTokenMissing = errors.New("telegram bot token is not configured")
	ErrRateLimited  = errors.New("telegram requests are rate limited")
)

// APIError - Telegram ответил не 2xx или ok=false
type APIError struct {
	Method      string
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s failed: status %d: %s", e.Method, e.StatusCode, e.Description)
}

// Temporary - ошибка на стороне Telegram, а не в запросе
func (e *APIError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

type RateLimitError struct {
	Method     string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("telegram %s: rate limit exceeded, retry after %s", e.Method, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

func NewRateLimitError(method string, headers http.Header, params *tgbotapi.ResponseParameters) *RateLimitError {
	retryAfter := ParseRetryAfter(headers)
	// Telegram присылает retry_after в теле ответа, заголовок бывает не всегда
	if params != nil && params.RetryAfter > 0 {
		retryAfter = time.Duration(params.RetryAfter) * time.Second
	}
	return &RateLimitError{
		Method:     method,
		RetryAfter: retryAfter,
	}
}
