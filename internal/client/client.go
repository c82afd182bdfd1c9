package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/denmor86/ya-payrelay/internal/logger"
	"github.com/denmor86/ya-payrelay/internal/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks . HTTPClient,Messenger

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	// Telegram не принимает больше 30 сообщений в секунду от одного бота
	messagesPerSecond = 30
	maxResponseSize   = 1 << 20
)

type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient HTTPClient
	limiter    *RateLimiter
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(baseURL string, token string, timeout time.Duration, client HTTPClient) *Client {
	limiter := NewRateLimiter()
	limiter.Update(rate.Limit(messagesPerSecond), messagesPerSecond)
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		timeout:    timeout,
		httpClient: client,
		limiter:    limiter,
		breaker:    InitCircuitBreaker(),
	}
}

func InitCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "telegram-api",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 попыток достучатся до сервиса
			return counts.ConsecutiveFailures >= 5
		},
		// ошибки в самих запросах (4xx, 429) не говорят о недоступности сервиса
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return !apiErr.Temporary()
			}
			return errors.Is(err, ErrRateLimited)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// call - вызов метода Bot API. Ошибки сети, таймауты и ответы не 2xx возвращаются ошибкой
func (c *Client) call(ctx context.Context, method string, payload interface{}) error {
	if c.token == "" {
		logger.Warn("Telegram call skipped", "method", method, "error", ErrTokenMissing)
		metrics.IncTelegramRequest(method, metrics.ResultSkipped)
		return ErrTokenMissing
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		logger.Warn("Telegram call rate limited", "method", method, "error", err)
		metrics.IncTelegramRequest(method, metrics.ResultFailed)
		return fmt.Errorf("telegram %s: %w", method, err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, method, payload)
	})
	if err != nil {
		var rateLimitErr *RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.limiter.BlockFor(rateLimitErr.RetryAfter)
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("telegram %s: %w", method, err)
		}
		logger.Error("Telegram call failed", "method", method, "error", err)
		metrics.IncTelegramRequest(method, metrics.ResultFailed)
		return err
	}
	metrics.IncTelegramRequest(method, metrics.ResultOK)
	return nil
}

func (c *Client) do(ctx context.Context, method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error содержит адрес вместе с токеном бота
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("telegram %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var result tgbotapi.APIResponse
	decodeErr := json.Unmarshal(raw, &result)

	if resp.StatusCode == http.StatusTooManyRequests {
		return NewRateLimitError(method, resp.Header, result.Parameters)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices || decodeErr != nil || !result.Ok {
		logger.Error("Telegram returned error", "method", method, "status", resp.StatusCode, "body", string(raw))
		description := result.Description
		if description == "" {
			description = http.StatusText(resp.StatusCode)
		}
		return &APIError{
			Method:      method,
			StatusCode:  resp.StatusCode,
			Description: description,
		}
	}
	return nil
}

func (c *Client) methodURL(method string) string {
	return c.baseURL + "/bot" + c.token + "/" + method
}
