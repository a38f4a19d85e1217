package translation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"google.golang.org/genai"
)

// Retrier wraps a Provider with a bounded retry loop and a circuit
// breaker. Transient failures (rate limits, 5xx, network errors, empty
// responses) are retried up to the configured attempt count with a
// fixed delay; exhausting all attempts is a hard failure for the field
// and aborts the surrounding batch. Untranslated text is never passed
// off as a result.
type Retrier struct {
	provider Provider
	retries  int
	delay    time.Duration
	cb       *gobreaker.CircuitBreaker
}

// NewRetrier creates a retry wrapper around a translation provider
func NewRetrier(provider Provider, retries int, delay time.Duration) *Retrier {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "translation-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip only when the API looks properly down, well past a
			// single field's retry budget.
			return counts.ConsecutiveFailures >= 10
		},
	})
	return &Retrier{provider: provider, retries: retries, delay: delay, cb: cb}
}

// Translate translates one text value, retrying transient failures.
// Empty or whitespace-only input returns an empty string without any
// API call.
func (r *Retrier) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var lastErr error
	for attempt := 1; attempt <= r.retries; attempt++ {
		// A dead context must not burn further API attempts
		if err := ctx.Err(); err != nil {
			return "", err
		}

		result, err := r.cb.Execute(func() (any, error) {
			return r.provider.Translate(ctx, text)
		})
		if err == nil {
			return result.(string), nil
		}
		lastErr = err

		if !IsTransient(err) {
			return "", fmt.Errorf("translation failed: %w", err)
		}

		if attempt < r.retries {
			fmt.Fprintf(os.Stderr, "Warning: attempt %d/%d failed for '%s': %v\n",
				attempt, r.retries, truncate(text, 50), err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.delay):
			}
		}
	}

	return "", fmt.Errorf("translation failed after %d attempts: %w", r.retries, lastErr)
}

// IsTransient reports whether an error is worth retrying. API errors
// with a non-429 4xx status (bad request, bad credentials) are
// permanent; everything else, including an open circuit breaker, is
// assumed to be a temporary API or network condition.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrEmptyResponse) {
		return true
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return true
	}

	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return retryableStatus(geminiErr.Code)
	}

	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		return retryableStatus(openaiErr.HTTPStatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return true
}

func retryableStatus(code int) bool {
	if code == 429 {
		return true
	}
	return code >= 500 || code == 0
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
