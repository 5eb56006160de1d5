package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Default retry policy for model calls. Quota errors are never retried;
// everything transient gets jittered exponential backoff.
const (
	DefaultMaxAttempts    = 5
	DefaultBaseDelay      = 500 * time.Millisecond
	DefaultMaxDelay       = 8 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// ErrQuotaExhausted marks a billing/quota failure. Retrying cannot fix
// it, so callers should fall back immediately.
var ErrQuotaExhausted = errors.New("llm: provider quota exhausted")

// ChatClient sends a single prompt to a chat model and returns the raw
// text of the reply.
type ChatClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	Provider() string
}

// HTTPError carries a non-2xx provider response.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("llm: provider returned status %d: %s", e.Status, e.Body)
}

// RetryPolicy bounds each attempt with RequestTimeout and spaces
// attempts with exponential backoff capped at MaxDelay.
type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    DefaultMaxAttempts,
		BaseDelay:      DefaultBaseDelay,
		MaxDelay:       DefaultMaxDelay,
		RequestTimeout: DefaultRequestTimeout,
	}
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			delay = p.MaxDelay
			break
		}
	}
	// Up to 25% jitter so concurrent sessions don't retry in lockstep.
	jitter := time.Duration(rand.Int63n(int64(delay)/4 + 1))
	return delay + jitter
}

// run executes call under the policy. retryable decides whether a
// failure is worth another attempt; quota errors and parent-context
// cancellation always stop the loop.
func (p RetryPolicy) run(ctx context.Context, call func(context.Context) (string, error), retryable func(error) bool) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(p.backoff(attempt - 1)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.RequestTimeout)
		out, err := call(attemptCtx)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if errors.Is(err, ErrQuotaExhausted) || ctx.Err() != nil || !retryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("llm: %d attempts exhausted: %w", p.MaxAttempts, lastErr)
}
