package llm

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
)

// RetryProvider retries transient failures with exponential backoff and
// jitter. Rate limit responses that carry a Retry-After hint are honored
// before the next attempt.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	// The retrier is built per call because the invalid-response budget is
	// per request.
	invalidRetried := false
	retrier := retry.New[*Response](retry.Config{
		MaxAttempts:   r.config.MaxAttempts,
		InitialDelay:  r.config.InitialWait,
		MaxDelay:      r.config.MaxWait,
		Multiplier:    r.config.Multiplier,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
		IsRetryable: func(err error) bool {
			return shouldRetry(err, &invalidRetried)
		},
	})

	var retryAfter time.Duration
	return retrier.Do(ctx, func(ctx context.Context) (*Response, error) {
		if retryAfter > 0 {
			wait := retryAfter
			retryAfter = 0
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		resp, err := r.inner.Generate(ctx, req)
		var rl *ErrRateLimit
		if errors.As(err, &rl) {
			retryAfter = min(rl.RetryAfter, r.config.MaxWait)
		}
		return resp, err
	})
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// shouldRetry reports whether err is worth another attempt. An invalid
// response is retried once per request.
func shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	var rl *ErrRateLimit
	var unavail *ErrProviderUnavailable
	return errors.As(err, &rl) || errors.As(err, &unavail)
}
