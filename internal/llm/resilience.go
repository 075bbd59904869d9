package llm

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
)

// maxConcurrentRequests caps in-flight requests per provider.
const maxConcurrentRequests = 4

// BreakerProvider guards a provider with a circuit breaker and a bulkhead.
// Once the breaker opens, requests fail fast until the cooldown elapses,
// which lets the oracle explanation mode degrade without waiting on a dead
// upstream.
type BreakerProvider struct {
	inner    Provider
	breaker  circuitbreaker.CircuitBreaker[*Response]
	bulkhead bulkhead.Bulkhead[*Response]
}

// WithBreaker wraps p. A nil logger discards state changes.
func WithBreaker(p Provider, cfg BreakerConfig, logger *log.Logger) Provider {
	threshold := cfg.FailureThreshold
	if threshold <= 0 {
		threshold = 3
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	bp := &BreakerProvider{inner: p}
	bp.breaker = circuitbreaker.New[*Response](circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cooldown,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= threshold
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			if logger != nil {
				logger.Warn("llm circuit breaker state change",
					"model", p.ModelID(),
					"from", from.String(),
					"to", to.String())
			}
		},
	})
	bp.bulkhead = bulkhead.New[*Response](bulkhead.Config{
		MaxConcurrent: maxConcurrentRequests,
		MaxQueue:      maxConcurrentRequests * 2,
		QueueTimeout:  cooldown,
	})
	return bp
}

func (b *BreakerProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return b.breaker.Execute(ctx, func(ctx context.Context) (*Response, error) {
		return b.bulkhead.Execute(ctx, func(ctx context.Context) (*Response, error) {
			return b.inner.Generate(ctx, req)
		})
	})
}

func (b *BreakerProvider) ModelID() string {
	return b.inner.ModelID()
}
