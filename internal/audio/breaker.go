package audio

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerProvider wraps a Provider with a circuit breaker so a flapping
// TTS API trips open instead of burning the rest of a batch run on calls
// that are going to fail anyway.
type BreakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps the given provider. The breaker opens after five
// consecutive failures and probes again after 30 seconds.
func NewBreakerProvider(inner Provider) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:    fmt.Sprintf("audio-%s", inner.Name()),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &BreakerProvider{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// GenerateAudio delegates to the wrapped provider through the breaker.
func (p *BreakerProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.inner.GenerateAudio(ctx, text, outputFile)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("audio provider %s temporarily disabled: %w", p.inner.Name(), err)
	}
	return err
}

// Name returns the wrapped provider name
func (p *BreakerProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable reports the wrapped provider's availability. An open breaker
// counts as unavailable.
func (p *BreakerProvider) IsAvailable() error {
	if state := p.breaker.State(); state == gobreaker.StateOpen {
		return fmt.Errorf("circuit breaker open for provider %s", p.inner.Name())
	}
	return p.inner.IsAvailable()
}
