package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/fmd-labs/fmd/internal/domain"
	"github.com/fmd-labs/fmd/internal/domain/candidate"
	"github.com/fmd-labs/fmd/internal/metrics"
)

// BreakerSettings configures the circuit breaker around a provider.
type BreakerSettings struct {
	// MinRequests is the number of requests in a window before tripping is considered.
	MinRequests uint32
	// FailureRatio trips the breaker once reached.
	FailureRatio float64
	// Interval resets the counts while closed.
	Interval time.Duration
	// Timeout is how long the breaker stays open before letting a trial request through.
	Timeout time.Duration
}

// DefaultBreakerSettings trips at 60% failures over at least 5 requests.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MinRequests:  5,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
	}
}

// Guard wraps a provider with a circuit breaker so a failing upstream is
// skipped quickly instead of holding every search until its timeout.
type Guard struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[[]candidate.Item]
}

// NewGuard wraps p with a circuit breaker.
func NewGuard(p Provider, s BreakerSettings, logger *zap.Logger) *Guard {
	name := "provider-" + p.ID()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]candidate.Item](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
		// Cancellation by the caller is not an upstream failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Guard{inner: p, cb: cb}
}

// ID returns the wrapped provider's ID.
func (g *Guard) ID() string { return g.inner.ID() }

// Search calls the wrapped provider unless the breaker is open.
func (g *Guard) Search(ctx context.Context, q Query) ([]candidate.Item, error) {
	items, err := g.cb.Execute(func() ([]candidate.Item, error) {
		return g.inner.Search(ctx, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("provider %s: %w: %w", g.inner.ID(), domain.ErrProviderUnavailable, err)
		}
		return nil, err
	}
	return items, nil
}

// State reports the breaker state.
func (g *Guard) State() gobreaker.State { return g.cb.State() }

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// OpenCircuits returns the IDs of guarded providers whose breaker is open,
// sorted.
func (r *Registry) OpenCircuits() []string {
	var open []string
	for _, id := range r.IDs() {
		g, ok := r.providers[id].(*Guard)
		if ok && g.State() == gobreaker.StateOpen {
			open = append(open, id)
		}
	}
	return open
}
