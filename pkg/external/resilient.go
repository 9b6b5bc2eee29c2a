package external

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/evidence-navigator-server/internal/domain"
)

// ResilientSearcher wraps a source adapter with a circuit breaker. An open
// breaker reads as an upstream failure for that source label only; the
// orchestrator records it under sources.errors without issuing the call.
type ResilientSearcher struct {
	inner   Searcher
	breaker *gobreaker.CircuitBreaker
}

// NewResilientSearcher wraps an adapter with a per-source breaker
func NewResilientSearcher(inner Searcher, logger *logrus.Logger) *ResilientSearcher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"source": name,
				"from":   from.String(),
				"to":     to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})
	return &ResilientSearcher{inner: inner, breaker: breaker}
}

// Name returns the wrapped adapter's source label
func (r *ResilientSearcher) Name() string {
	return r.inner.Name()
}

// Search executes the wrapped search through the breaker
func (r *ResilientSearcher) Search(ctx context.Context, query string) ([]domain.Record, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.inner.Search(ctx, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &domain.UpstreamError{
				Source: r.Name(),
				Err:    fmt.Errorf("circuit open, source temporarily disabled"),
			}
		}
		return nil, err
	}
	return result.([]domain.Record), nil
}

// State returns the breaker state for health reporting
func (r *ResilientSearcher) State() gobreaker.State {
	return r.breaker.State()
}
