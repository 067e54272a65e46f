package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/folio/router"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Default circuit breaker settings.
const (
	defaultMaxFailures uint32        = 3
	defaultOpenTimeout time.Duration = 30 * time.Second
	defaultInterval    time.Duration = 60 * time.Second
)

// Breaker protects an automated router with a circuit breaker: after
// repeated failures calls fail fast, and the pipeline falls back to the
// deterministic router without waiting on the model.
type Breaker struct {
	inner   router.Automated
	breaker *gobreaker.CircuitBreaker[router.Outcome]
}

// NewBreaker wraps inner. State changes are logged to logger.
func NewBreaker(inner router.Automated, logger zerolog.Logger) *Breaker {
	cb := gobreaker.NewCircuitBreaker[router.Outcome](gobreaker.Settings{
		Name:        "automated_router",
		MaxRequests: 1,
		Interval:    defaultInterval,
		Timeout:     defaultOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= defaultMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("event", "router_breaker_state").
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
		// a canceled request says nothing about the model
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &Breaker{inner: inner, breaker: cb}
}

// Route implements router.Automated.
func (b *Breaker) Route(ctx context.Context, req router.Request) (router.Outcome, error) {
	out, err := b.breaker.Execute(func() (router.Outcome, error) {
		return b.inner.Route(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return router.Outcome{}, fmt.Errorf("automated router circuit open: %w", err)
	}
	return out, err
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State { return b.breaker.State() }

var _ router.Automated = (*Breaker)(nil)
