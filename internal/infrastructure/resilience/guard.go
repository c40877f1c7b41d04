// Package resilience guards the submit-path publish to the message
// broker with bounded retries and a circuit breaker, so a dead broker
// degrades submits quickly instead of stalling API handlers until
// their deadline.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Verdict is a classifier's reading of one publish error.
type Verdict struct {
	Retry           bool
	CountsAsFailure bool
}

type Classifier func(err error) Verdict

// PublishGuard protects one named broker dependency. Build one per
// dependency at startup and reuse it for every publish; the breaker
// state is per guard, not per call.
type PublishGuard struct {
	name     string
	cfg      Config
	classify Classifier
	logger   *slog.Logger
	breaker  *gobreaker.CircuitBreaker[any]
}

func NewPublishGuard(name string, cfg Config, classify Classifier, logger *slog.Logger) *PublishGuard {
	if name == "" {
		name = "publish"
	}
	if classify == nil {
		classify = func(error) Verdict { return Verdict{CountsAsFailure: true} }
	}
	if logger == nil {
		logger = slog.Default()
	}

	g := &PublishGuard{
		name:     name,
		cfg:      cfg.withDefaults(),
		classify: classify,
		logger:   logger,
	}
	if g.cfg.BreakerEnabled {
		g.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        name,
			MaxRequests: g.cfg.BreakerProbeCalls,
			Timeout:     g.cfg.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < g.cfg.BreakerMinPublishes {
					return false
				}
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return ratio >= g.cfg.BreakerFailureRatio
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !g.classify(err).CountsAsFailure
			},
			OnStateChange: func(dep string, from, to gobreaker.State) {
				g.logger.Warn("publish_breaker_state",
					"dependency", dep,
					"from", from.String(),
					"to", to.String(),
				)
			},
		})
	}
	return g
}

// Do runs one publish through the retry loop, behind the breaker when
// one is configured.
func (g *PublishGuard) Do(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("resilience: publish callback is nil")
	}
	if g.breaker == nil {
		return g.retry(ctx, fn)
	}
	_, err := g.breaker.Execute(func() (any, error) {
		return nil, g.retry(ctx, fn)
	})
	return err
}

func (g *PublishGuard) retry(ctx context.Context, fn func(context.Context) error) error {
	backoff := g.cfg.InitialBackoff

	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}

		verdict := g.classify(err)
		if !verdict.Retry || attempt == g.cfg.MaxAttempts {
			return err
		}

		wait := min(backoff, g.cfg.MaxBackoff)
		g.logger.Warn("publish_retry",
			"dependency", g.name,
			"attempt", attempt,
			"max_attempts", g.cfg.MaxAttempts,
			"backoff_ms", float64(wait.Microseconds())/1000.0,
			"error", err,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}

		backoff = min(time.Duration(float64(backoff)*g.cfg.BackoffFactor), g.cfg.MaxBackoff)
	}

	return nil
}

// IsCircuitOpen reports whether the error came from the guard refusing
// the call rather than from the broker itself.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
