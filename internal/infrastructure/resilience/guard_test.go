package resilience

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

var (
	errBrokerDown = errors.New("no servers available for connection")
	errBadSubject = errors.New("invalid subject")
)

// brokerClassifier mirrors how the queue reads publish errors: a broker
// outage is worth retrying, a malformed publish is not.
func brokerClassifier(err error) Verdict {
	if errors.Is(err, errBrokerDown) {
		return Verdict{Retry: true, CountsAsFailure: true}
	}
	return Verdict{CountsAsFailure: true}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestPublishRecoversFromBrokerBlip(t *testing.T) {
	guard := NewPublishGuard("nats.extractions", Config{
		MaxAttempts:    4,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
	}, brokerClassifier, quietLogger())

	publishes := 0
	err := guard.Do(context.Background(), func(context.Context) error {
		publishes++
		if publishes < 3 {
			return errBrokerDown
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected publish to land after broker recovered, got %v", err)
	}
	if publishes != 3 {
		t.Fatalf("expected 3 publish attempts, got %d", publishes)
	}
}

func TestPublishDoesNotRetryBadSubject(t *testing.T) {
	guard := NewPublishGuard("nats.extractions", Config{
		MaxAttempts:    4,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
	}, brokerClassifier, quietLogger())

	publishes := 0
	err := guard.Do(context.Background(), func(context.Context) error {
		publishes++
		return errBadSubject
	})
	if !errors.Is(err, errBadSubject) {
		t.Fatalf("expected the subject error back, got %v", err)
	}
	if publishes != 1 {
		t.Fatalf("expected a single attempt for a non-retryable error, got %d", publishes)
	}
}

func TestBreakerFailsFastDuringBrokerOutage(t *testing.T) {
	guard := NewPublishGuard("nats.extractions", Config{
		MaxAttempts:    1,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
		BackoffFactor:  2,

		BreakerEnabled:      true,
		BreakerMinPublishes: 2,
		BreakerFailureRatio: 0.5,
		BreakerCooldown:     50 * time.Millisecond,
		BreakerProbeCalls:   1,
	}, brokerClassifier, quietLogger())

	for i := 0; i < 2; i++ {
		err := guard.Do(context.Background(), func(context.Context) error {
			return errBrokerDown
		})
		if !errors.Is(err, errBrokerDown) {
			t.Fatalf("expected broker error on publish %d, got %v", i, err)
		}
	}

	err := guard.Do(context.Background(), func(context.Context) error {
		t.Fatal("open breaker must not reach the broker")
		return nil
	})
	if !IsCircuitOpen(err) {
		t.Fatalf("expected the guard to fail fast, got %v", err)
	}
}

func TestCanceledSubmitStopsRetrying(t *testing.T) {
	guard := NewPublishGuard("nats.extractions", Config{
		MaxAttempts:    10,
		InitialBackoff: 5 * time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		BackoffFactor:  2,
	}, brokerClassifier, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	publishes := 0
	err := guard.Do(ctx, func(context.Context) error {
		publishes++
		cancel()
		return errBrokerDown
	})
	if !errors.Is(err, errBrokerDown) {
		t.Fatalf("expected the last broker error, got %v", err)
	}
	if publishes != 1 {
		t.Fatalf("expected retries to stop once the request was gone, got %d publishes", publishes)
	}
}
