package resilience

import "time"

// Config tunes one publish guard. Zero or out-of-range fields fall back
// to PublishDefaults, except BreakerEnabled which is honored as given.
type Config struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64

	BreakerEnabled      bool
	BreakerMinPublishes uint32
	BreakerFailureRatio float64
	BreakerCooldown     time.Duration
	BreakerProbeCalls   uint32
}

// PublishDefaults is sized for the submit path: an API handler is
// blocked on the publish, so retries stay inside a single request
// budget and the breaker trips early once the broker is clearly gone.
func PublishDefaults() Config {
	return Config{
		MaxAttempts:    4,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
		BackoffFactor:  2.0,

		BreakerEnabled:      true,
		BreakerMinPublishes: 5,
		BreakerFailureRatio: 0.6,
		BreakerCooldown:     15 * time.Second,
		BreakerProbeCalls:   1,
	}
}

func (c Config) withDefaults() Config {
	out := c
	def := PublishDefaults()

	if out.MaxAttempts <= 0 {
		out.MaxAttempts = def.MaxAttempts
	}
	if out.InitialBackoff <= 0 {
		out.InitialBackoff = def.InitialBackoff
	}
	if out.MaxBackoff <= 0 {
		out.MaxBackoff = def.MaxBackoff
	}
	if out.MaxBackoff < out.InitialBackoff {
		out.MaxBackoff = out.InitialBackoff
	}
	if out.BackoffFactor < 1.0 {
		out.BackoffFactor = def.BackoffFactor
	}

	if out.BreakerMinPublishes == 0 {
		out.BreakerMinPublishes = def.BreakerMinPublishes
	}
	if out.BreakerFailureRatio <= 0 || out.BreakerFailureRatio > 1 {
		out.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if out.BreakerCooldown <= 0 {
		out.BreakerCooldown = def.BreakerCooldown
	}
	if out.BreakerProbeCalls == 0 {
		out.BreakerProbeCalls = def.BreakerProbeCalls
	}

	return out
}
