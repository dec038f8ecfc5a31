package generation

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy wraps generation calls with bounded exponential backoff.
// Only transient error kinds are retried; everything else propagates
// on the first attempt.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MinDelay    time.Duration
	MaxDelay    time.Duration
}

// DefaultCallRetry is applied to raw capability calls.
func DefaultCallRetry() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   2 * time.Second,
		Multiplier:  2,
		MinDelay:    1 * time.Second,
		MaxDelay:    60 * time.Second,
	}
}

// DefaultPipelineRetry is applied to whole pipeline runs.
func DefaultPipelineRetry() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   4 * time.Second,
		Multiplier:  2,
		MinDelay:    2 * time.Second,
		MaxDelay:    120 * time.Second,
	}
}

// Do runs fn up to MaxAttempts times, sleeping between attempts with
// jittered exponential backoff. Non-transient errors return
// immediately.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		if !IsTransient(err) {
			return "", err
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}
		if err := sleepCtx(ctx, p.delay(attempt)); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	mult := p.Multiplier
	if mult <= 1 {
		mult = 2
	}
	d := float64(p.BaseDelay)
	for i := 0; i < attempt; i++ {
		d *= mult
	}
	delay := time.Duration(d)
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	// Full jitter over the upper half keeps concurrent jobs from
	// hammering the provider in lockstep.
	delay = delay/2 + time.Duration(rand.Int63n(int64(delay/2)+1))
	if delay < p.MinDelay {
		delay = p.MinDelay
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
