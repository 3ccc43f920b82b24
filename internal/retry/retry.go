// Package retry wraps avast/retry-go with the defaults used for startup dependencies
// such as the database connection.
package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

var (
	defaultAttempts     uint = 5
	defaultMinDelay          = 500 * time.Millisecond
	defaultMaxDelay          = 8 * time.Second
	attemptContextLimit      = 30 * time.Second
)

// Callback is a unit of work that is retried until it succeeds.
type Callback[T any] func(ctx context.Context) (T, error)

// Config tunes a Retry call. Zero values fall back to the package defaults.
type Config struct {
	Attempts uint
	MinDelay time.Duration
	MaxDelay time.Duration
	// OnRetry is called after every failed attempt, with the zero-based attempt number.
	OnRetry func(attempt uint, err error)
}

func (c Config) options(ctx context.Context) []retry.Option {
	if c.Attempts == 0 {
		c.Attempts = defaultAttempts
	}
	if c.MinDelay == 0 {
		c.MinDelay = defaultMinDelay
	}
	if c.MaxDelay == 0 {
		c.MaxDelay = defaultMaxDelay
	}

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(c.Attempts),
		retry.Delay(c.MinDelay),
		retry.MaxDelay(c.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	}
	if c.OnRetry != nil {
		opts = append(opts, retry.OnRetry(c.OnRetry))
	}

	return opts
}

// Retry runs callback until it succeeds, the attempts are exhausted or ctx is done.
// Each attempt gets its own timeout derived from ctx.
func Retry[T any](ctx context.Context, cfg Config, callback Callback[T]) (T, error) {
	var returnValue T

	err := retry.Do(func() error {
		rctx, cancel := context.WithTimeout(ctx, attemptContextLimit)
		defer cancel()

		v, err := callback(rctx)
		if err != nil {
			return err
		}
		returnValue = v

		return nil
	}, cfg.options(ctx)...)

	return returnValue, err
}
