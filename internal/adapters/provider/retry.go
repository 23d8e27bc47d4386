package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/logger"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/metrics"
)

// Default retry configuration constants.
const (
	DefaultMaxRetries = 2
	DefaultBaseDelay  = time.Second
)

// ExhaustedError reports a lookup that failed on every attempt.
type ExhaustedError struct {
	ID       identifier.ID
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s for %s after %d attempts: %v", ErrRetrievalExhausted, e.ID, e.Attempts, e.Last)
}

// Is matches ErrRetrievalExhausted.
func (e *ExhaustedError) Is(target error) bool { return target == ErrRetrievalExhausted }

// Unwrap exposes the last attempt's error.
func (e *ExhaustedError) Unwrap() error { return e.Last }

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Retrying wraps a Fetcher with bounded sequential retries. The wait before
// retry n (1-based) is baseDelay*n.
type Retrying struct {
	next       Fetcher
	maxRetries int
	baseDelay  time.Duration
	sleep      SleepFunc
	logger     logger.Logger
}

// RetryOption applies a configuration option to Retrying.
type RetryOption func(*Retrying)

// WithMaxRetries sets the number of retries after the first attempt.
func WithMaxRetries(n int) RetryOption {
	return func(r *Retrying) {
		if n >= 0 {
			r.maxRetries = n
		}
	}
}

// WithBaseDelay sets the delay unit between attempts.
func WithBaseDelay(d time.Duration) RetryOption {
	return func(r *Retrying) {
		if d >= 0 {
			r.baseDelay = d
		}
	}
}

// WithSleep replaces the wait between attempts.
func WithSleep(fn SleepFunc) RetryOption {
	return func(r *Retrying) {
		if fn != nil {
			r.sleep = fn
		}
	}
}

// WithRetryLogger sets a custom logger.
func WithRetryLogger(l logger.Logger) RetryOption {
	return func(r *Retrying) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRetrying wraps next.
func NewRetrying(next Fetcher, opts ...RetryOption) *Retrying {
	r := &Retrying{
		next:       next,
		maxRetries: DefaultMaxRetries,
		baseDelay:  DefaultBaseDelay,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("retry")
	}
	return r
}

// MaxAttempts returns the total attempt budget.
func (r *Retrying) MaxAttempts() int { return r.maxRetries + 1 }

// Fetch tries the lookup up to MaxAttempts times. Any error counts as a
// failed attempt.
func (r *Retrying) Fetch(ctx context.Context, id identifier.ID) (Person, error) {
	var last error
	attempts := 0
	for i := 0; i <= r.maxRetries; i++ {
		attempts++
		p, err := r.next.Fetch(ctx, id)
		if err == nil {
			return p, nil
		}
		last = err

		if i == r.maxRetries {
			break
		}

		delay := r.baseDelay * time.Duration(i+1)
		r.logger.Debug(ctx, "retrying lookup",
			logger.String("id", string(id)),
			logger.Int("attempt", i+1),
			logger.Duration("backoff", delay),
			logger.Error(err),
		)
		metrics.RecordFetchRetry()
		if err := r.sleep(ctx, delay); err != nil {
			last = err
			break
		}
	}

	metrics.RecordFetchExhausted()
	return Person{}, &ExhaustedError{ID: id, Attempts: attempts, Last: last}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
