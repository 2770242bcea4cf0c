package db

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var transientPgErrorCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
}

// IsTransient reports whether err is a failure worth retrying, such as a
// serialization conflict under CockroachDB's default isolation.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, pgx.ErrTxClosed) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := transientPgErrorCodes[pgErr.Code]
		return ok
	}
	return false
}

// RetryPolicy bounds the retries of a transient database failure.
type RetryPolicy struct {
	Attempts    int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// Backoff doubles BaseBackoff per attempt, capped at MaxBackoff.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	backoff := time.Duration(math.Pow(2, float64(attempt-1))) * p.BaseBackoff
	if backoff > p.MaxBackoff {
		return p.MaxBackoff
	}
	return backoff
}

// Do calls fn until it succeeds, fails with a non-transient error, or the
// attempts run out. onRetry, if set, sees every failure that will be retried.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error, onRetry func(attempt int, err error)) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if sleepErr := SleepContext(ctx, p.Backoff(attempt)); sleepErr != nil {
				return sleepErr
			}
		}

		err = fn(ctx)
		if err == nil || !IsTransient(err) || attempt == attempts-1 {
			return err
		}
		if onRetry != nil {
			onRetry(attempt+1, err)
		}
	}
	return err
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
