package commands

import (
	"context"
	"errors"
	"time"

	"deliveryno/internal/core/ports"
	"deliveryno/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultMaxRetries      = 5
	defaultInitialInterval = 20 * time.Millisecond
	defaultMaxInterval     = 500 * time.Millisecond
)

// OrderLockKey and StockLockKey name the single-writer keys of each aggregate.
func OrderLockKey(id string) string { return "order:" + id }

func StockLockKey(id string) string { return "stock:" + id }

// Serializer runs a write under a per-key lock and retries it on contention.
// Lock failures (including ports.ErrLockNotAcquired) and errors matching
// errs.ErrTransient are retried with exponential backoff; once retries are
// exhausted the caller gets an errs.TransientError. Any other error is
// returned immediately.
//
// A nil locker disables cross-instance locking; row locks taken inside the
// unit of work still serialise writers of the same row.
type Serializer struct {
	locker     ports.KeyLocker
	newBackOff func() backoff.BackOff
}

func NewSerializer(locker ports.KeyLocker) Serializer {
	return Serializer{
		locker: locker,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = defaultInitialInterval
			b.MaxInterval = defaultMaxInterval
			return backoff.WithMaxRetries(b, defaultMaxRetries)
		},
	}
}

// NewSerializerWithBackOff lets callers choose the retry schedule.
func NewSerializerWithBackOff(locker ports.KeyLocker, newBackOff func() backoff.BackOff) Serializer {
	return Serializer{locker: locker, newBackOff: newBackOff}
}

// Run executes fn while holding key. operation names the write in errors.
func (s Serializer) Run(ctx context.Context, key, operation string, fn func(ctx context.Context) error) error {
	attempt := func() error {
		if s.locker != nil {
			release, err := s.locker.TryLock(ctx, key)
			if err != nil {
				return errs.NewTransientErrorWithCause(operation, err)
			}
			defer func() {
				_ = release(context.WithoutCancel(ctx))
			}()
		}

		err := fn(ctx)
		if err == nil || errors.Is(err, errs.ErrTransient) {
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.Retry(attempt, backoff.WithContext(s.newBackOff(), ctx))
	if err == nil {
		return nil
	}

	var transient *errs.TransientError
	switch {
	case errors.As(err, &transient):
		return transient
	case ctx.Err() != nil:
		return errs.NewTransientErrorWithCause(operation, err)
	}
	return err
}
