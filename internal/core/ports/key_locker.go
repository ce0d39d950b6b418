package ports

import (
	"context"
	"errors"
)

// ErrLockNotAcquired is returned when a key is held by another writer.
var ErrLockNotAcquired = errors.New("lock not acquired")

// ReleaseFunc releases a lock obtained from KeyLocker.
type ReleaseFunc func(ctx context.Context) error

// KeyLocker grants a single writer per key across all application instances.
type KeyLocker interface {
	// TryLock acquires key without waiting. It returns ErrLockNotAcquired
	// when the key is held elsewhere.
	TryLock(ctx context.Context, key string) (ReleaseFunc, error)
}
