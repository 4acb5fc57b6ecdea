package graph

import (
	"context"
	"errors"
	"time"
)

// ErrLockTimeout indicates the per-key write lock could not be acquired
// within the configured bound.
var ErrLockTimeout = errors.New("write lock acquisition timed out")

// keyLocks serializes writers per key using striped binary semaphores.
// Two keys in the same stripe serialize against each other too, which is
// harmless for correctness; the stripe count just bounds memory.
type keyLocks struct {
	stripes []chan struct{}
	timeout time.Duration
}

func newKeyLocks(stripes int, timeout time.Duration) *keyLocks {
	l := &keyLocks{
		stripes: make([]chan struct{}, stripes),
		timeout: timeout,
	}
	for i := range l.stripes {
		l.stripes[i] = make(chan struct{}, 1)
	}
	return l
}

// acquire takes the lock for a key, waiting at most the configured
// timeout. The returned release function must be called exactly once.
func (l *keyLocks) acquire(ctx context.Context, key uint64) (func(), error) {
	stripe := l.stripes[key%uint64(len(l.stripes))]
	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case stripe <- struct{}{}:
		return func() { <-stripe }, nil
	case <-timer.C:
		return nil, ErrLockTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
