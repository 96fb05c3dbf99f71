package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes transitions on one wizard session across server replicas.
// The in-process mutex in session.Manager covers a single replica; a locker is only
// needed when several replicas share a session store.
type DistributedLocker interface {
	// Lock blocks until the session key is held or ctx is done. The lock expires after
	// ttl if the holder dies, so the returned UnlockFunc must still be called on success.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
