package ports

import (
	"context"
	"time"
)

// Transactor runs fn so that every repository write made with the ctx passed
// to fn commits or aborts together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker provides short-lived mutual exclusion keyed by string.
// Lock returns domain.ErrOperationInProgress when key is already held.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}
