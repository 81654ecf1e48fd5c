package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/woiya/marketplace/internal/core/domain"
)

const (
	lockPrefix = "lock:"
	// unlockTimeout bounds the release call, which runs after the caller's
	// context may already be cancelled.
	unlockTimeout = 2 * time.Second
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker provides per-key mutual exclusion across server instances.
// Key format: lock:<key>
type Locker struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewLocker creates a Locker wrapping the given Redis client.
func NewLocker(client *redis.Client, log zerolog.Logger) *Locker {
	return &Locker{client: client, log: log}
}

// Lock acquires key for at most ttl. It does not wait: a held key yields
// domain.ErrOperationInProgress immediately.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, lockPrefix+key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrOperationInProgress
	}

	unlock := func() {
		ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{lockPrefix + key}, token).Err(); err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("failed to release lock")
		}
	}
	return unlock, nil
}
