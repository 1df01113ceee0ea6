package stores

// Redis persists container sessions as one hash per session id. The
// session TTL is refreshed on every write. Explicit invalidation fires
// the unbound callbacks; passive TTL expiry inside Redis does not, so
// deployments that need expiry notifications should keep the in-memory
// backend in front or enable keyspace notifications themselves.

import (
	"context"
	"fmt"
	"sync"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/theapemachine/wicker-go/pkg/errors"
)

type Redis struct {
	client     *backend.Client
	prefix     string
	expiration time.Duration

	mu      sync.RWMutex
	unbound []UnboundFunc
	closed  bool
}

type RedisOption func(*Redis)

// WithPrefix overrides the key prefix sessions are stored under.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithTTL overrides the default 24 hour session TTL.
func WithTTL(d time.Duration) RedisOption {
	return func(r *Redis) {
		r.expiration = d
	}
}

/*
NewRedisFromClient wraps an existing client so callers control connection
options, pooling and shutdown ordering.
*/
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client:     client,
		prefix:     "wicker:session:",
		expiration: 24 * time.Hour,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Redis) key(sid string) string {
	return r.prefix + sid
}

func (r *Redis) Attribute(ctx context.Context, sid, key string) (string, bool, error) {
	value, err := r.client.HGet(ctx, r.key(sid), key).Result()
	if err == backend.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis attribute read: %w", err)
	}
	return value, true, nil
}

func (r *Redis) SetAttribute(ctx context.Context, sid, key, value string) error {
	if r.isClosed() {
		return errors.ErrContainerClosed
	}

	if err := r.client.HSet(ctx, r.key(sid), key, value).Err(); err != nil {
		return fmt.Errorf("redis attribute write: %w", err)
	}
	if err := r.client.Expire(ctx, r.key(sid), r.expiration).Err(); err != nil {
		return fmt.Errorf("redis expire: %w", err)
	}
	return nil
}

func (r *Redis) RemoveAttribute(ctx context.Context, sid, key string) error {
	if err := r.client.HDel(ctx, r.key(sid), key).Err(); err != nil {
		return fmt.Errorf("redis attribute delete: %w", err)
	}
	return nil
}

func (r *Redis) AttributeNames(ctx context.Context, sid string) ([]string, error) {
	names, err := r.client.HKeys(ctx, r.key(sid)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis attribute names: %w", err)
	}
	return names, nil
}

func (r *Redis) Invalidate(ctx context.Context, sid string) error {
	removed, err := r.client.Del(ctx, r.key(sid)).Result()
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}

	if removed > 0 {
		r.notifyUnbound(sid)
	}
	return nil
}

func (r *Redis) OnUnbound(fn UnboundFunc) {
	r.mu.Lock()
	r.unbound = append(r.unbound, fn)
	r.mu.Unlock()
}

func (r *Redis) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	return r.client.Close()
}

func (r *Redis) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

func (r *Redis) notifyUnbound(sid string) {
	r.mu.RLock()
	listeners := make([]UnboundFunc, len(r.unbound))
	copy(listeners, r.unbound)
	r.mu.RUnlock()

	for _, fn := range listeners {
		fn(sid)
	}
}
