package stores

// Memory is the default container backend: an in-memory map safe for
// concurrent use, with per-session expiry enforced by a background
// sweeper. Perfectly sufficient for dev & unit tests; production
// deployments can swap in the Redis backend.

import (
	"context"
	"sync"
	"time"

	"github.com/theapemachine/wicker-go/pkg/errors"
)

// containerSession wraps the attribute map with its expiration time.
type containerSession struct {
	attrs     map[string]string
	expiresAt time.Time
}

type Memory struct {
	mu         sync.RWMutex
	sessions   map[string]*containerSession
	unbound    []UnboundFunc
	expiration time.Duration
	done       chan struct{}
	closeOnce  sync.Once
	closed     bool
}

type MemoryOption func(*Memory)

// WithExpiration overrides the default 24 hour session expiry.
func WithExpiration(d time.Duration) MemoryOption {
	return func(m *Memory) {
		m.expiration = d
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		sessions:   make(map[string]*containerSession),
		expiration: 24 * time.Hour,
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	go m.sweep()

	return m
}

func (m *Memory) Attribute(ctx context.Context, sid, key string) (string, bool, error) {
	m.mu.RLock()
	sess, ok := m.live(sid)
	if !ok {
		m.mu.RUnlock()
		return "", false, nil
	}
	value, ok := sess.attrs[key]
	m.mu.RUnlock()
	return value, ok, nil
}

func (m *Memory) SetAttribute(ctx context.Context, sid, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errors.ErrContainerClosed
	}

	sess, ok := m.live(sid)
	if !ok {
		sess = &containerSession{attrs: make(map[string]string)}
		m.sessions[sid] = sess
	}

	sess.attrs[key] = value
	sess.expiresAt = time.Now().Add(m.expiration)
	return nil
}

func (m *Memory) RemoveAttribute(ctx context.Context, sid, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.live(sid); ok {
		delete(sess.attrs, key)
	}
	return nil
}

func (m *Memory) AttributeNames(ctx context.Context, sid string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.live(sid)
	if !ok {
		return nil, nil
	}

	names := make([]string, 0, len(sess.attrs))
	for name := range sess.attrs {
		names = append(names, name)
	}
	return names, nil
}

func (m *Memory) Invalidate(ctx context.Context, sid string) error {
	m.mu.Lock()
	_, ok := m.sessions[sid]
	if ok {
		delete(m.sessions, sid)
	}
	m.mu.Unlock()

	if ok {
		m.notifyUnbound(sid)
	}
	return nil
}

func (m *Memory) OnUnbound(fn UnboundFunc) {
	m.mu.Lock()
	m.unbound = append(m.unbound, fn)
	m.mu.Unlock()
}

func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.done)
	})
	return nil
}

// live returns the session for sid, treating an expired entry as absent.
// Callers must hold at least the read lock.
func (m *Memory) live(sid string) (*containerSession, bool) {
	sess, ok := m.sessions[sid]
	if !ok || time.Now().After(sess.expiresAt) {
		return nil, false
	}
	return sess, true
}

func (m *Memory) notifyUnbound(sid string) {
	m.mu.RLock()
	listeners := make([]UnboundFunc, len(m.unbound))
	copy(listeners, m.unbound)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(sid)
	}
}

// sweep periodically evicts expired sessions, delivering unbound
// notifications for each eviction.
func (m *Memory) sweep() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}

/*
Cleanup evicts every expired session immediately. Exposed so callers and
tests can force a sweep instead of waiting for the ticker.
*/
func (m *Memory) Cleanup() {
	now := time.Now()
	expired := []string{}

	m.mu.Lock()
	for sid, sess := range m.sessions {
		if now.After(sess.expiresAt) {
			delete(m.sessions, sid)
			expired = append(expired, sid)
		}
	}
	m.mu.Unlock()

	for _, sid := range expired {
		m.notifyUnbound(sid)
	}
}
