package stores

// Container is the underlying attribute storage a session store delegates
// to, playing the role a servlet container session plays for a web app.
// Implementations are safe for concurrent use. A session springs into
// existence on its first attribute write; reading attributes of an
// unknown session id is not an error, it simply finds nothing.

import "context"

/*
UnboundFunc is invoked with the session id after a container session has
been removed, either explicitly through Invalidate or by expiry where the
backend supports it.
*/
type UnboundFunc func(sid string)

type Container interface {
	// Attribute returns the value stored under key for the given session
	// id. The second return is false when the session or the key does not
	// exist.
	Attribute(ctx context.Context, sid, key string) (string, bool, error)
	// SetAttribute stores value under key, creating the container session
	// when it does not exist yet.
	SetAttribute(ctx context.Context, sid, key, value string) error
	// RemoveAttribute deletes key from the session. Unknown sessions and
	// keys are a no-op.
	RemoveAttribute(ctx context.Context, sid, key string) error
	// AttributeNames lists all keys stored for the session id.
	AttributeNames(ctx context.Context, sid string) ([]string, error)
	// Invalidate removes the container session and fires the registered
	// unbound callbacks exactly once per removal.
	Invalidate(ctx context.Context, sid string) error
	// OnUnbound registers a callback for session removal. Callbacks run
	// synchronously in registration order.
	OnUnbound(fn UnboundFunc)
	// Close releases backend resources. Further calls fail with
	// ErrContainerClosed.
	Close() error
}
