package session

import "context"

/*
Request abstracts the host pipeline's request object so the store never
depends on a concrete HTTP framework. The Fiber adapter in pkg/service
is the canonical implementation.
*/
type Request interface {
	// SessionID returns the identifier carried by the request. When no
	// identifier is present and create is true, a fresh one is minted and
	// attached to the response; otherwise the empty string is returned.
	SessionID(create bool) string
	// Header returns the named request header, or the empty string.
	Header(key string) string
	// Context returns the request-scoped context used for backend calls.
	Context() context.Context
	// ContainerRequest exposes the framework-native request object.
	ContainerRequest() any
}
