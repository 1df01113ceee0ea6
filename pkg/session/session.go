package session

import "sync/atomic"

/*
ClientInfo describes the client a session belongs to, derived from
request headers at session creation time.
*/
type ClientInfo struct {
	UserAgent string
}

/*
Session is the store-side wrapper around one logical user session. It
holds only identity and client metadata; all attributes live in the
container backend and are reached through the owning store.
*/
type Session struct {
	id          string
	userAgent   string
	invalidated atomic.Bool
	detached    atomic.Bool
}

func NewSession(id, userAgent string) *Session {
	return &Session{
		id:        id,
		userAgent: userAgent,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) ClientInfo() ClientInfo {
	return ClientInfo{UserAgent: s.userAgent}
}

/*
Invalidated reports whether the container session backing this wrapper
has been removed.
*/
func (s *Session) Invalidated() bool {
	return s.invalidated.Load()
}

/*
Detach releases the wrapper from its store. Called for every live
session when the store is destroyed.
*/
func (s *Session) Detach() {
	s.detached.Store(true)
}

func (s *Session) Detached() bool {
	return s.detached.Load()
}

// onInvalidate marks the wrapper dead after an unbind notification.
func (s *Session) onInvalidate() {
	s.invalidated.Store(true)
}
