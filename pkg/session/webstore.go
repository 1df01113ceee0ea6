package session

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/wicker-go/pkg/metrics"
	"github.com/theapemachine/wicker-go/pkg/stores"
)

// SessionAttributeName is the reserved attribute key under which the
// bound session id is stored in the container.
const SessionAttributeName = "session"

/*
WebStore implements Store on top of a pluggable container backend. It
keeps at most one live Session wrapper per session id and proxies all
attribute access to the container, namespaced by an application key so
several applications can share one backend.
*/
type WebStore struct {
	appKey    string
	container stores.Container

	mu       sync.RWMutex
	sessions map[string]*Session

	bindListeners    bindListenerSet
	unboundListeners unboundListenerSet
}

var _ Store = (*WebStore)(nil)

func NewWebStore(appKey string, container stores.Container) *WebStore {
	ws := &WebStore{
		appKey:    appKey,
		container: container,
		sessions:  make(map[string]*Session),
	}

	container.OnUnbound(ws.handleUnbound)

	return ws
}

// attributePrefix namespaces attribute keys in the container for this
// application instance.
func (ws *WebStore) attributePrefix() string {
	return "wicker:" + ws.appKey + ":"
}

/*
GetOrCreate returns the live session for the request. When none exists
it mints a session id, creates a wrapper capturing the client's
user-agent, and binds it.
*/
func (ws *WebStore) GetOrCreate(r Request) *Session {
	return ws.session(r, true)
}

// session is the single lookup path. With create false it never mutates
// anything; with create true it lazily creates and binds the wrapper.
func (ws *WebStore) session(r Request, create bool) *Session {
	id := r.SessionID(create)
	if id == "" {
		return nil
	}

	ws.mu.RLock()
	s := ws.sessions[id]
	ws.mu.RUnlock()

	if s != nil || !create {
		return s
	}

	s = NewSession(id, r.Header("User-Agent"))

	ws.mu.Lock()
	if existing, ok := ws.sessions[id]; ok {
		// lost the race, keep the winner
		ws.mu.Unlock()
		return existing
	}
	ws.sessions[id] = s
	ws.mu.Unlock()

	metrics.SessionsCreated.Inc()
	metrics.LiveSessions.Inc()
	log.Debug("session created", "session_id", id)

	if err := ws.Bind(r, s); err != nil {
		log.Error("failed to bind new session", "session_id", id, "error", err)
	}

	return s
}

/*
Bind associates the session with the store: bind listeners fire and the
session id is recorded in the container under the reserved attribute.
Binding an already-bound session is a no-op.
*/
func (ws *WebStore) Bind(r Request, s *Session) error {
	if bound, ok := ws.Attribute(r, SessionAttributeName); ok && bound == s.ID() {
		return nil
	}

	for _, listener := range ws.BindListeners() {
		listener.BindingSession(r, s)
	}

	if ws.session(r, false) == nil {
		// nothing to record against yet; the association completes on a
		// later bind once the wrapper is held
		return nil
	}

	return ws.SetAttribute(r, SessionAttributeName, s.ID())
}

/*
Flush persists the session association, binding first when the session
is not yet bound.
*/
func (ws *WebStore) Flush(r Request, s *Session) error {
	if bound, ok := ws.Attribute(r, SessionAttributeName); !ok || bound != s.ID() {
		return ws.Bind(r, s)
	}
	return ws.SetAttribute(r, SessionAttributeName, s.ID())
}

/*
Destroy detaches every live session and clears the mapping. Container
state is left untouched.
*/
func (ws *WebStore) Destroy() {
	ws.mu.Lock()
	detached := len(ws.sessions)
	for _, s := range ws.sessions {
		s.Detach()
	}
	ws.sessions = make(map[string]*Session)
	ws.mu.Unlock()

	metrics.LiveSessions.Sub(float64(detached))
	log.Debug("session store destroyed", "detached", detached)
}

func (ws *WebStore) SessionID(r Request, create bool) string {
	return r.SessionID(create)
}

/*
Invalidate removes the container session. The container's unbound
notification drops the wrapper from the map and fires unbound listeners.
*/
func (ws *WebStore) Invalidate(r Request) error {
	s := ws.session(r, false)
	if s == nil {
		return nil
	}

	metrics.SessionsInvalidated.Inc()

	return ws.container.Invalidate(r.Context(), s.ID())
}

/*
Lookup returns the bound session for the request, or nil when the
request carries no identifier or the session was never bound.
*/
func (ws *WebStore) Lookup(r Request) *Session {
	id := r.SessionID(false)
	if id == "" {
		return nil
	}

	if _, ok := ws.Attribute(r, SessionAttributeName); !ok {
		return nil
	}

	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.sessions[id]
}

/*
Attribute returns the named attribute of the request's session. Missing
sessions and backend read failures both degrade to absent; failures are
logged.
*/
func (ws *WebStore) Attribute(r Request, name string) (string, bool) {
	s := ws.session(r, false)
	if s == nil {
		return "", false
	}

	value, ok, err := ws.container.Attribute(r.Context(), s.ID(), ws.attributePrefix()+name)
	if err != nil {
		log.Error("attribute read failed", "session_id", s.ID(), "name", name, "error", err)
		return "", false
	}
	return value, ok
}

/*
SetAttribute stores the named attribute on the request's session. The
call is ignored when the request has no session.
*/
func (ws *WebStore) SetAttribute(r Request, name, value string) error {
	s := ws.session(r, false)
	if s == nil {
		return nil
	}

	key := ws.attributePrefix() + name
	_, existed, _ := ws.container.Attribute(r.Context(), s.ID(), key)

	if err := ws.container.SetAttribute(r.Context(), s.ID(), key, value); err != nil {
		return err
	}

	op := "create"
	if existed {
		op = "update"
	}
	metrics.AttributeOps.WithLabelValues(op).Inc()
	log.Debug("attribute written", "session_id", s.ID(), "name", name, "op", op)

	return nil
}

/*
RemoveAttribute deletes the named attribute from the request's session.
The call is ignored when the request has no session.
*/
func (ws *WebStore) RemoveAttribute(r Request, name string) error {
	s := ws.session(r, false)
	if s == nil {
		return nil
	}

	key := ws.attributePrefix() + name
	if _, existed, _ := ws.container.Attribute(r.Context(), s.ID(), key); existed {
		metrics.AttributeOps.WithLabelValues("remove").Inc()
		log.Debug("attribute removed", "session_id", s.ID(), "name", name)
	}

	return ws.container.RemoveAttribute(r.Context(), s.ID(), key)
}

/*
AttributeNames lists the attribute names of the request's session,
filtered to this application's namespace with the prefix stripped.
*/
func (ws *WebStore) AttributeNames(r Request) []string {
	s := ws.session(r, false)
	if s == nil {
		return nil
	}

	names, err := ws.container.AttributeNames(r.Context(), s.ID())
	if err != nil {
		log.Error("attribute listing failed", "session_id", s.ID(), "error", err)
		return nil
	}

	prefix := ws.attributePrefix()
	out := make([]string, 0, len(names))
	for _, name := range names {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			out = append(out, name[len(prefix):])
		}
	}
	return out
}

func (ws *WebStore) RegisterBindListener(l BindListener) {
	ws.bindListeners.add(l)
}

func (ws *WebStore) UnregisterBindListener(l BindListener) {
	ws.bindListeners.remove(l)
}

func (ws *WebStore) BindListeners() []BindListener {
	return ws.bindListeners.snapshot()
}

func (ws *WebStore) RegisterUnboundListener(l UnboundListener) {
	ws.unboundListeners.add(l)
}

func (ws *WebStore) UnregisterUnboundListener(l UnboundListener) {
	ws.unboundListeners.remove(l)
}

func (ws *WebStore) UnboundListeners() []UnboundListener {
	return ws.unboundListeners.snapshot()
}

// handleUnbound reacts to container-side removal: the wrapper leaves the
// map exactly once, is marked invalidated, and unbound listeners fire.
func (ws *WebStore) handleUnbound(sid string) {
	ws.mu.Lock()
	s, ok := ws.sessions[sid]
	if ok {
		delete(ws.sessions, sid)
	}
	ws.mu.Unlock()

	if !ok {
		return
	}

	s.onInvalidate()

	metrics.SessionsUnbound.Inc()
	metrics.LiveSessions.Dec()
	log.Debug("session unbound", "session_id", sid)

	for _, listener := range ws.UnboundListeners() {
		listener.SessionUnbound(sid)
	}
}
