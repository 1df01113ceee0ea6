package session

/*
Store is the session-store contract a host application satisfies for its
UI layer: session lifecycle, attribute access and lifecycle listener
registration. WebStore is the production implementation.

Reads degrade to "absent" when no session exists for the request; writes
against a missing session are a silent no-op. Backend I/O failures on
writes surface as errors.
*/
type Store interface {
	// GetOrCreate returns the live session for the request, lazily
	// creating and binding one when create semantics are needed.
	GetOrCreate(r Request) *Session
	// Bind associates the session with the store. Binding an
	// already-bound session is idempotent.
	Bind(r Request, s *Session) error
	// Flush persists the session association, binding first when needed.
	Flush(r Request, s *Session) error
	// Destroy detaches every live session and clears the store.
	Destroy()
	// SessionID resolves the request's session identifier, minting one
	// when create is true.
	SessionID(r Request, create bool) string
	// Invalidate removes the container session, which unbinds the
	// wrapper and notifies unbound listeners.
	Invalidate(r Request) error
	// Lookup returns the bound session for the request, or nil.
	Lookup(r Request) *Session

	Attribute(r Request, name string) (string, bool)
	SetAttribute(r Request, name, value string) error
	RemoveAttribute(r Request, name string) error
	AttributeNames(r Request) []string

	RegisterBindListener(l BindListener)
	UnregisterBindListener(l BindListener)
	BindListeners() []BindListener
	RegisterUnboundListener(l UnboundListener)
	UnregisterUnboundListener(l UnboundListener)
	UnboundListeners() []UnboundListener
}
