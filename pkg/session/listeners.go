package session

// Listener sets follow copy-on-write semantics: registration takes a
// short lock and swaps in a fresh slice, while notification iterates a
// snapshot without holding any lock. Listeners are deduplicated by
// equality, so register comparable values (pointers work well).

import "sync"

/*
BindListener is notified before a session is associated with the store.
*/
type BindListener interface {
	BindingSession(r Request, s *Session)
}

/*
UnboundListener is notified after a container session has been removed
and its wrapper dropped from the store.
*/
type UnboundListener interface {
	SessionUnbound(sid string)
}

type bindListenerSet struct {
	mu    sync.Mutex
	items []BindListener
}

func (set *bindListenerSet) add(l BindListener) {
	set.mu.Lock()
	defer set.mu.Unlock()

	for _, existing := range set.items {
		if existing == l {
			return
		}
	}

	next := make([]BindListener, len(set.items), len(set.items)+1)
	copy(next, set.items)
	set.items = append(next, l)
}

func (set *bindListenerSet) remove(l BindListener) {
	set.mu.Lock()
	defer set.mu.Unlock()

	next := make([]BindListener, 0, len(set.items))
	for _, existing := range set.items {
		if existing != l {
			next = append(next, existing)
		}
	}
	set.items = next
}

func (set *bindListenerSet) snapshot() []BindListener {
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.items
}

type unboundListenerSet struct {
	mu    sync.Mutex
	items []UnboundListener
}

func (set *unboundListenerSet) add(l UnboundListener) {
	set.mu.Lock()
	defer set.mu.Unlock()

	for _, existing := range set.items {
		if existing == l {
			return
		}
	}

	next := make([]UnboundListener, len(set.items), len(set.items)+1)
	copy(next, set.items)
	set.items = append(next, l)
}

func (set *unboundListenerSet) remove(l UnboundListener) {
	set.mu.Lock()
	defer set.mu.Unlock()

	next := make([]UnboundListener, 0, len(set.items))
	for _, existing := range set.items {
		if existing != l {
			next = append(next, existing)
		}
	}
	set.items = next
}

func (set *unboundListenerSet) snapshot() []UnboundListener {
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.items
}
