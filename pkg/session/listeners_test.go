package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListenerSet_DuplicateRegistration(t *testing.T) {
	ws, _ := newTestStore(t)
	listener := &countingBindListener{}

	ws.RegisterBindListener(listener)
	ws.RegisterBindListener(listener)

	assert.Len(t, ws.BindListeners(), 1)
}

func TestListenerSet_Unregister(t *testing.T) {
	ws, _ := newTestStore(t)
	first := &countingUnboundListener{}
	second := &countingUnboundListener{}

	ws.RegisterUnboundListener(first)
	ws.RegisterUnboundListener(second)
	assert.Len(t, ws.UnboundListeners(), 2)

	ws.UnregisterUnboundListener(first)
	assert.Equal(t, []UnboundListener{second}, ws.UnboundListeners())

	// Unregistering twice is harmless
	ws.UnregisterUnboundListener(first)
	assert.Len(t, ws.UnboundListeners(), 1)
}

func TestListenerSet_NotificationOrder(t *testing.T) {
	ws, _ := newTestStore(t)

	order := []string{}

	ws.RegisterUnboundListener(&recordingListener{name: "first", order: &order})
	ws.RegisterUnboundListener(&recordingListener{name: "second", order: &order})
	ws.RegisterUnboundListener(&recordingListener{name: "third", order: &order})

	r := &fakeRequest{}
	ws.GetOrCreate(r)
	assert.NoError(t, ws.Invalidate(r))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

type recordingListener struct {
	name  string
	order *[]string
}

func (l *recordingListener) SessionUnbound(string) {
	*l.order = append(*l.order, l.name)
}
