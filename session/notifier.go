package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/zendworks/go-session-keeper/identity"
)

// ReadyFunc receives the "session ready" signal. It carries the resolved (or
// cached, or empty) identity; dependent collaborators use it to start their
// own initialization.
type ReadyFunc func(identity.Identity)

// notifier is a minimal subscription registry for the session-ready signal.
// Subscribers are keyed by opaque handles so unsubscribing one never disturbs
// another.
type notifier struct {
	lock        sync.RWMutex
	subscribers map[uuid.UUID]ReadyFunc
}

func newNotifier() *notifier {
	return &notifier{subscribers: make(map[uuid.UUID]ReadyFunc)}
}

func (n *notifier) subscribe(fn ReadyFunc) func() {
	id := uuid.New()

	n.lock.Lock()
	n.subscribers[id] = fn
	n.lock.Unlock()

	return func() {
		n.lock.Lock()
		delete(n.subscribers, id)
		n.lock.Unlock()
	}
}

func (n *notifier) emit(resolved identity.Identity) {
	n.lock.RLock()
	funcs := make([]ReadyFunc, 0, len(n.subscribers))
	for _, fn := range n.subscribers {
		funcs = append(funcs, fn)
	}
	n.lock.RUnlock()

	for _, fn := range funcs {
		fn(resolved)
	}
}
