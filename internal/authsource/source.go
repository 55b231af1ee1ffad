// Package authsource provides the authentication status sources consumed by
// the access gate. A source owns the current AuthStatus snapshot; the gate
// only ever reads it.
package authsource

import (
	"sync"

	"github.com/spec-kit/access-gate/internal/domain"
)

// Source exposes the current authentication status and notifies listeners
// on every change. Subscribe returns an unsubscribe function; calling it
// more than once is safe.
type Source interface {
	Current() domain.AuthStatus
	Subscribe(onChange func(domain.AuthStatus)) (unsubscribe func())
}

// listenerSet delivers statuses to subscribers in registration order.
type listenerSet struct {
	mu      sync.Mutex
	current domain.AuthStatus
	entries []listenerEntry
	nextID  int
}

type listenerEntry struct {
	id int
	fn func(domain.AuthStatus)
}

func newListenerSet(initial domain.AuthStatus) *listenerSet {
	return &listenerSet{current: initial}
}

func (l *listenerSet) Current() domain.AuthStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

func (l *listenerSet) Subscribe(onChange func(domain.AuthStatus)) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, listenerEntry{id: id, fn: onChange})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, entry := range l.entries {
			if entry.id == id {
				l.entries = append(l.entries[:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

// emit records the new status and invokes every listener with it.
func (l *listenerSet) emit(status domain.AuthStatus) {
	l.mu.Lock()
	l.current = status
	entries := append([]listenerEntry{}, l.entries...)
	l.mu.Unlock()

	for _, entry := range entries {
		entry.fn(status)
	}
}
