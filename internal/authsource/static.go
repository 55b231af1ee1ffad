package authsource

import "github.com/spec-kit/access-gate/internal/domain"

// StaticSource is a Source whose status is set by the caller. It backs tests
// and wiring that already knows the resolved status.
type StaticSource struct {
	listeners *listenerSet
}

// NewStaticSource builds a source holding the given initial status.
func NewStaticSource(initial domain.AuthStatus) *StaticSource {
	return &StaticSource{listeners: newListenerSet(initial)}
}

// Current returns the latest status.
func (s *StaticSource) Current() domain.AuthStatus {
	return s.listeners.Current()
}

// Subscribe registers a listener for status changes.
func (s *StaticSource) Subscribe(onChange func(domain.AuthStatus)) func() {
	return s.listeners.Subscribe(onChange)
}

// Set records a new status and notifies listeners.
func (s *StaticSource) Set(status domain.AuthStatus) {
	s.listeners.emit(status)
}
