// Package shutdown provides the daemon's broadcast shutdown channel: every
// actor selects on the same closed-channel signal, Go's native broadcast
// primitive for a signal that carries no payload.
package shutdown

import "sync"

// Signal is a one-shot broadcast: Trigger closes the channel C returns,
// waking every actor blocked on a select over it. Safe to call Trigger more
// than once.
type Signal struct {
	ch   chan struct{}
	once sync.Once
}

// New returns an untriggered Signal.
func New() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// C returns the channel actors select on; it closes exactly once, when
// Trigger is called.
func (s *Signal) C() <-chan struct{} { return s.ch }

// Trigger closes the channel, waking every selecting actor.
func (s *Signal) Trigger() {
	s.once.Do(func() { close(s.ch) })
}
