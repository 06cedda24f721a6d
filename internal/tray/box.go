// Package tray implements the optional Tray State projection: a
// thread-safe box the Timer writes into, and a menu-action channel the tray
// thread reads from. Neither direction blocks the Timer's own tick.
package tray

import (
	"sync"
	"time"

	"github.com/fluxhq/flux/internal/domain"
	"github.com/fluxhq/flux/internal/timer"
)

// Snapshot is a point-in-time read of the tray's projected state.
type Snapshot struct {
	State     timer.TrayState
	Remaining time.Duration
	Mode      domain.Mode
	HasMode   bool
}

// Box is the shared, short-lived-critical-section state the Timer writes
// into and the tray thread's renderer reads from. Update is called from the
// Timer's own task on every tick; Snapshot is called from the render loop.
// Both critical sections are O(1) field assignments, per the concurrency
// model's mutual-exclusion exceptions.
type Box struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewBox returns a Box in the Inactive state.
func NewBox() *Box {
	return &Box{snap: Snapshot{State: timer.TrayInactive}}
}

// Update implements timer.TrayPort.
func (b *Box) Update(state timer.TrayState, remaining time.Duration, mode domain.Mode, hasMode bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = Snapshot{State: state, Remaining: remaining, Mode: mode, HasMode: hasMode}
}

// Snapshot returns the current projected state for rendering.
func (b *Box) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}
