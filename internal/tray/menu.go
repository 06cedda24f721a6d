package tray

import (
	"context"

	"github.com/fluxhq/flux/internal/log"
	"github.com/fluxhq/flux/internal/shutdown"
)

// Action is a menu item the tray UI can forward into the runtime.
type Action int

const (
	ActionPause Action = iota
	ActionResume
	ActionStop
	ActionOpenDashboard
	ActionCheckForUpdates
	ActionOpenConfiguration
	ActionQuit
)

// TimerPort is the subset of the Timer's handle menu actions forward to.
type TimerPort interface {
	Pause() error
	Resume() error
	Stop() error
}

// Runtime reads menu actions off a channel and forwards Pause/Resume/Stop to
// the Timer and Quit to the broadcast shutdown signal. OpenDashboard,
// CheckForUpdates, and OpenConfiguration invoke platform utilities that are
// out of scope for this module; they are logged and otherwise ignored.
type Runtime struct {
	Actions  <-chan Action
	Timer    TimerPort
	Shutdown *shutdown.Signal
}

// Run drains Actions until it closes, ctx is cancelled, or shutdown fires.
func (r *Runtime) Run(ctx context.Context) {
	for {
		select {
		case action, ok := <-r.Actions:
			if !ok {
				return
			}
			r.dispatch(action)

		case <-r.Shutdown.C():
			return

		case <-ctx.Done():
			return
		}
	}
}

func (r *Runtime) dispatch(action Action) {
	switch action {
	case ActionPause:
		if err := r.Timer.Pause(); err != nil {
			log.ErrorErr(log.CatTray, "pause failed", err)
		}
	case ActionResume:
		if err := r.Timer.Resume(); err != nil {
			log.ErrorErr(log.CatTray, "resume failed", err)
		}
	case ActionStop:
		if err := r.Timer.Stop(); err != nil {
			log.ErrorErr(log.CatTray, "stop failed", err)
		}
	case ActionQuit:
		r.Shutdown.Trigger()
	case ActionOpenDashboard, ActionCheckForUpdates, ActionOpenConfiguration:
		log.Info(log.CatTray, "platform action not implemented", "action", action)
	}
}
