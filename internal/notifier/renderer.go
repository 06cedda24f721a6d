package notifier

import (
	"context"

	"github.com/fluxhq/flux/internal/log"
)

// Renderer shows notifications to the user. The concrete platform
// implementation (a desktop toast, a menu-bar popover) is out of scope;
// Flux ships LogRenderer as the default so the daemon is runnable end to
// end without one.
type Renderer interface {
	ShowInfo(title, body string) error
	AskCheckIn(ctx context.Context, title string, percent int) (FocusAnswer, error)
	AskFriction(ctx context.Context, app string, escalated bool) (FrictionAnswer, error)
}

// LogRenderer renders every notification as a structured log line and
// answers interactive prompts with the safe default outcome, standing in
// for a platform notification surface this daemon does not implement.
type LogRenderer struct{}

// ShowInfo logs a non-interactive notification.
func (LogRenderer) ShowInfo(title, body string) error {
	log.Info(log.CatNotifier, title, "body", body)
	return nil
}

// AskCheckIn logs a check-in prompt and answers Focused, since there is no
// UI here to collect a real answer.
func (LogRenderer) AskCheckIn(_ context.Context, title string, percent int) (FocusAnswer, error) {
	log.Info(log.CatNotifier, title, "percent", percent)
	return FocusAnswerFocused, nil
}

// AskFriction logs a friction prompt and answers Continue.
func (LogRenderer) AskFriction(_ context.Context, app string, escalated bool) (FrictionAnswer, error) {
	log.Info(log.CatNotifier, "friction prompt", "application", app, "escalated", escalated)
	return FrictionAnswerContinue, nil
}
