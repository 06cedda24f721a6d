// Package notifier implements the Notifier actor: it renders session
// lifecycle, check-in, and distraction/friction notifications and carries
// back the user's interactive replies to the Timer and App Tracker.
package notifier

// FocusAnswer is the renderer's decoded reply to a check-in prompt, before
// it is translated into the Timer's own timer.CheckInReply type.
type FocusAnswer int

const (
	FocusAnswerFocused FocusAnswer = iota
	FocusAnswerNotFocused
)

// FrictionAnswer is the renderer's decoded reply to a friction prompt,
// before translation into the App Tracker's apptracker.FrictionReply type.
type FrictionAnswer int

const (
	FrictionAnswerContinue FrictionAnswer = iota
	FrictionAnswerBackToWork
	FrictionAnswerStopSession
)

// ExternalLink is an optional URL attached to a digest notification, the
// narrow hand-off point for an external code-review provider integration.
// Building the HTTP client bodies behind FLUX_GITLAB_TOKEN / FLUX_GITHUB_*
// is out of scope; this type only carries a link a future provider could
// populate.
type ExternalLink struct {
	Label string
	URL   string
}
