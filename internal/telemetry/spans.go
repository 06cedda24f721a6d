package tracing

// Span attribute keys for the daemon's actor runtime.
// These constants define the semantic conventions for span attributes
// attached to Timer, App Tracker, Notifier, Digest, and IPC operations.
const (
	// Session attributes
	AttrSessionID  = "session.id"
	AttrMode       = "session.mode"
	AttrCheckIn    = "session.checkin_percent"
	AttrRemaining  = "session.remaining_seconds"

	// Actor/message attributes
	AttrActorName  = "actor.name"
	AttrMsgType    = "message.type"

	// App tracker attributes
	AttrAppName       = "app.name"
	AttrWindowTitle   = "app.window_title"
	AttrShortBursts   = "app.short_bursts"
	AttrContextSwitch = "app.context_switches"

	// IPC attributes
	AttrRequestKind = "ipc.request_kind"
	AttrConnID      = "ipc.connection_id"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// SpanKind constants for categorizing span types.
const (
	SpanKindActor = "actor"
	SpanKindIPC   = "ipc"
	SpanKindRepo  = "repo"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixActor = "actor.handle."
	SpanPrefixIPC   = "ipc.request."
	SpanPrefixRepo  = "repo."
	SpanPrefixTick  = "actor.tick."
)

// Event names for span events.
const (
	EventMessageEnqueued  = "message.enqueued"
	EventMessageHandled   = "message.handled"
	EventCheckInDispatched = "checkin.dispatched"
	EventThresholdCrossed = "checkin.threshold_crossed"
	EventDistractionAlert = "distraction.alert"
	EventFrictionPrompt   = "friction.prompt"
	EventErrorOccurred    = "error.occurred"
)
