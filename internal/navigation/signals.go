package navigation

import "github.com/zoobzio/capitan"

// Transition lifecycle signals.
var (
	// TransitionAccepted is emitted when the current section changes.
	TransitionAccepted = capitan.NewSignal(
		"navigation.transition.accepted",
		"Section transition accepted",
	)

	// CooldownElapsed is emitted when the controller returns to idle.
	CooldownElapsed = capitan.NewSignal(
		"navigation.cooldown.elapsed",
		"Transition cooldown elapsed",
	)

	// IntentDropped is emitted when a gated intent hits a running cooldown or
	// an open menu.
	IntentDropped = capitan.NewSignal(
		"navigation.intent.dropped",
		"Gated intent dropped",
	)

	// IntentRejected is emitted for unknown or out-of-range targets.
	IntentRejected = capitan.NewSignal(
		"navigation.intent.rejected",
		"Intent target rejected",
	)
)

// History signals.
var (
	// HistoryWritten is emitted after the address bar was replaced.
	HistoryWritten = capitan.NewSignal(
		"navigation.history.written",
		"History entry replaced",
	)

	// RestoreScheduled is emitted when a URL-driven restore is deferred.
	RestoreScheduled = capitan.NewSignal(
		"navigation.restore.scheduled",
		"URL restore scheduled",
	)
)

// Field keys for navigation events.
var (
	KeyFrom   = capitan.NewStringKey("from")
	KeyTo     = capitan.NewStringKey("to")
	KeySource = capitan.NewStringKey("source")
	KeyIntent = capitan.NewStringKey("intent")
	KeyURL    = capitan.NewStringKey("url")
	KeyError  = capitan.NewStringKey("error")
	KeyDelay  = capitan.NewDurationKey("delay")
)
