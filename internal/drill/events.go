package drill

import "github.com/vovakirdan/tui-drill/internal/core"

// EventKind identifies a notification sent to the render sink.
type EventKind int

const (
	// EventStateChanged carries the new and previous state.
	EventStateChanged EventKind = iota
	// EventReveal asks the renderer to clear fog in a circle around Point.
	EventReveal
	// EventPathAppended carries the step just added to the active run.
	EventPathAppended
	// EventPullBack carries the number of steps archived.
	EventPullBack
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventReveal:
		return "reveal"
	case EventPathAppended:
		return "path_appended"
	case EventPullBack:
		return "pull_back"
	default:
		return "unknown"
	}
}

// Event is a one-way notification from a session to its renderer.
type Event struct {
	Kind     EventKind
	State    State
	Prev     State
	Point    core.Vec2
	Radius   float64
	Step     PathStep
	Archived int
}

// Sink receives session events. Handlers run synchronously inside the tick;
// they may read the session but must not issue commands to it.
type Sink interface {
	Handle(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Handle calls f(ev).
func (f SinkFunc) Handle(ev Event) { f(ev) }

type discardSink struct{}

func (discardSink) Handle(Event) {}
