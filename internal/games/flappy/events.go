package flappy

// EventKind identifies a simulation side effect published with a snapshot.
type EventKind int

const (
	EventRunStarted EventKind = iota
	EventFlapped
	EventScored
	EventScoreCue // Rate-limited companion of EventScored, for audio
	EventCollided
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventRunStarted:
		return "run_started"
	case EventFlapped:
		return "flapped"
	case EventScored:
		return "scored"
	case EventScoreCue:
		return "score_cue"
	case EventCollided:
		return "collided"
	default:
		return "unknown"
	}
}

// Event is one side effect of a tick. X and Y locate it in the world and
// Score is the run score after it happened.
type Event struct {
	Kind  EventKind
	X, Y  float64
	Score int
}
