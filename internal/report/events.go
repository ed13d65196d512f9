package report

import (
	"examhall/pkg/types"
)

// EventKind identifies which reporter notification an Event carries.
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventSessionEnded
	EventParticipantEntered
	EventParticipantLeft
	EventAnomalyDetected
	EventSessionComplete
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSessionStarted:
		return "session_started"
	case EventSessionEnded:
		return "session_ended"
	case EventParticipantEntered:
		return "participant_entered"
	case EventParticipantLeft:
		return "participant_left"
	case EventAnomalyDetected:
		return "anomaly_detected"
	case EventSessionComplete:
		return "session_complete"
	default:
		return "unknown"
	}
}

// Event is one reporter notification in a value form that can be queued,
// recorded, and replayed. Only the fields relevant to the kind are set.
type Event struct {
	Kind        EventKind
	RunID       string
	Participant types.ParticipantID
	Room        types.RoomID
	Occupancy   int
	Capacity    int
	Population  int
	RoomCount   int
	Summary     *types.Summary
}
