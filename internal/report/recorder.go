package report

import (
	"sync"

	"examhall/pkg/types"
)

// Recorder is a SessionReporter that captures every notification in arrival
// order. Scenario tests read the recording back to assert on event ordering
// and counts.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// SessionStarted records a session-started notification.
func (r *Recorder) SessionStarted(runID string, population, roomCount int) {
	r.record(Event{Kind: EventSessionStarted, RunID: runID, Population: population, RoomCount: roomCount})
}

// SessionEnded records a session-ended notification.
func (r *Recorder) SessionEnded(runID string) {
	r.record(Event{Kind: EventSessionEnded, RunID: runID})
}

// ParticipantEntered records a room entry.
func (r *Recorder) ParticipantEntered(id types.ParticipantID, room types.RoomID, occupancy int) {
	r.record(Event{Kind: EventParticipantEntered, Participant: id, Room: room, Occupancy: occupancy})
}

// ParticipantLeft records a departure.
func (r *Recorder) ParticipantLeft(id types.ParticipantID, room types.RoomID) {
	r.record(Event{Kind: EventParticipantLeft, Participant: id, Room: room})
}

// AnomalyDetected records an over-capacity observation.
func (r *Recorder) AnomalyDetected(room types.RoomID, occupancy, capacity int) {
	r.record(Event{Kind: EventAnomalyDetected, Room: room, Occupancy: occupancy, Capacity: capacity})
}

// SessionComplete records the final summary.
func (r *Recorder) SessionComplete(summary *types.Summary) {
	r.record(Event{Kind: EventSessionComplete, Summary: summary})
}

// Events returns a copy of everything recorded so far, in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Index returns the position of the first event of the given kind, or -1 if
// none was recorded.
func (r *Recorder) Index(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ev := range r.events {
		if ev.Kind == kind {
			return i
		}
	}
	return -1
}

// LastIndex returns the position of the last event of the given kind, or -1
// if none was recorded.
func (r *Recorder) LastIndex(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return i
		}
	}
	return -1
}
