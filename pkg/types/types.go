package types

import (
	"fmt"
	"time"
)

// ParticipantID identifies a participant for the lifetime of a session.
// Identifiers are positive integers assigned contiguously from 1.
type ParticipantID int

// RoomID identifies a room. Room identifiers are non-negative integers
// chosen by the allocation step.
type RoomID int

// Participant binds a participant identity to its assigned room. The
// binding is immutable once the assignment mapping has been handed to the
// session coordinator.
type Participant struct {
	ID   ParticipantID `json:"id"`
	Room RoomID        `json:"room"`
}

// Mapping is the complete participant→room relation produced by the
// assignment provider before the session begins. Every participant id in
// [1..population] appears exactly once. Capacity fit is deliberately not
// part of the mapping contract: an over-assigned room must reach the
// occupancy tracker so the violation is detected at entry time.
type Mapping map[ParticipantID]RoomID

// SessionState is the global lifecycle state of a session. States only
// advance; no room ever reopens after StateComplete.
type SessionState int

const (
	// StateSetup covers construction through assignment delivery.
	StateSetup SessionState = iota
	// StateAwaitingStart means all participant units are spawned and the
	// start gate has not been released.
	StateAwaitingStart
	// StateInProgress means the start gate has been released.
	StateInProgress
	// StateEnding means the end signal has been raised and units are
	// draining toward termination.
	StateEnding
	// StateComplete means every unit has terminated and final occupancy
	// has been aggregated.
	StateComplete
)

// String returns the lowercase state name used in logs and reports.
func (s SessionState) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateAwaitingStart:
		return "awaiting_start"
	case StateInProgress:
		return "in_progress"
	case StateEnding:
		return "ending"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// RoomReport is the per-room row handed to the reporting collaborator
// after the session completes.
type RoomReport struct {
	Room      RoomID `json:"room"`
	Capacity  int    `json:"capacity"`
	Occupancy int    `json:"occupancy"`
}

// Summary aggregates the outcome of one full session run. It is built
// after every participant unit has terminated, so its counts are final
// and safe to read without locking.
type Summary struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Elapsed   time.Duration `json:"elapsed"`
	Rooms     []RoomReport  `json:"rooms"`
	Processed int           `json:"processed"`
	Expected  int           `json:"expected"`
	Anomalies int           `json:"anomalies"`
}

// TotalOccupancy sums the final occupancy across all rooms.
func (s *Summary) TotalOccupancy() int {
	total := 0
	for _, room := range s.Rooms {
		total += room.Occupancy
	}
	return total
}
