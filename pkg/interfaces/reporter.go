package interfaces

import (
	"examhall/pkg/types"
)

// SessionReporter receives the observational notifications emitted during
// a session run. Notifications carry no control-flow significance: the
// synchronization core behaves identically whether or not anyone listens.
// Implementations must be safe for concurrent use, since participant
// units report entry and departure in parallel.
type SessionReporter interface {
	// SessionStarted fires exactly once, after every participant unit has
	// reached the start gate and immediately before the gate is released.
	SessionStarted(runID string, population, roomCount int)

	// SessionEnded fires exactly once, when the end signal is raised.
	SessionEnded(runID string)

	// ParticipantEntered fires after a participant's room entry has been
	// recorded; occupancy is the post-increment count for that room.
	ParticipantEntered(id types.ParticipantID, room types.RoomID, occupancy int)

	// ParticipantLeft fires after a participant observes the end signal
	// and departs.
	ParticipantLeft(id types.ParticipantID, room types.RoomID)

	// AnomalyDetected fires when a room entry pushes occupancy past the
	// room's configured capacity. The entry itself still succeeds;
	// over-capacity is a reportable condition, not a fatal error.
	AnomalyDetected(room types.RoomID, occupancy, capacity int)

	// SessionComplete delivers the final aggregated counts after every
	// participant unit has terminated.
	SessionComplete(summary *types.Summary)
}
