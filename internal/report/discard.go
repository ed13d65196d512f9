package report

import (
	"examhall/pkg/interfaces"
	"examhall/pkg/types"
)

// Discard is a SessionReporter that ignores every notification. It backs
// runs configured with console reporting disabled.
var Discard interfaces.SessionReporter = discard{}

type discard struct{}

func (discard) SessionStarted(runID string, population, roomCount int) {}

func (discard) SessionEnded(runID string) {}

func (discard) ParticipantEntered(id types.ParticipantID, room types.RoomID, occupancy int) {}

func (discard) ParticipantLeft(id types.ParticipantID, room types.RoomID) {}

func (discard) AnomalyDetected(room types.RoomID, occupancy, capacity int) {}

func (discard) SessionComplete(summary *types.Summary) {}
