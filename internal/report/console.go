package report

import (
	"fmt"
	"log"
	"strings"

	"examhall/pkg/types"
)

// ConsoleReporter logs every session notification in a line-per-event form.
type ConsoleReporter struct {
	logger *log.Logger
}

// NewConsoleReporter creates a console reporter. A nil logger selects the
// standard logger.
func NewConsoleReporter(logger *log.Logger) *ConsoleReporter {
	if logger == nil {
		logger = log.Default()
	}
	return &ConsoleReporter{logger: logger}
}

// SessionStarted logs the start of a run.
func (c *ConsoleReporter) SessionStarted(runID string, population, roomCount int) {
	c.logger.Printf("Session started: run=%s participants=%d rooms=%d", runID, population, roomCount)
}

// SessionEnded logs the end signal.
func (c *ConsoleReporter) SessionEnded(runID string) {
	c.logger.Printf("Session ended: run=%s", runID)
}

// ParticipantEntered logs a room entry.
func (c *ConsoleReporter) ParticipantEntered(id types.ParticipantID, room types.RoomID, occupancy int) {
	c.logger.Printf("Participant %d entered room %d (occupancy %d)", id, room, occupancy)
}

// ParticipantLeft logs a departure.
func (c *ConsoleReporter) ParticipantLeft(id types.ParticipantID, room types.RoomID) {
	c.logger.Printf("Participant %d leaving room %d", id, room)
}

// AnomalyDetected logs an over-capacity observation.
func (c *ConsoleReporter) AnomalyDetected(room types.RoomID, occupancy, capacity int) {
	c.logger.Printf("ANOMALY: room %d occupancy %d exceeds capacity %d", room, occupancy, capacity)
}

// SessionComplete logs the aggregate counts for the finished run.
func (c *ConsoleReporter) SessionComplete(summary *types.Summary) {
	if summary == nil {
		return
	}
	c.logger.Printf("Session complete: run=%s processed=%d/%d anomalies=%d elapsed=%s",
		summary.RunID, summary.Processed, summary.Expected, summary.Anomalies, summary.Elapsed)
}

// FormatSummary renders the final per-room table for stdout.
func FormatSummary(summary *types.Summary) string {
	if summary == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("=== Session Summary ===\n")
	fmt.Fprintf(&b, "Run: %s\n", summary.RunID)
	for _, room := range summary.Rooms {
		fmt.Fprintf(&b, "Room %d: %d/%d participants\n", room.Room, room.Occupancy, room.Capacity)
	}
	fmt.Fprintf(&b, "Total: %d/%d participants\n", summary.Processed, summary.Expected)
	fmt.Fprintf(&b, "Anomalies: %d\n", summary.Anomalies)
	fmt.Fprintf(&b, "Elapsed: %s\n", summary.Elapsed)
	return b.String()
}
