// Package occupancy tracks per-room headcounts for a session run.
package occupancy

import (
	"fmt"
	"sort"
	"sync"

	"examhall/pkg/interfaces"
	"examhall/pkg/types"
)

// Tracker maintains the occupancy count of every room in a run behind a
// single mutex. Counts only ever grow: a participant that enters a room
// stays counted for the whole run, so the final snapshot doubles as the
// seating record of the session.
type Tracker struct {
	mu        sync.Mutex
	capacity  int
	rooms     map[types.RoomID]int
	anomalies int
	reporter  interfaces.SessionReporter
}

// NewTracker creates a tracker where every room shares the same capacity.
// The reporter receives anomaly notifications and may be nil.
func NewTracker(capacity int, reporter interfaces.SessionReporter) (*Tracker, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidCapacity, capacity)
	}
	return &Tracker{
		capacity: capacity,
		rooms:    make(map[types.RoomID]int),
		reporter: reporter,
	}, nil
}

// RegisterRooms initializes the given rooms with zero occupancy. Every room
// an assignment refers to must be registered before participants enter it.
func (t *Tracker) RegisterRooms(ids []types.RoomID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range ids {
		if _, exists := t.rooms[id]; exists {
			return fmt.Errorf("%w: room %d", ErrRoomAlreadyRegistered, id)
		}
		t.rooms[id] = 0
	}
	return nil
}

// Enter counts one participant into the room and returns the new occupancy.
// Exceeding the room's capacity is not an error: the overflow is tallied as
// an anomaly and reported, and the count keeps growing so the snapshot shows
// exactly how many participants were sent to the room.
func (t *Tracker) Enter(room types.RoomID) (int, error) {
	t.mu.Lock()
	current, exists := t.rooms[room]
	if !exists {
		t.mu.Unlock()
		return 0, fmt.Errorf("%w: room %d", ErrUnknownRoom, room)
	}
	current++
	t.rooms[room] = current
	overflow := current > t.capacity
	if overflow {
		t.anomalies++
	}
	t.mu.Unlock()

	// Notify outside the lock so a slow reporter cannot stall other rooms.
	if overflow && t.reporter != nil {
		t.reporter.AnomalyDetected(room, current, t.capacity)
	}
	return current, nil
}

// Snapshot returns the room's current occupancy without mutating it. While
// participants are still entering, the value is a point-in-time estimate;
// after the session completes it is exact.
func (t *Tracker) Snapshot(room types.RoomID) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	occ, exists := t.rooms[room]
	if !exists {
		return 0, fmt.Errorf("%w: room %d", ErrUnknownRoom, room)
	}
	return occ, nil
}

// Report returns a per-room report sorted by room id. It reflects the
// counts at the moment of the call; once the session has completed it is
// the authoritative record of the run.
func (t *Tracker) Report() []types.RoomReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	reports := make([]types.RoomReport, 0, len(t.rooms))
	for id, occ := range t.rooms {
		reports = append(reports, types.RoomReport{
			Room:      id,
			Capacity:  t.capacity,
			Occupancy: occ,
		})
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Room < reports[j].Room
	})
	return reports
}

// Rooms returns the registered room ids in ascending order.
func (t *Tracker) Rooms() []types.RoomID {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]types.RoomID, 0, len(t.rooms))
	for id := range t.rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Capacity returns the shared per-room capacity.
func (t *Tracker) Capacity() int {
	return t.capacity
}

// RoomCount returns how many rooms are registered.
func (t *Tracker) RoomCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rooms)
}

// Anomalies returns how many entries exceeded their room's capacity.
func (t *Tracker) Anomalies() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.anomalies
}

// TotalOccupancy returns the sum of all room counts.
func (t *Tracker) TotalOccupancy() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := 0
	for _, occ := range t.rooms {
		total += occ
	}
	return total
}
