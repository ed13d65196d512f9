package types

import (
	"fmt"
	"sort"
)

// Validate ensures the mapping is total for the given population: every
// participant id in [1..population] appears exactly once and every
// referenced room id is valid. Validation happens once, when the mapping
// is handed to the session coordinator; the mapping is treated as
// immutable afterwards.
//
// Capacity fit is not checked here. A provider that over-assigns a room
// is a runtime anomaly detected by the occupancy tracker, not a mapping
// defect.
func (m Mapping) Validate(population int) error {
	if population <= 0 {
		return ErrInvalidPopulation
	}
	if len(m) != population {
		return fmt.Errorf("%w: mapping covers %d participants, expected %d",
			ErrIncompleteMapping, len(m), population)
	}
	for id, room := range m {
		if id < 1 || int(id) > population {
			return fmt.Errorf("%w: participant %d outside [1..%d]",
				ErrParticipantOutOfRange, id, population)
		}
		if room < 0 {
			return fmt.Errorf("%w: participant %d assigned room %d",
				ErrInvalidRoomID, id, room)
		}
	}
	// Map keys are unique, so len(m) == population together with the range
	// check above guarantees each id appears exactly once.
	return nil
}

// Rooms returns the distinct room ids referenced by the mapping, sorted
// ascending for deterministic iteration.
func (m Mapping) Rooms() []RoomID {
	seen := make(map[RoomID]bool)
	rooms := make([]RoomID, 0)
	for _, room := range m {
		if !seen[room] {
			seen[room] = true
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i] < rooms[j] })
	return rooms
}

// RoomPopulations returns how many participants the mapping assigns to
// each referenced room.
func (m Mapping) RoomPopulations() map[RoomID]int {
	populations := make(map[RoomID]int)
	for _, room := range m {
		populations[room]++
	}
	return populations
}

// Clone returns an independent copy of the mapping. The coordinator clones
// the provider's mapping on receipt so later mutation by the provider
// cannot reach the running session.
func (m Mapping) Clone() Mapping {
	clone := make(Mapping, len(m))
	for id, room := range m {
		clone[id] = room
	}
	return clone
}

// Participants returns the mapping as participant values ordered by id,
// the order in which the coordinator spawns units.
func (m Mapping) Participants() []Participant {
	participants := make([]Participant, 0, len(m))
	for id, room := range m {
		participants = append(participants, Participant{ID: id, Room: room})
	}
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].ID < participants[j].ID
	})
	return participants
}
