// Package fixtures provides scenario data, fault-injecting assignment
// providers, and shared assertion helpers for the end-to-end scenario
// suites.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"examhall/internal/assignment"
	"examhall/pkg/interfaces"
	"examhall/pkg/types"
)

// HallScenario describes the shape of one simulated session.
type HallScenario struct {
	Name         string
	Description  string
	Population   int
	RoomCapacity int
	Duration     time.Duration
}

// RoomCount returns how many rooms a block assignment uses for this scenario.
func (s *HallScenario) RoomCount() int {
	return (s.Population + s.RoomCapacity - 1) / s.RoomCapacity
}

// ExpectedRooms returns the per-room populations a block assignment produces.
func (s *HallScenario) ExpectedRooms() map[types.RoomID]int {
	rooms := make(map[types.RoomID]int, s.RoomCount())
	for i := 0; i < s.Population; i++ {
		rooms[types.RoomID(i/s.RoomCapacity)]++
	}
	return rooms
}

// StandardHall is the small even split most workflow tests use: nine
// participants across three rooms of three.
func StandardHall() *HallScenario {
	return &HallScenario{
		Name:         "standard",
		Description:  "nine participants, three rooms of three",
		Population:   9,
		RoomCapacity: 3,
		Duration:     30 * time.Millisecond,
	}
}

// UnevenHall leaves a partially filled last room: ten participants in rooms
// of three give three full rooms and a fourth holding a single occupant.
func UnevenHall() *HallScenario {
	return &HallScenario{
		Name:         "uneven",
		Description:  "ten participants, rooms of three, remainder room of one",
		Population:   10,
		RoomCapacity: 3,
		Duration:     30 * time.Millisecond,
	}
}

// SoloHall is the smallest possible session: one participant, one room.
func SoloHall() *HallScenario {
	return &HallScenario{
		Name:         "solo",
		Description:  "a single participant in a single room",
		Population:   1,
		RoomCapacity: 1,
		Duration:     20 * time.Millisecond,
	}
}

// DefaultScaleHall mirrors the shipped defaults (300 participants in rooms
// of 30) with a test-friendly duration.
func DefaultScaleHall() *HallScenario {
	return &HallScenario{
		Name:         "default_scale",
		Description:  "the shipped default of 300 participants in ten rooms",
		Population:   300,
		RoomCapacity: 30,
		Duration:     50 * time.Millisecond,
	}
}

// GenerateHallScenario builds an ad-hoc scenario for table-driven tests.
func GenerateHallScenario(population, roomCapacity int, duration time.Duration) *HallScenario {
	return &HallScenario{
		Name:         fmt.Sprintf("hall_%dx%d", population, roomCapacity),
		Description:  fmt.Sprintf("%d participants in rooms of %d", population, roomCapacity),
		Population:   population,
		RoomCapacity: roomCapacity,
		Duration:     duration,
	}
}

// CrowdedProvider returns block assignments with the last extra participants
// moved into room 0, overfilling it past capacity. The mapping stays
// complete, so it passes validation; the overflow surfaces as anomaly
// notifications at entry time.
func CrowdedProvider(extra int) interfaces.AssignmentProvider {
	return assignment.ProviderFunc(func(ctx context.Context, population, roomCapacity int) (types.Mapping, error) {
		mapping, err := assignment.NewBlockProvider().ProvideAssignments(ctx, population, roomCapacity)
		if err != nil {
			return nil, err
		}
		for i := 0; i < extra && i < population; i++ {
			mapping[types.ParticipantID(population-i)] = 0
		}
		return mapping, nil
	})
}

// FailingProvider always returns the given error.
func FailingProvider(err error) interfaces.AssignmentProvider {
	return assignment.ProviderFunc(func(context.Context, int, int) (types.Mapping, error) {
		return nil, err
	})
}

// TruncatedProvider returns a block assignment with the last participant
// missing, which must be rejected by mapping validation.
func TruncatedProvider() interfaces.AssignmentProvider {
	return assignment.ProviderFunc(func(ctx context.Context, population, roomCapacity int) (types.Mapping, error) {
		mapping, err := assignment.NewBlockProvider().ProvideAssignments(ctx, population, roomCapacity)
		if err != nil {
			return nil, err
		}
		delete(mapping, types.ParticipantID(population))
		return mapping, nil
	})
}
