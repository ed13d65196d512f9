package session

import (
	"context"
	"log"

	"examhall/pkg/types"
)

// runParticipant is one unit body: wait at the start gate, record the room
// entry, sit in the room until the end signal, record the departure.
// Departure never decrements occupancy, so the final counts show exactly
// how many participants each room received.
func (c *Coordinator) runParticipant(ctx context.Context, p types.Participant) {
	defer c.wg.Done()

	if err := c.start.Await(ctx); err != nil {
		// Torn down before this unit was released. It never entered a
		// room, so there is nothing to record.
		return
	}

	occ, err := c.tracker.Enter(p.Room)
	if err != nil {
		log.Printf("Participant %d could not enter room %d: %v", p.ID, p.Room, err)
		return
	}
	if c.reporter != nil {
		c.reporter.ParticipantEntered(p.ID, p.Room, occ)
	}

	c.end.Await()

	if c.reporter != nil {
		c.reporter.ParticipantLeft(p.ID, p.Room)
	}
}
