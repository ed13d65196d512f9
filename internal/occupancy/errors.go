package occupancy

import "errors"

var (
	// ErrUnknownRoom is returned when a participant tries to enter a room
	// that was never registered for the run.
	ErrUnknownRoom = errors.New("unknown room")

	// ErrRoomAlreadyRegistered is returned when the same room id is
	// registered more than once.
	ErrRoomAlreadyRegistered = errors.New("room already registered")
)
