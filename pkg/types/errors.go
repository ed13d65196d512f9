package types

import "errors"

// Mapping validation error types shared across the assignment provider
// and the session coordinator.
var (
	ErrInvalidPopulation     = errors.New("population must be a positive integer")
	ErrInvalidCapacity       = errors.New("room capacity must be a positive integer")
	ErrIncompleteMapping     = errors.New("assignment mapping must cover every participant exactly once")
	ErrParticipantOutOfRange = errors.New("participant id outside the session population")
	ErrInvalidRoomID         = errors.New("room id must be non-negative")
)
