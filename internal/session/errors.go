package session

import "errors"

var (
	ErrNilProvider       = errors.New("assignment provider is nil")
	ErrInvalidDuration   = errors.New("session duration must be positive")
	ErrAlreadyRun        = errors.New("coordinator can only run once")
	ErrInvalidTransition = errors.New("invalid session state transition")
)
