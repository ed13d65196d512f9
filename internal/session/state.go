package session

import (
	"fmt"
	"sync"

	"examhall/pkg/types"
)

// stateMachine guards the session lifecycle. States only move forward, one
// step at a time; a session that has ended never reopens.
type stateMachine struct {
	mu      sync.RWMutex
	current types.SessionState
}

// advance moves the lifecycle to the next state. Skipping a state or moving
// backward is rejected.
func (s *stateMachine) advance(to types.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if to != s.current+1 {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.current, to)
	}
	s.current = to
	return nil
}

// state returns the current lifecycle state.
func (s *stateMachine) state() types.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
