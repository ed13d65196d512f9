package gate

import (
	"context"
	"sync"
)

// StartGate is a one-time, N-permit release barrier. It starts with zero
// permits: every participant unit blocks in Await until the coordinator
// has released a permit for it, and no permit can be released until every
// unit has arrived at the gate.
//
// Arrival tracking replaces any timing assumption about spawned units:
// the coordinator learns that all units are waiting from Ready(), never
// from a settle delay.
type StartGate struct {
	population int
	permits    chan struct{}
	ready      chan struct{}

	mu       sync.Mutex
	arrivals int
	released int
}

// NewStartGate creates a gate for the given population with zero permits
// available.
func NewStartGate(population int) (*StartGate, error) {
	if population <= 0 {
		return nil, ErrInvalidPopulation
	}
	return &StartGate{
		population: population,
		permits:    make(chan struct{}, population),
		ready:      make(chan struct{}),
	}, nil
}

// Await registers the caller's arrival and blocks until a permit is
// available, consuming exactly one. The caller performs no shared-state
// work of its own before Await returns. Context cancellation abandons the
// wait without consuming a permit.
func (g *StartGate) Await(ctx context.Context) error {
	g.mu.Lock()
	if g.arrivals >= g.population {
		g.mu.Unlock()
		return ErrGateOverSubscribed
	}
	g.arrivals++
	if g.arrivals == g.population {
		close(g.ready)
	}
	g.mu.Unlock()

	select {
	case <-g.permits:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release makes one permit available. The coordinator calls Release once
// per participant, and only after Ready has fired; releasing early or
// past the population is rejected so permits can never be banked before
// the intended population exists.
func (g *StartGate) Release() error {
	g.mu.Lock()
	if g.arrivals < g.population {
		g.mu.Unlock()
		return ErrGateNotReady
	}
	if g.released >= g.population {
		g.mu.Unlock()
		return ErrGateOverReleased
	}
	g.released++
	g.mu.Unlock()

	// The permit channel holds population slots and released is bounded
	// above by population, so this send never blocks.
	g.permits <- struct{}{}
	return nil
}

// Ready returns a channel that is closed once every participant has
// arrived at the gate.
func (g *StartGate) Ready() <-chan struct{} {
	return g.ready
}

// Arrivals returns how many participants have reached the gate.
func (g *StartGate) Arrivals() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.arrivals
}

// Released returns how many permits have been released.
func (g *StartGate) Released() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.released
}
