// Package session drives one complete exam-session run: it obtains an
// assignment, spawns one goroutine per participant, releases them through
// the start gate together, raises the end signal when the session duration
// elapses, and aggregates the final occupancy once every unit has finished.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"examhall/internal/gate"
	"examhall/internal/occupancy"
	"examhall/pkg/interfaces"
	"examhall/pkg/types"
)

// drainGracePeriod bounds how long teardown waits for spawned units after
// the end signal was raised. Units cannot block past the signal, so hitting
// this bound means a unit was leaked.
const drainGracePeriod = 5 * time.Second

// Coordinator owns the synchronization primitives of a single session run.
// A coordinator is single-use: construct one per run.
type Coordinator struct {
	provider interfaces.AssignmentProvider
	reporter interfaces.SessionReporter

	population int
	capacity   int
	duration   time.Duration

	runID string
	state stateMachine

	start   *gate.StartGate
	end     *gate.EndSignal
	tracker *occupancy.Tracker

	wg sync.WaitGroup

	mu  sync.Mutex
	ran bool

	clock func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewCoordinator creates a coordinator for one session run. The reporter is
// optional; everything else is required.
func NewCoordinator(population, capacity int, duration time.Duration, provider interfaces.AssignmentProvider, reporter interfaces.SessionReporter) (*Coordinator, error) {
	if population <= 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidPopulation, population)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidCapacity, capacity)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, duration)
	}
	if provider == nil {
		return nil, ErrNilProvider
	}

	return &Coordinator{
		provider:   provider,
		reporter:   reporter,
		population: population,
		capacity:   capacity,
		duration:   duration,
		runID:      uuid.New().String(),
		clock:      time.Now,
		after:      time.After,
	}, nil
}

// RunID returns the unique identifier assigned to this run.
func (c *Coordinator) RunID() string {
	return c.runID
}

// State returns the current lifecycle state.
func (c *Coordinator) State() types.SessionState {
	return c.state.state()
}

// Run executes the full session and returns the final summary. It blocks
// until every participant unit has terminated or the context is cancelled;
// on cancellation the end signal is still raised so no unit can deadlock.
func (c *Coordinator) Run(ctx context.Context) (*types.Summary, error) {
	c.mu.Lock()
	if c.ran {
		c.mu.Unlock()
		return nil, ErrAlreadyRun
	}
	c.ran = true
	c.mu.Unlock()

	// Obtain the complete assignment before anything is spawned.
	mapping, err := c.provider.ProvideAssignments(ctx, c.population, c.capacity)
	if err != nil {
		return nil, fmt.Errorf("assignment provider failed: %w", err)
	}
	if err := mapping.Validate(c.population); err != nil {
		return nil, fmt.Errorf("invalid assignment mapping: %w", err)
	}
	// Own the assignment from here on; provider-side mutation cannot reach
	// the running session.
	mapping = mapping.Clone()

	// Initialize one room per distinct room id in the mapping.
	rooms := mapping.Rooms()
	tracker, err := occupancy.NewTracker(c.capacity, c.reporter)
	if err != nil {
		return nil, err
	}
	if err := tracker.RegisterRooms(rooms); err != nil {
		return nil, err
	}

	startGate, err := gate.NewStartGate(c.population)
	if err != nil {
		return nil, err
	}
	c.tracker = tracker
	c.start = startGate
	c.end = gate.NewEndSignal()

	log.Printf("Session %s: distributing %d participants across %d rooms of capacity %d",
		c.runID, c.population, len(rooms), c.capacity)

	// Spawn one unit per mapping entry.
	for _, p := range mapping.Participants() {
		c.wg.Add(1)
		go c.runParticipant(ctx, p)
	}
	if err := c.state.advance(types.StateAwaitingStart); err != nil {
		c.teardown()
		return nil, err
	}

	// Rendezvous: block until every unit is parked at the gate. Readiness
	// is tracked, never assumed from elapsed time.
	select {
	case <-startGate.Ready():
	case <-ctx.Done():
		c.teardown()
		return nil, ctx.Err()
	}
	log.Printf("Session %s: all %d participants ready", c.runID, c.population)

	// Announce the start, then release one permit per participant.
	if c.reporter != nil {
		c.reporter.SessionStarted(c.runID, c.population, len(rooms))
	}
	startedAt := c.clock()
	for i := 0; i < c.population; i++ {
		if err := startGate.Release(); err != nil {
			c.teardown()
			return nil, fmt.Errorf("start gate release failed: %w", err)
		}
	}
	if err := c.state.advance(types.StateInProgress); err != nil {
		c.teardown()
		return nil, err
	}

	// The session runs for its configured duration unless cancelled first.
	cancelled := false
	select {
	case <-c.after(c.duration):
	case <-ctx.Done():
		cancelled = true
	}

	// Announce the end before raising the signal so no departure can be
	// observed ahead of the end notification.
	if c.reporter != nil {
		c.reporter.SessionEnded(c.runID)
	}
	endedAt := c.clock()
	c.end.Signal()
	if err := c.state.advance(types.StateEnding); err != nil {
		c.teardown()
		return nil, err
	}

	if cancelled {
		c.teardown()
		return nil, ctx.Err()
	}
	if err := c.join(ctx); err != nil {
		return nil, fmt.Errorf("wait for participants: %w", err)
	}
	log.Printf("Session %s: all participants finished", c.runID)

	if err := c.state.advance(types.StateComplete); err != nil {
		return nil, err
	}

	// Every unit has terminated, so the tracker counts are final.
	summary := &types.Summary{
		RunID:     c.runID,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Elapsed:   endedAt.Sub(startedAt),
		Rooms:     tracker.Report(),
		Processed: tracker.TotalOccupancy(),
		Expected:  c.population,
		Anomalies: tracker.Anomalies(),
	}
	if c.reporter != nil {
		c.reporter.SessionComplete(summary)
	}
	return summary, nil
}

// join blocks until every spawned unit has terminated or the context is
// done.
func (c *Coordinator) join(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// teardown raises the end signal and drains spawned units within a bounded
// grace period, so no abort path can leak a participant goroutine.
func (c *Coordinator) teardown() {
	c.end.Signal()

	graceCtx, cancel := context.WithTimeout(context.Background(), drainGracePeriod)
	defer cancel()
	if err := c.join(graceCtx); err != nil {
		log.Printf("Session %s: participants still running after teardown: %v", c.runID, err)
	}
}
