// Package report delivers session notifications to console and test-facing
// sinks, decoupled from the goroutines that produce them.
package report

import (
	"context"
	"log"
	"sync"

	"examhall/pkg/interfaces"
	"examhall/pkg/types"
)

// defaultEventBuffer absorbs the burst when a full population enters or
// leaves at once.
const defaultEventBuffer = 1024

// Dispatcher is a SessionReporter that queues notifications on a channel and
// delivers them to a sink from a single goroutine, so participant units never
// block on slow output. Delivery order matches emission order while the
// dispatcher runs. A dispatcher can be started and stopped repeatedly; each
// Stop flushes everything accepted while running.
type Dispatcher struct {
	events chan Event
	sink   interfaces.SessionReporter

	// Lifecycle channels are replaced on every Start.
	shutdown chan struct{}
	done     chan struct{}
	running  bool
	emitters sync.WaitGroup
	mu       sync.RWMutex
}

// NewDispatcher creates a dispatcher delivering to sink. A buffer of zero or
// less selects the default size.
func NewDispatcher(sink interfaces.SessionReporter, buffer int) (*Dispatcher, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &Dispatcher{
		events: make(chan Event, buffer),
		sink:   sink,
	}, nil
}

// Start begins delivering queued events. Cancelling ctx stops the dispatcher
// in place: everything accepted up to that point is still delivered, later
// notifications are discarded.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return ErrDispatcherAlreadyRunning
	}
	prev := d.done
	d.mu.Unlock()

	// A loop stopped by context cancellation may still be flushing.
	if prev != nil {
		<-prev
	}

	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return ErrDispatcherAlreadyRunning
	}
	d.running = true
	d.shutdown = make(chan struct{})
	d.done = make(chan struct{})
	shutdown, done := d.shutdown, d.done
	d.mu.Unlock()

	go d.run(ctx, shutdown, done)
	return nil
}

// Stop shuts the dispatcher down, flushing every event accepted before the
// call. It blocks until the delivery goroutine has exited; notifications
// emitted while stopped are discarded.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		done := d.done
		d.mu.Unlock()
		if done != nil {
			<-done
		}
		return ErrDispatcherNotRunning
	}
	d.running = false
	shutdown, done := d.shutdown, d.done
	select {
	case <-shutdown:
	default:
		close(shutdown)
	}
	d.mu.Unlock()

	<-done
	return nil
}

// run is the single delivery loop.
func (d *Dispatcher) run(ctx context.Context, shutdown, done chan struct{}) {
	defer close(done)
	defer log.Println("Report dispatcher stopped")

	for {
		select {
		case ev := <-d.events:
			d.deliver(ev)
		case <-shutdown:
			d.settle()
			return
		case <-ctx.Done():
			d.markStopped(shutdown)
			d.settle()
			return
		}
	}
}

// markStopped rejects further notifications and releases any emitter blocked
// on a full queue. Stop performs the same transition under its own lock; the
// select keeps the close single.
func (d *Dispatcher) markStopped(shutdown chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = false
	select {
	case <-shutdown:
	default:
		close(shutdown)
	}
}

// settle waits out in-flight emitters, then flushes the queue. Emitters
// arriving after shutdown closed deliver inline, so the queue stays empty
// once the drain finishes.
func (d *Dispatcher) settle() {
	d.emitters.Wait()
	d.drain()
}

// drain flushes whatever is still queued so a stopping dispatcher never
// swallows notifications it already accepted.
func (d *Dispatcher) drain() {
	for {
		select {
		case ev := <-d.events:
			d.deliver(ev)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ev Event) {
	switch ev.Kind {
	case EventSessionStarted:
		d.sink.SessionStarted(ev.RunID, ev.Population, ev.RoomCount)
	case EventSessionEnded:
		d.sink.SessionEnded(ev.RunID)
	case EventParticipantEntered:
		d.sink.ParticipantEntered(ev.Participant, ev.Room, ev.Occupancy)
	case EventParticipantLeft:
		d.sink.ParticipantLeft(ev.Participant, ev.Room)
	case EventAnomalyDetected:
		d.sink.AnomalyDetected(ev.Room, ev.Occupancy, ev.Capacity)
	case EventSessionComplete:
		d.sink.SessionComplete(ev.Summary)
	default:
		log.Printf("Dropping event of unknown kind %d", ev.Kind)
	}
}

// emit queues one event. If the dispatcher is mid-shutdown the event is
// delivered inline rather than dropped.
func (d *Dispatcher) emit(ev Event) {
	d.mu.RLock()
	if !d.running {
		d.mu.RUnlock()
		return
	}
	// Registering under the read lock orders every Add before the Wait
	// that follows the stop fence.
	d.emitters.Add(1)
	shutdown := d.shutdown
	d.mu.RUnlock()
	defer d.emitters.Done()

	select {
	case d.events <- ev:
	case <-shutdown:
		d.deliver(ev)
	}
}

// SessionStarted queues a session-started notification.
func (d *Dispatcher) SessionStarted(runID string, population, roomCount int) {
	d.emit(Event{Kind: EventSessionStarted, RunID: runID, Population: population, RoomCount: roomCount})
}

// SessionEnded queues a session-ended notification.
func (d *Dispatcher) SessionEnded(runID string) {
	d.emit(Event{Kind: EventSessionEnded, RunID: runID})
}

// ParticipantEntered queues a room-entry notification.
func (d *Dispatcher) ParticipantEntered(id types.ParticipantID, room types.RoomID, occupancy int) {
	d.emit(Event{Kind: EventParticipantEntered, Participant: id, Room: room, Occupancy: occupancy})
}

// ParticipantLeft queues a departure notification.
func (d *Dispatcher) ParticipantLeft(id types.ParticipantID, room types.RoomID) {
	d.emit(Event{Kind: EventParticipantLeft, Participant: id, Room: room})
}

// AnomalyDetected queues an over-capacity notification.
func (d *Dispatcher) AnomalyDetected(room types.RoomID, occupancy, capacity int) {
	d.emit(Event{Kind: EventAnomalyDetected, Room: room, Occupancy: occupancy, Capacity: capacity})
}

// SessionComplete queues the final summary notification.
func (d *Dispatcher) SessionComplete(summary *types.Summary) {
	d.emit(Event{Kind: EventSessionComplete, Summary: summary})
}
