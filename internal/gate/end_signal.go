package gate

import "sync"

// EndSignal is a one-time broadcast condition: a shared flag plus a
// broadcastable wait condition behind a single lock. Each waiting
// participant blocks in Await until the coordinator raises the signal,
// then every waiter observes it and leaves. There is no reverse
// transition.
type EndSignal struct {
	mu       sync.Mutex
	cond     *sync.Cond
	signaled bool
}

// NewEndSignal creates an unsignaled end condition.
func NewEndSignal() *EndSignal {
	e := &EndSignal{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Await blocks until the signal has been raised. The predicate is
// re-checked under the lock after every wake: a broadcast can race with
// other waiters, so returning on wake alone would be incorrect.
func (e *EndSignal) Await() {
	e.mu.Lock()
	for !e.signaled {
		e.cond.Wait()
	}
	e.mu.Unlock()
}

// Signal raises the end condition and wakes every waiter. Calling it
// again is a safe no-op; the return value reports whether this call
// performed the single transition, so exactly one "session ended"
// notification can be tied to it.
func (e *EndSignal) Signal() bool {
	e.mu.Lock()
	first := !e.signaled
	e.signaled = true
	e.cond.Broadcast()
	e.mu.Unlock()
	return first
}

// Signaled reports whether the end condition has been raised.
func (e *EndSignal) Signaled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.signaled
}
