package d3d12

import (
	"sync"
	"time"
)

// Event is a manual-reset synchronization event. It stays signaled once Set
// until explicitly Reset, releasing every waiter in between.
//
// A concrete platform binding may map Event onto a native event handle; the
// in-process implementation here is sufficient for fences that signal from
// Go code.
type Event struct {
	mu  sync.Mutex
	set bool
	ch  chan struct{}
}

// NewEvent creates an unsignaled manual-reset event.
func NewEvent() *Event {
	return &Event{ch: make(chan struct{})}
}

// Set signals the event, releasing all current and future waiters.
func (e *Event) Set() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.set {
		e.set = true
		close(e.ch)
	}
}

// Reset returns the event to the unsignaled state.
func (e *Event) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set {
		e.set = false
		e.ch = make(chan struct{})
	}
}

// Wait blocks until the event is signaled.
func (e *Event) Wait() {
	e.mu.Lock()
	ch := e.ch
	set := e.set
	e.mu.Unlock()
	if set {
		return
	}
	<-ch
}

// WaitFor blocks until the event is signaled or the timeout elapses.
// It reports whether the event fired.
func (e *Event) WaitFor(timeout time.Duration) bool {
	e.mu.Lock()
	ch := e.ch
	set := e.set
	e.mu.Unlock()
	if set {
		return true
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-ch:
		return true
	case <-t.C:
		return false
	}
}

// Close releases the event. The event must not be waited on afterwards.
func (e *Event) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.set {
		e.set = true
		close(e.ch)
	}
}
