package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs whenever a signal it read during its
// last run changes. Effects run synchronously on the goroutine that wrote the
// signal (or that closed the enclosing batch). An effect must not write a
// signal it reads.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources   []*signalBase
	sourcesMu sync.Mutex

	// runMu serializes runs triggered from different goroutines.
	runMu sync.Mutex

	disposed atomic.Bool
}

// CreateEffect creates an effect and runs it immediately. If fn returns a
// Cleanup it is called before the next run and on Dispose.
//
//	e := CreateEffect(func() Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}
	e.run()
	return e
}

// MarkDirty re-runs the effect. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	e.run()
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

func (e *Effect) run() {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.disposed.Load() {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.unsubscribeAll()

	WithListener(e, func() {
		e.cleanup = e.fn()
	})
}

func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) unsubscribeAll() {
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()
}

// Dispose runs the last cleanup and unsubscribes from every source.
// Calling Dispose more than once is a no-op.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.unsubscribeAll()
}
