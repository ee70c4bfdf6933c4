package reactive

// Listener is anything that can be notified when a dependency changes.
// Effects and subscriptions implement it.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier used for deduplication during batches.
	ID() uint64
}

// Cleanup is returned by effects and runs before the effect re-runs
// and when it is disposed.
type Cleanup func()

// funcListener adapts a plain callback to the Listener interface.
type funcListener struct {
	id uint64
	fn func()
}

func newFuncListener(fn func()) *funcListener {
	return &funcListener{id: nextID(), fn: fn}
}

func (l *funcListener) MarkDirty() { l.fn() }

func (l *funcListener) ID() uint64 { return l.id }
