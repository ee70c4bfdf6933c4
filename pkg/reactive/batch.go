package reactive

// Batch groups signal writes into a single notification phase. Listeners
// touched by several writes inside fn are notified once, after the outermost
// batch on the current goroutine completes.
//
//	Batch(func() {
//	    loading.Set(false)
//	    data.Set(result)
//	})
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
			releaseTrackingContext()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
// Listeners may write signals themselves; those writes run outside any batch
// and notify immediately.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	unique := make([]Listener, 0, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, listener)
		}
	}

	for _, listener := range unique {
		listener.MarkDirty()
	}
}
