package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state of one goroutine.
type trackingContext struct {
	// currentListener subscribes to every signal read while it is set.
	// nil means reads do not create subscriptions.
	currentListener Listener

	// batchDepth counts nested Batch calls. While > 0, notifications queue.
	batchDepth int

	// pendingUpdates accumulates listeners to notify when the batch completes.
	pendingUpdates []Listener
}

// trackingContexts stores per-goroutine tracking contexts keyed by goroutine ID.
var trackingContexts sync.Map

// getGoroutineID parses the current goroutine ID from the runtime stack header
// ("goroutine <id> [...").
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := getGoroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// releaseTrackingContext drops the context of the current goroutine once it
// holds no listener and no open batch.
func releaseTrackingContext() {
	gid := getGoroutineID()
	if v, ok := trackingContexts.Load(gid); ok {
		ctx := v.(*trackingContext)
		if ctx.currentListener == nil && ctx.batchDepth == 0 && len(ctx.pendingUpdates) == 0 {
			trackingContexts.Delete(gid)
		}
	}
}

func getCurrentListener() Listener {
	if v, ok := trackingContexts.Load(getGoroutineID()); ok {
		return v.(*trackingContext).currentListener
	}
	return nil
}

// setCurrentListener returns the previous listener so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

func getBatchDepth() int {
	if v, ok := trackingContexts.Load(getGoroutineID()); ok {
		return v.(*trackingContext).batchDepth
	}
	return 0
}

func incrementBatchDepth() {
	getTrackingContext().batchDepth++
}

// decrementBatchDepth reports whether the outermost batch just completed.
func decrementBatchDepth() bool {
	ctx := getTrackingContext()
	ctx.batchDepth--
	return ctx.batchDepth == 0
}

func queuePendingUpdate(l Listener) {
	ctx := getTrackingContext()
	ctx.pendingUpdates = append(ctx.pendingUpdates, l)
}

func drainPendingUpdates() []Listener {
	ctx := getTrackingContext()
	updates := ctx.pendingUpdates
	ctx.pendingUpdates = nil
	return updates
}

// WithListener runs fn with l as the current listener, so every signal read
// inside fn subscribes l.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer func() {
		setCurrentListener(old)
		if old == nil {
			releaseTrackingContext()
		}
	}()
	fn()
}

// Untracked runs fn without tracking signal reads as dependencies.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer func() {
		setCurrentListener(old)
		if old == nil {
			releaseTrackingContext()
		}
	}()
	fn()
}
