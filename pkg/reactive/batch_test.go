package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchDeduplicatesNotifications(t *testing.T) {
	first := NewSignal("")
	last := NewSignal("")
	listener := newTestListener()

	WithListener(listener, func() {
		_ = first.Get()
		_ = last.Get()
	})

	Batch(func() {
		first.Set("John")
		last.Set("Doe")
		assert.Equal(t, 0, listener.getDirtyCount(), "no notification inside the batch")
	})

	assert.Equal(t, 1, listener.getDirtyCount())
}

func TestBatchNested(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()
	WithListener(listener, func() { _ = count.Get() })

	Batch(func() {
		count.Set(1)
		Batch(func() {
			count.Set(2)
		})
		assert.Equal(t, 0, listener.getDirtyCount(), "inner batch must not flush")
		count.Set(3)
	})

	assert.Equal(t, 1, listener.getDirtyCount())
	assert.Equal(t, 3, count.Peek())
}

func TestBatchNoChangesNoNotification(t *testing.T) {
	count := NewSignal(1)
	listener := newTestListener()
	WithListener(listener, func() { _ = count.Get() })

	Batch(func() {
		count.Set(1)
	})

	assert.Equal(t, 0, listener.getDirtyCount())
}

func TestBatchReleasesTrackingContext(t *testing.T) {
	count := NewSignal(0)
	Batch(func() { count.Set(1) })

	_, ok := trackingContexts.Load(getGoroutineID())
	assert.False(t, ok)
}
