package resource

// Handler renders one state of an accessor.
type Handler[T, R any] func(*matcher[T, R])

type matcher[T, R any] struct {
	idle    func() R
	loading func() R
	failure func(error) R
	ready   func(T) R
}

// OnIdle handles the state before any operation completed.
func OnIdle[T, R any](fn func() R) Handler[T, R] {
	return func(m *matcher[T, R]) { m.idle = fn }
}

// OnLoading handles an outstanding operation.
func OnLoading[T, R any](fn func() R) Handler[T, R] {
	return func(m *matcher[T, R]) { m.loading = fn }
}

// OnError handles a failed last operation.
func OnError[T, R any](fn func(error) R) Handler[T, R] {
	return func(m *matcher[T, R]) { m.failure = fn }
}

// OnReady handles a present payload.
func OnReady[T, R any](fn func(T) R) Handler[T, R] {
	return func(m *matcher[T, R]) { m.ready = fn }
}

// State is the read side of an Accessor used by Match.
type State[T any] interface {
	Status() Status
	Value() (T, bool)
	Error() error
}

// Match calls the handler for the current state and returns its result.
// Success after Remove has no new payload; OnReady then receives the
// retained data if any. Unhandled states yield the zero value of R.
func Match[T, R any](s State[T], handlers ...Handler[T, R]) R {
	var m matcher[T, R]
	for _, h := range handlers {
		h(&m)
	}

	var zero R
	switch s.Status() {
	case Loading:
		if m.loading != nil {
			return m.loading()
		}
	case Failure:
		if m.failure != nil {
			return m.failure(s.Error())
		}
	case Success:
		if v, ok := s.Value(); ok && m.ready != nil {
			return m.ready(v)
		}
	case Idle:
		if m.idle != nil {
			return m.idle()
		}
	}
	return zero
}
