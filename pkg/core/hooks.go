package core

import "github.com/go-drift/streamwidget/pkg/stream"

// UseController creates a controller and registers it for automatic disposal.
// The controller will be disposed when the state is disposed.
//
// Example:
//
//	func (s *myState) InitState() {
//	    s.ticker = core.UseController(s, func() *Ticker {
//	        return NewTicker(time.Second)
//	    })
//	}
func UseController[C Disposable](s stateBase, create func() C) C {
	base := s.state()
	controller := create()
	base.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// UseSubscription ties an existing subscription to the state's lifetime.
func UseSubscription(s stateBase, sub stream.Subscription) {
	if sub == nil {
		return
	}
	s.state().OnDispose(sub.Unsubscribe)
}

// UseStream subscribes to src and calls onValue inside SetState for every
// emission. Call it once in InitState, not in Build. Emissions arriving
// after disposal are dropped.
//
// Example:
//
//	func (s *clockState) InitState() {
//	    core.UseStream(s, stream.Interval(clock, core.UIScheduler, time.Second), func(n int) {
//	        s.elapsed = n
//	    })
//	}
func UseStream[T any](s stateBase, src stream.Observable[T], onValue func(T)) stream.Subscription {
	base := s.state()
	sub := src.Subscribe(stream.Observer[T]{
		Next: func(value T) {
			base.SetState(func() {
				if onValue != nil {
					onValue(value)
				}
			})
		},
	})
	base.OnDispose(sub.Unsubscribe)
	return sub
}

// Managed holds a value and triggers rebuilds when it changes.
// It is tied to a specific StateBase.
//
// Managed is NOT thread-safe. It must only be accessed from the UI goroutine.
// To update from a background goroutine, use Dispatch:
//
//	go func() {
//	    result := doExpensiveWork()
//	    core.Dispatch(func() {
//	        s.data.Set(result)
//	    })
//	}()
type Managed[T any] struct {
	base  *StateBase
	value T
}

// NewManaged creates a new managed state value.
func NewManaged[T any](s stateBase, initial T) *Managed[T] {
	return &Managed[T]{
		base:  s.state(),
		value: initial,
	}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and triggers a rebuild.
func (m *Managed[T]) Set(value T) {
	m.value = value
	m.base.SetState(nil)
}

// Update applies a transformation to the current value and triggers a rebuild.
func (m *Managed[T]) Update(transform func(T) T) {
	m.value = transform(m.value)
	m.base.SetState(nil)
}
