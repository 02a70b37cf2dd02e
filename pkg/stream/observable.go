package stream

import (
	"sync"

	"github.com/go-drift/streamwidget/pkg/errors"
)

// Observer receives the notifications of one subscription.
// Nil callbacks are ignored, except a nil Error, which reports the error
// to the global error handler.
type Observer[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

// Subscription is a cancelable handle on a running sequence.
type Subscription interface {
	// Unsubscribe stops delivery and runs teardown. Calling it more than
	// once has no further effect.
	Unsubscribe()
	// Closed reports whether the subscription has been released.
	Closed() bool
}

// Observable is a push-based sequence of values.
type Observable[T any] interface {
	Subscribe(o Observer[T]) Subscription
}

type subscription struct {
	mu        sync.Mutex
	closed    bool
	teardowns []func()
}

// NewSubscription wraps a teardown function in a Subscription. The teardown
// runs once, on the first call to Unsubscribe.
func NewSubscription(teardown func()) Subscription {
	s := &subscription{}
	s.add(teardown)
	return s
}

func (s *subscription) add(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.teardowns = append(s.teardowns, fn)
	s.mu.Unlock()
}

func (s *subscription) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	teardowns := s.teardowns
	s.teardowns = nil
	s.mu.Unlock()

	for i := len(teardowns) - 1; i >= 0; i-- {
		teardowns[i]()
	}
}

func (s *subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Subscriber is the producer side of a subscription created by [New].
// It drops every notification after the sequence has terminated or been
// canceled.
type Subscriber[T any] struct {
	observer Observer[T]
	sub      *subscription
	stopped  bool
}

// Next delivers a value.
func (s *Subscriber[T]) Next(v T) {
	if s.stopped || s.sub.Closed() {
		return
	}
	if s.observer.Next != nil {
		s.observer.Next(v)
	}
}

// Error terminates the sequence with err and releases the subscription.
func (s *Subscriber[T]) Error(err error) {
	if s.stopped || s.sub.Closed() {
		return
	}
	s.stopped = true
	if s.observer.Error != nil {
		s.observer.Error(err)
	} else {
		reportUnhandled(err)
	}
	s.sub.Unsubscribe()
}

// Complete terminates the sequence and releases the subscription.
func (s *Subscriber[T]) Complete() {
	if s.stopped || s.sub.Closed() {
		return
	}
	s.stopped = true
	if s.observer.Complete != nil {
		s.observer.Complete()
	}
	s.sub.Unsubscribe()
}

// Closed reports whether further notifications would be dropped.
func (s *Subscriber[T]) Closed() bool {
	return s.stopped || s.sub.Closed()
}

// Add registers a teardown to run when the subscription is released.
// If it already has been, fn runs immediately.
func (s *Subscriber[T]) Add(fn func()) {
	s.sub.add(fn)
}

// Observer returns an Observer that forwards into s.
func (s *Subscriber[T]) Observer() Observer[T] {
	return Observer[T]{Next: s.Next, Error: s.Error, Complete: s.Complete}
}

// Producer starts a sequence for one subscriber and returns its teardown.
type Producer[T any] func(s *Subscriber[T]) (teardown func())

type producerObservable[T any] struct {
	produce Producer[T]
}

// New creates an Observable that runs produce once per subscription.
func New[T any](produce Producer[T]) Observable[T] {
	return &producerObservable[T]{produce: produce}
}

func (p *producerObservable[T]) Subscribe(o Observer[T]) Subscription {
	sub := &subscription{}
	s := &Subscriber[T]{observer: o, sub: sub}
	sub.add(p.produce(s))
	return sub
}

type readOnly[T any] struct {
	src Observable[T]
}

func (r readOnly[T]) Subscribe(o Observer[T]) Subscription {
	return r.src.Subscribe(o)
}

// AsObservable hides the concrete type of src, so a Subject handed out
// this way cannot be fed by its receiver.
func AsObservable[T any](src Observable[T]) Observable[T] {
	return readOnly[T]{src: src}
}

// Run subscribes to src for its side effects only.
func Run[T any](src Observable[T]) Subscription {
	return src.Subscribe(Observer[T]{})
}

func reportUnhandled(err error) {
	errors.Report(&errors.Error{
		Op:   "stream.subscribe",
		Kind: errors.KindStream,
		Err:  err,
	})
}
