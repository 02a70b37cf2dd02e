package stream

import (
	"slices"
	"sync"
)

type subjectEntry[T any] struct {
	observer Observer[T]
	sub      *subscription
}

// Subject multicasts values to every current observer. It does not replay:
// an observer only sees values pushed after it subscribed.
//
// Once a Subject has completed or failed, later subscribers receive the
// terminal notification immediately.
type Subject[T any] struct {
	mu        sync.Mutex
	entries   []*subjectEntry[T]
	completed bool
	err       error
}

// NewSubject creates an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers o. The returned subscription removes it again.
func (s *Subject[T]) Subscribe(o Observer[T]) Subscription {
	s.mu.Lock()
	if s.completed || s.err != nil {
		err := s.err
		s.mu.Unlock()
		if err != nil {
			if o.Error != nil {
				o.Error(err)
			} else {
				reportUnhandled(err)
			}
		} else if o.Complete != nil {
			o.Complete()
		}
		return &subscription{closed: true}
	}
	entry := &subjectEntry[T]{observer: o, sub: &subscription{}}
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	entry.sub.add(func() { s.remove(entry) })
	return entry.sub
}

func (s *Subject[T]) remove(entry *subjectEntry[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.entries, entry); i >= 0 {
		s.entries = slices.Delete(s.entries, i, i+1)
	}
}

// Next pushes v to every current observer. It is a no-op once the
// Subject has terminated.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	if s.completed || s.err != nil {
		s.mu.Unlock()
		return
	}
	entries := slices.Clone(s.entries)
	s.mu.Unlock()

	for _, e := range entries {
		if e.sub.Closed() || e.observer.Next == nil {
			continue
		}
		e.observer.Next(v)
	}
}

// Error fails the Subject and releases every observer.
func (s *Subject[T]) Error(err error) {
	entries, ok := s.terminate(err)
	if !ok {
		return
	}
	for _, e := range entries {
		if e.sub.Closed() {
			continue
		}
		if e.observer.Error != nil {
			e.observer.Error(err)
		} else {
			reportUnhandled(err)
		}
		e.sub.Unsubscribe()
	}
}

// Complete finishes the Subject and releases every observer.
func (s *Subject[T]) Complete() {
	entries, ok := s.terminate(nil)
	if !ok {
		return
	}
	for _, e := range entries {
		if e.sub.Closed() {
			continue
		}
		if e.observer.Complete != nil {
			e.observer.Complete()
		}
		e.sub.Unsubscribe()
	}
}

func (s *Subject[T]) terminate(err error) ([]*subjectEntry[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed || s.err != nil {
		return nil, false
	}
	if err != nil {
		s.err = err
	} else {
		s.completed = true
	}
	entries := s.entries
	s.entries = nil
	return entries, true
}

// Stopped reports whether the Subject has completed or failed.
func (s *Subject[T]) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed || s.err != nil
}

// ObserverCount returns the number of registered observers.
func (s *Subject[T]) ObserverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Observable returns a read-only view of the Subject.
func (s *Subject[T]) Observable() Observable[T] {
	return AsObservable[T](s)
}

// Behavior is a Subject that always holds a latest value. Each new observer
// receives that value first, then every later one in order.
type Behavior[T any] struct {
	subject Subject[T]
	mu      sync.Mutex
	value   T
}

// NewBehavior creates a Behavior seeded with initial.
func NewBehavior[T any](initial T) *Behavior[T] {
	return &Behavior[T]{value: initial}
}

// Subscribe registers o and immediately replays the latest value to it.
// A terminated Behavior replays nothing and delivers its terminal
// notification instead.
func (b *Behavior[T]) Subscribe(o Observer[T]) Subscription {
	sub := b.subject.Subscribe(o)
	if sub.Closed() || o.Next == nil {
		return sub
	}
	o.Next(b.Value())
	return sub
}

// Next replaces the latest value and pushes it to every observer.
func (b *Behavior[T]) Next(v T) {
	if b.subject.Stopped() {
		return
	}
	b.mu.Lock()
	b.value = v
	b.mu.Unlock()
	b.subject.Next(v)
}

// Value returns the latest value.
func (b *Behavior[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Error fails the Behavior and releases every observer.
func (b *Behavior[T]) Error(err error) {
	b.subject.Error(err)
}

// Complete finishes the Behavior and releases every observer.
func (b *Behavior[T]) Complete() {
	b.subject.Complete()
}

// Stopped reports whether the Behavior has completed or failed.
func (b *Behavior[T]) Stopped() bool {
	return b.subject.Stopped()
}

// ObserverCount returns the number of registered observers.
func (b *Behavior[T]) ObserverCount() int {
	return b.subject.ObserverCount()
}

// Observable returns a read-only view of the Behavior.
func (b *Behavior[T]) Observable() Observable[T] {
	return AsObservable[T](b)
}
