package stream

// Of emits each value in order, then completes.
func Of[T any](values ...T) Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		for _, v := range values {
			if s.Closed() {
				return nil
			}
			s.Next(v)
		}
		s.Complete()
		return nil
	})
}

// Empty completes without emitting.
func Empty[T any]() Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		s.Complete()
		return nil
	})
}

// Never neither emits nor terminates.
func Never[T any]() Observable[T] {
	return New(func(*Subscriber[T]) func() { return nil })
}

// Fail terminates immediately with err.
func Fail[T any](err error) Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		s.Error(err)
		return nil
	})
}

// Map transforms every value with fn.
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	return New(func(s *Subscriber[R]) func() {
		return src.Subscribe(Observer[T]{
			Next:     func(v T) { s.Next(fn(v)) },
			Error:    s.Error,
			Complete: s.Complete,
		}).Unsubscribe
	})
}

// Filter forwards only the values for which keep returns true.
func Filter[T any](src Observable[T], keep func(T) bool) Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				if keep(v) {
					s.Next(v)
				}
			},
			Error:    s.Error,
			Complete: s.Complete,
		}).Unsubscribe
	})
}

// Tap calls fn with every value before forwarding it.
func Tap[T any](src Observable[T], fn func(T)) Observable[T] {
	return Map(src, func(v T) T {
		fn(v)
		return v
	})
}

// DistinctUntilChanged drops every value that equal reports as the same as
// the last forwarded one. The first value is always forwarded.
func DistinctUntilChanged[T any](src Observable[T], equal func(a, b T) bool) Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		var last T
		seen := false
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				if seen && equal(last, v) {
					return
				}
				seen = true
				last = v
				s.Next(v)
			},
			Error:    s.Error,
			Complete: s.Complete,
		}).Unsubscribe
	})
}

// StartWith emits values before anything src emits.
func StartWith[T any](src Observable[T], values ...T) Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		for _, v := range values {
			s.Next(v)
		}
		if s.Closed() {
			return nil
		}
		return src.Subscribe(s.Observer()).Unsubscribe
	})
}

// Take forwards the first n values, then completes.
func Take[T any](src Observable[T], n int) Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		if n <= 0 {
			s.Complete()
			return nil
		}
		seen := 0
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				seen++
				s.Next(v)
				if seen >= n {
					s.Complete()
				}
			},
			Error:    s.Error,
			Complete: s.Complete,
		}).Unsubscribe
	})
}

// Merge interleaves the values of every source. It completes once all
// sources have completed and fails as soon as any of them fails.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return New(func(s *Subscriber[T]) func() {
		active := len(sources)
		if active == 0 {
			s.Complete()
			return nil
		}
		for _, src := range sources {
			if s.Closed() {
				break
			}
			s.Add(src.Subscribe(Observer[T]{
				Next:  s.Next,
				Error: s.Error,
				Complete: func() {
					active--
					if active == 0 {
						s.Complete()
					}
				},
			}).Unsubscribe)
		}
		return nil
	})
}

// CombineLatest emits fn(a, b) whenever either source emits, once both
// have emitted at least once. It completes when both sources have
// completed, or as soon as one completes without ever emitting.
func CombineLatest[A, B, R any](a Observable[A], b Observable[B], fn func(A, B) R) Observable[R] {
	return New(func(s *Subscriber[R]) func() {
		var (
			lastA        A
			lastB        B
			hasA, hasB   bool
			doneA, doneB bool
		)
		emit := func() {
			if hasA && hasB {
				s.Next(fn(lastA, lastB))
			}
		}
		s.Add(a.Subscribe(Observer[A]{
			Next: func(v A) {
				lastA, hasA = v, true
				emit()
			},
			Error: s.Error,
			Complete: func() {
				doneA = true
				if !hasA || doneB {
					s.Complete()
				}
			},
		}).Unsubscribe)
		if s.Closed() {
			return nil
		}
		s.Add(b.Subscribe(Observer[B]{
			Next: func(v B) {
				lastB, hasB = v, true
				emit()
			},
			Error: s.Error,
			Complete: func() {
				doneB = true
				if !hasB || doneA {
					s.Complete()
				}
			},
		}).Unsubscribe)
		return nil
	})
}

// SwitchMap maps every value of src to an inner Observable and mirrors the
// most recent one, canceling the previous inner subscription. It completes
// once src and the current inner sequence have both completed.
func SwitchMap[T, R any](src Observable[T], project func(T) Observable[R]) Observable[R] {
	return New(func(s *Subscriber[R]) func() {
		var (
			inner       Subscription
			generation  int
			innerActive bool
			outerDone   bool
		)
		cancelInner := func() {
			if inner != nil {
				inner.Unsubscribe()
				inner = nil
			}
		}
		s.Add(cancelInner)
		s.Add(src.Subscribe(Observer[T]{
			Next: func(v T) {
				cancelInner()
				generation++
				current := generation
				innerActive = true
				sub := project(v).Subscribe(Observer[R]{
					Next: func(r R) {
						if current == generation {
							s.Next(r)
						}
					},
					Error: s.Error,
					Complete: func() {
						if current != generation {
							return
						}
						innerActive = false
						if outerDone {
							s.Complete()
						}
					},
				})
				if current == generation && innerActive {
					inner = sub
				}
			},
			Error: s.Error,
			Complete: func() {
				outerDone = true
				if !innerActive {
					s.Complete()
				}
			},
		}).Unsubscribe)
		return nil
	})
}
