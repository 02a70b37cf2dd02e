// Package stream provides synchronous, push-based, cancelable sequences.
//
// An [Observable] delivers values to an [Observer] through Next until it
// either fails (Error) or finishes (Complete). Subscribing returns a
// [Subscription]; canceling it stops delivery and releases whatever the
// producer acquired.
//
// Everything runs on the caller's goroutine. Values a producer emits while
// Subscribe is running reach the observer before Subscribe returns, which is
// what lets a component read its first state during mount:
//
//	counter := stream.NewBehavior(0)
//	sub := counter.Subscribe(stream.Observer[int]{
//	    Next: func(v int) { fmt.Println(v) }, // prints 0 immediately
//	})
//	counter.Next(1) // prints 1
//	sub.Unsubscribe()
//
// # Subjects
//
// [Subject] multicasts to every current observer and replays nothing.
// [Behavior] always holds a latest value and replays it to each new observer
// before any later value.
//
// # Time
//
// Producers that wait on timers or I/O must hand their emissions back to the
// UI goroutine. [Interval] takes a [Clock] for the timer and a [Scheduler]
// for the hand-off; hosts expose a scheduler that queues onto their loop.
package stream
