package stream

import (
	"sync"
	"time"
)

// Scheduler runs tasks on a particular goroutine, typically a host's UI loop.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(task func())

// Schedule calls f(task).
func (f SchedulerFunc) Schedule(task func()) {
	f(task)
}

// Immediate runs every task on the calling goroutine. It is only safe when
// the caller already is the UI goroutine.
var Immediate Scheduler = SchedulerFunc(func(task func()) { task() })

// Clock starts periodic timers.
type Clock interface {
	// Every calls fn once per period until stop is called. fn may run on
	// any goroutine.
	Every(period time.Duration, fn func()) (stop func())
}

type systemClock struct{}

func (systemClock) Every(period time.Duration, fn func()) func() {
	ticker := time.NewTicker(period)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// SystemClock is backed by time.Ticker.
var SystemClock Clock = systemClock{}

// Interval emits 0, 1, 2, ... once per period. Emissions are handed to
// sched, so observers run wherever sched runs them.
func Interval(clock Clock, sched Scheduler, period time.Duration) Observable[int] {
	return New(func(s *Subscriber[int]) func() {
		n := 0
		return clock.Every(period, func() {
			sched.Schedule(func() {
				if s.Closed() {
					return
				}
				v := n
				n++
				s.Next(v)
			})
		})
	})
}
