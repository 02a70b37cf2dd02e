package testing

import (
	"sort"
	"sync"
	"time"
)

// FakeClock provides controllable time for deterministic stream tests.
// It implements stream.Clock: timers started with Every fire only when
// Advance moves the clock past their deadline. All methods are safe for
// concurrent use.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	nextID int
}

type fakeTimer struct {
	id      int
	period  time.Duration
	next    time.Time
	fn      func()
	stopped bool
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Every registers a periodic timer. Periods below one nanosecond are
// clamped to one.
func (c *FakeClock) Every(period time.Duration, fn func()) func() {
	if period <= 0 {
		period = 1
	}
	c.mu.Lock()
	timer := &fakeTimer{id: c.nextID, period: period, next: c.now.Add(period), fn: fn}
	c.nextID++
	c.timers = append(c.timers, timer)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		timer.stopped = true
		for i, t := range c.timers {
			if t == timer {
				c.timers = append(c.timers[:i], c.timers[i+1:]...)
				break
			}
		}
	}
}

// Advance moves the clock forward by d, firing every due timer in deadline
// order. Callbacks run on the calling goroutine without the lock held.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		timer := c.nextDue(target)
		if timer == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = timer.next
		timer.next = timer.next.Add(timer.period)
		fn := timer.fn
		c.mu.Unlock()
		fn()
	}
}

func (c *FakeClock) nextDue(target time.Time) *fakeTimer {
	due := make([]*fakeTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if !t.stopped && !t.next.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next.Equal(due[j].next) {
			return due[i].id < due[j].id
		}
		return due[i].next.Before(due[j].next)
	})
	return due[0]
}

// Set sets the clock to an exact time without firing timers.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// ActiveTimers returns the number of timers that have not been stopped.
func (c *FakeClock) ActiveTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
