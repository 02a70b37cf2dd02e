package teahost

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/streamwidget/pkg/errors"
)

// flushMsg asks the model to run queued tasks.
type flushMsg struct{}

// Scheduler queues stream emissions and runs them inside the program's
// Update loop. Schedule never blocks and may be called from any goroutine,
// including Update itself. Tasks run in the order they were scheduled.
type Scheduler struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []func()
	waking  bool
}

// NewScheduler returns a detached scheduler. Tasks scheduled before Attach
// are kept until the program starts.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule implements stream.Scheduler.
func (s *Scheduler) Schedule(task func()) {
	if task == nil {
		return
	}
	s.mu.Lock()
	s.pending = append(s.pending, task)
	send := s.wakeLocked()
	s.mu.Unlock()
	if send != nil {
		go send(flushMsg{})
	}
}

// Attach routes wake-ups to send, typically (*tea.Program).Send.
func (s *Scheduler) Attach(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	wake := s.wakeLocked()
	s.mu.Unlock()
	if wake != nil {
		go wake(flushMsg{})
	}
}

// Detach stops wake-ups. Queued tasks stay queued.
func (s *Scheduler) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = nil
	s.waking = false
}

func (s *Scheduler) wakeLocked() func(tea.Msg) {
	if s.send == nil || s.waking || len(s.pending) == 0 {
		return nil
	}
	s.waking = true
	return s.send
}

// drain runs every queued task, including ones queued while draining.
func (s *Scheduler) drain() int {
	ran := 0
	for {
		s.mu.Lock()
		tasks := s.pending
		s.pending = nil
		if len(tasks) == 0 {
			s.waking = false
			s.mu.Unlock()
			return ran
		}
		s.mu.Unlock()
		for _, task := range tasks {
			runTask(task)
			ran++
		}
	}
}

// runTask reports a panicking task instead of unwinding the program loop.
func runTask(task func()) {
	defer errors.Recover("teahost.schedule")
	task()
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
