package core

import (
	"sync"

	"github.com/go-drift/streamwidget/pkg/stream"
)

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the function used to schedule callbacks on the UI
// goroutine. Hosts call this once during initialization; pass nil to clear.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI goroutine.
// Returns false if no dispatch function is registered or callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// UIScheduler hands stream emissions to the registered dispatch function.
// Tasks scheduled while no host is registered are dropped.
var UIScheduler stream.Scheduler = stream.SchedulerFunc(func(task func()) {
	Dispatch(task)
})
