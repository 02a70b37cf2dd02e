package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/streamwidget/pkg/core"
	"github.com/go-drift/streamwidget/pkg/stream"
	"github.com/go-drift/streamwidget/pkg/widgets"
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: framework did not settle")

// WidgetTester provides isolated widget testing without a real host.
// It drives the same dispatch and build phases as a host loop but uses a
// fake clock and an in-memory dispatch queue.
type WidgetTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	clock      *FakeClock
	dispatches []func()
}

// NewWidgetTester creates a tester with default test environment.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	t := &WidgetTester{
		buildOwner: core.NewBuildOwner(),
		clock:      NewFakeClock(),
	}
	// Register this tester's dispatch function with the core package
	// so that core.Dispatch and core.UIScheduler work during tests
	core.RegisterDispatch(t.Dispatch)
	return t
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree and unregisters the dispatch function. Must be
// called if not using NewWidgetTesterWithT.
func (t *WidgetTester) Cleanup() {
	t.Unmount()
	core.RegisterDispatch(nil)
}

// Clock returns the fake clock for advancing time in tests.
func (t *WidgetTester) Clock() *FakeClock {
	return t.clock
}

// Scheduler returns a scheduler that queues tasks for the next Pump.
func (t *WidgetTester) Scheduler() stream.Scheduler {
	return stream.SchedulerFunc(t.Dispatch)
}

// PumpWidget mounts (or remounts) a widget and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	t.Unmount()
	t.root = core.MountRoot(widget, t.buildOwner)
	return t.Pump()
}

// UpdateWidget replaces the root widget configuration, keeping the root
// element when the new widget can update it, and runs one frame.
func (t *WidgetTester) UpdateWidget(widget core.Widget) error {
	if t.root == nil {
		return t.PumpWidget(widget)
	}
	t.root.Update(widget)
	return t.Pump()
}

// Pump runs a single frame cycle: dispatches, then build.
func (t *WidgetTester) Pump() error {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	t.buildOwner.FlushBuild()
	return nil
}

// PumpAndSettle runs frames until the framework is idle or the timeout
// is reached. Each frame advances the fake clock by frameDuration (16ms).
// Returns ErrSettleTimeout if the framework does not settle within timeout.
func (t *WidgetTester) PumpAndSettle(timeout time.Duration) error {
	const frameDuration = 16 * time.Millisecond
	var elapsed time.Duration
	for elapsed < timeout {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.needsWork() {
			return nil
		}
		t.clock.Advance(frameDuration)
		elapsed += frameDuration
	}
	return ErrSettleTimeout
}

// needsWork returns true if the framework has pending work. Periodic
// timers alone do not count.
func (t *WidgetTester) needsWork() bool {
	return t.buildOwner.NeedsWork() || len(t.dispatches) > 0
}

// Dispatch queues a callback for the next frame, mirroring core.Dispatch.
func (t *WidgetTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Unmount tears down the mounted tree, if any.
func (t *WidgetTester) Unmount() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
}

// RootElement returns the root element of the mounted tree.
func (t *WidgetTester) RootElement() core.Element {
	return t.root
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}

// Texts returns the content of every widgets.Text in the tree, in
// depth-first order.
func (t *WidgetTester) Texts() []string {
	if t.root == nil {
		return nil
	}
	var lines []string
	walkTree(t.root, func(e core.Element) bool {
		if text, ok := e.Widget().(widgets.Text); ok {
			lines = append(lines, text.Content)
		}
		return true
	})
	return lines
}
