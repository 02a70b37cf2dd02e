// Package testing provides a widget testing framework for stream components.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestGreeting(t *testing.T) {
//	    tester := swtest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(Greeting.New("Ada"))
//
//	    if !tester.Find(swtest.ByText("Hello, Ada")).Exists() {
//	        t.Error("expected greeting text")
//	    }
//	}
//
// # Time and Scheduling
//
// FakeClock implements stream.Clock. Pass tester.Clock() and
// tester.Scheduler() to stream.Interval so ticks fire when the clock is
// advanced and are delivered on the next Pump:
//
//	tester.Clock().Advance(time.Second)
//	tester.Pump()
//
// # Snapshot Testing
//
// Capture and compare element tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/greeting.snapshot.json")
//
// Update snapshots with:
//
//	STREAMWIDGET_UPDATE_SNAPSHOTS=1 go test ./...
//
// RenderPNG rasterizes the tree's text for visual inspection.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import swtest "github.com/go-drift/streamwidget/pkg/testing"
package testing
