package testing

import (
	"testing"
	"time"

	"github.com/go-drift/streamwidget/pkg/core"
	"github.com/go-drift/streamwidget/pkg/testing/internal/testbed"
	"github.com/go-drift/streamwidget/pkg/widgets"
)

func pumpCounter(t *testing.T, step int) *WidgetTester {
	t.Helper()
	tester := NewWidgetTesterWithT(t)
	counter := testbed.NewCounter(tester.Clock(), tester.Scheduler(), time.Second)
	if err := tester.PumpWidget(counter.New(testbed.CounterProps{Step: step})); err != nil {
		t.Fatal(err)
	}
	return tester
}

func TestByType(t *testing.T) {
	tester := pumpCounter(t, 3)

	result := tester.Find(ByType[widgets.Text]())
	if result.Count() != 2 {
		t.Fatalf("expected 2 Text widgets, got %d", result.Count())
	}
	text := result.Widget().(widgets.Text)
	if text.Content != "step 3" {
		t.Errorf("expected text 'step 3', got %q", text.Content)
	}
}

func TestByText(t *testing.T) {
	tester := pumpCounter(t, 42)

	if !tester.Find(ByText("step 42")).Exists() {
		t.Error("expected to find text 'step 42'")
	}
	if tester.Find(ByText("step 99")).Exists() {
		t.Error("should not find text 'step 99'")
	}
}

func TestByTextContaining(t *testing.T) {
	tester := pumpCounter(t, 123)

	if !tester.Find(ByTextContaining("12")).Exists() {
		t.Error("expected to find text containing '12'")
	}
	if tester.Find(ByTextContaining("99")).Exists() {
		t.Error("should not find text containing '99'")
	}
}

func TestByComponent(t *testing.T) {
	tester := pumpCounter(t, 1)

	if tester.Find(ByComponent("Counter")).Count() != 1 {
		t.Error("expected to find the Counter component")
	}
	if tester.Find(ByComponent("Other")).Exists() {
		t.Error("should not find an unnamed component")
	}
}

func TestByKey(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	counter := testbed.NewCounter(tester.Clock(), tester.Scheduler(), time.Second)
	tester.PumpWidget(widgets.Column{Items: []core.Widget{
		counter.Keyed("left", testbed.CounterProps{Step: 1}),
		counter.Keyed("right", testbed.CounterProps{Step: 2}),
	}})

	right := tester.Find(ByKey("right"))
	if right.Count() != 1 {
		t.Fatalf("expected 1 match, got %d", right.Count())
	}
	step := tester.Find(Descendant(ByKey("right"), ByTextContaining("step")))
	if step.Widget().(widgets.Text).Content != "step 2" {
		t.Errorf("expected 'step 2', got %q", step.Widget().(widgets.Text).Content)
	}
}

func TestByPredicate(t *testing.T) {
	tester := pumpCounter(t, 1)

	deep := tester.Find(ByPredicate(func(e core.Element) bool {
		return e.Depth() >= 2
	}))
	if deep.Count() != 2 {
		t.Errorf("expected the two Text elements at depth 2, got %d", deep.Count())
	}
}

func TestAncestor(t *testing.T) {
	tester := pumpCounter(t, 1)

	result := tester.Find(Ancestor(ByText("step 1"), ByType[widgets.Column]()))
	if result.Count() != 1 {
		t.Errorf("expected one Column ancestor, got %d", result.Count())
	}
}

func TestFinderResult_FirstPanics(t *testing.T) {
	tester := pumpCounter(t, 1)

	defer func() {
		if recover() == nil {
			t.Error("expected First to panic with no matches")
		}
	}()
	tester.Find(ByText("missing")).First()
}

func TestFinderResult_At(t *testing.T) {
	tester := pumpCounter(t, 1)
	result := tester.Find(ByType[widgets.Text]())

	if result.At(1).Widget().(widgets.Text).Content != "total 0" {
		t.Errorf("unexpected second text: %v", result.At(1).Widget())
	}
	if tester.Find(ByText("missing")).FirstOrNil() != nil {
		t.Error("expected nil for no matches")
	}
}
