package core

import (
	"testing"

	"github.com/go-drift/streamwidget/pkg/errors"
)

// testStatelessWidget is a simple stateless widget for testing.
type testStatelessWidget struct {
	StatelessBase
	buildFn func(BuildContext) Widget
}

func (w testStatelessWidget) Build(ctx BuildContext) Widget {
	if w.buildFn != nil {
		return w.buildFn(ctx)
	}
	return nil
}

// testStatefulWidget is a simple stateful widget for testing.
type testStatefulWidget struct {
	StatefulBase
	createStateFn func() State
}

func (w testStatefulWidget) CreateState() State {
	if w.createStateFn != nil {
		return w.createStateFn()
	}
	return &testState{}
}

type testState struct {
	StateBase
	buildFn  func(BuildContext) Widget
	updates  int
	builds   int
	disposed bool
}

func (s *testState) Build(ctx BuildContext) Widget {
	if s.buildFn != nil {
		return s.buildFn(ctx)
	}
	return nil
}

func (s *testState) DidUpdateWidget(oldWidget StatefulWidget) {
	s.updates++
}

func (s *testState) DidBuild() {
	s.builds++
}

func (s *testState) Dispose() {
	s.disposed = true
	s.StateBase.Dispose()
}

// testLeaf is a container with no children.
type testLeaf struct {
	ContainerBase
	label string
}

type testColumn struct {
	ContainerBase
	children []Widget
}

func (c testColumn) ChildWidgets() []Widget {
	return c.children
}

type keyedLeaf struct {
	ContainerBase
	key any
}

func (k keyedLeaf) Key() any {
	return k.key
}

// testErrorHandler captures build errors for testing.
type testErrorHandler struct {
	errors.LogHandler
	buildErrors []*errors.BuildError
}

func (h *testErrorHandler) HandleBuildError(err *errors.BuildError) {
	h.buildErrors = append(h.buildErrors, err)
}

func TestStatelessElement_BuildPanic_ReportsError(t *testing.T) {
	handler := &testErrorHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	widget := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			panic("test panic in stateless build")
		},
	}

	element := MountRoot(widget, NewBuildOwner())

	if len(handler.buildErrors) != 1 {
		t.Fatalf("expected 1 build error, got %d", len(handler.buildErrors))
	}
	if handler.buildErrors[0].Recovered != "test panic in stateless build" {
		t.Errorf("unexpected recovered value: %v", handler.buildErrors[0].Recovered)
	}
	stateless := element.(*StatelessElement)
	if _, ok := stateless.child.Widget().(errorPlaceholder); !ok {
		t.Errorf("expected errorPlaceholder child, got %T", stateless.child.Widget())
	}
}

func TestErrorWidgetBuilder_ReplacesPlaceholder(t *testing.T) {
	errors.SetHandler(&testErrorHandler{})
	defer errors.SetHandler(nil)
	SetErrorWidgetBuilder(func(err *errors.BuildError) Widget {
		return testLeaf{label: "failed"}
	})
	defer SetErrorWidgetBuilder(nil)

	widget := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			panic("boom")
		},
	}

	element := MountRoot(widget, NewBuildOwner()).(*StatelessElement)
	leaf, ok := element.child.Widget().(testLeaf)
	if !ok || leaf.label != "failed" {
		t.Errorf("expected error widget child, got %#v", element.child.Widget())
	}
}

func TestStatefulElement_Lifecycle(t *testing.T) {
	state := &testState{}
	widget := testStatefulWidget{createStateFn: func() State { return state }}
	owner := NewBuildOwner()

	element := MountRoot(widget, owner).(*StatefulElement)
	if state.Element() != element {
		t.Fatal("state should be bound to its element")
	}
	if state.builds != 1 {
		t.Errorf("expected DidBuild after mount, got %d", state.builds)
	}

	state.SetState(nil)
	if !owner.NeedsWork() {
		t.Fatal("SetState should schedule a rebuild")
	}
	owner.FlushBuild()
	if state.builds != 2 {
		t.Errorf("expected 2 builds, got %d", state.builds)
	}

	element.Update(testStatefulWidget{createStateFn: widget.createStateFn})
	owner.FlushBuild()
	if state.updates != 1 {
		t.Errorf("expected 1 DidUpdateWidget, got %d", state.updates)
	}
	if state.builds != 3 {
		t.Errorf("expected 3 builds, got %d", state.builds)
	}

	element.Unmount()
	if !state.disposed || !state.IsDisposed() {
		t.Error("state should be disposed on unmount")
	}
	state.SetState(nil)
	if owner.NeedsWork() {
		t.Error("SetState after dispose should not schedule work")
	}
}

func TestBuildOwner_FlushesParentsFirst(t *testing.T) {
	var order []string
	child := &testState{}
	parent := &testState{}
	child.buildFn = func(ctx BuildContext) Widget {
		order = append(order, "child")
		return nil
	}
	parent.buildFn = func(ctx BuildContext) Widget {
		order = append(order, "parent")
		return testStatefulWidget{createStateFn: func() State { return child }}
	}
	owner := NewBuildOwner()
	MountRoot(testStatefulWidget{createStateFn: func() State { return parent }}, owner)
	order = nil

	child.SetState(nil)
	parent.SetState(nil)
	owner.FlushBuild()

	if len(order) != 2 || order[0] != "parent" || order[1] != "child" {
		t.Errorf("expected [parent child], got %v", order)
	}
}

func TestBuildOwner_OnNeedsFrame(t *testing.T) {
	state := &testState{}
	owner := NewBuildOwner()
	frames := 0
	owner.OnNeedsFrame = func() { frames++ }
	MountRoot(testStatefulWidget{createStateFn: func() State { return state }}, owner)

	state.SetState(nil)
	state.SetState(nil)
	if frames != 1 {
		t.Errorf("expected one frame request for repeated SetState, got %d", frames)
	}
}

func TestContainerElement_ReconcilesByPosition(t *testing.T) {
	owner := NewBuildOwner()
	root := MountRoot(testColumn{children: []Widget{
		testLeaf{label: "a"},
		testLeaf{label: "b"},
		keyedLeaf{key: 1},
	}}, owner).(*ContainerElement)

	if len(root.children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(root.children))
	}
	first := root.children[0]
	keyed := root.children[2]

	root.Update(testColumn{children: []Widget{
		testLeaf{label: "c"},
		keyedLeaf{key: 2},
	}})
	owner.FlushBuild()

	if len(root.children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.children))
	}
	if root.children[0] != first {
		t.Error("same-typed child should be updated in place")
	}
	if root.children[0].Widget().(testLeaf).label != "c" {
		t.Error("child widget should be replaced")
	}
	if root.children[1].Depth() != 1 {
		t.Errorf("expected depth 1, got %d", root.children[1].Depth())
	}
	if keyed.(*ContainerElement).isMounted() {
		t.Error("removed child should be unmounted")
	}
}

func TestCanUpdateWidget(t *testing.T) {
	cases := []struct {
		name string
		a, b Widget
		want bool
	}{
		{"same type", testLeaf{}, testLeaf{label: "x"}, true},
		{"different type", testLeaf{}, testColumn{}, false},
		{"same key", keyedLeaf{key: "k"}, keyedLeaf{key: "k"}, true},
		{"different key", keyedLeaf{key: "k"}, keyedLeaf{key: "j"}, false},
		{"nil", nil, testLeaf{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := canUpdateWidget(tc.a, tc.b); got != tc.want {
				t.Errorf("canUpdateWidget = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFindAncestor(t *testing.T) {
	var found Element
	owner := NewBuildOwner()
	root := MountRoot(testColumn{children: []Widget{
		testStatelessWidget{buildFn: func(ctx BuildContext) Widget {
			found = ctx.FindAncestor(func(e Element) bool {
				_, ok := e.Widget().(testColumn)
				return ok
			})
			return nil
		}},
	}}, owner)

	if found != root {
		t.Errorf("expected root column as ancestor, got %v", found)
	}
}

func TestDispatch(t *testing.T) {
	if Dispatch(func() {}) {
		t.Error("Dispatch without a registered host should report false")
	}

	var queued []func()
	RegisterDispatch(func(cb func()) { queued = append(queued, cb) })
	defer RegisterDispatch(nil)

	ran := false
	UIScheduler.Schedule(func() { ran = true })
	if len(queued) != 1 {
		t.Fatalf("expected 1 queued callback, got %d", len(queued))
	}
	queued[0]()
	if !ran {
		t.Error("scheduled task should run when dispatched")
	}
}
