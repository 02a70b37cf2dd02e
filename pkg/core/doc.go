// Package core provides the widget and element framework interfaces and lifecycle.
//
// Widget is an immutable description of part of the UI. Element is the
// instantiation of a Widget at a particular location in the tree and owns
// its identity across rebuilds. A BuildOwner collects elements marked dirty
// and rebuilds them, parents first, when the host flushes a frame.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type myState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *myState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: fmt.Sprintf("Count: %d", s.count)}
//	}
//
// UseController, UseSubscription and UseStream tie resources and stream
// subscriptions to the state's lifetime.
//
// # Stream Components
//
// Component wires a bridge.Factory into the tree. Each mounted widget gets
// its own bridge.Node: InitState mounts it, DidUpdateWidget forwards new
// props, every committed rebuild calls OnStateApplied, and Dispose unmounts
// it. The element is the node's host, so emissions from the author's
// stream mark the element dirty.
package core
