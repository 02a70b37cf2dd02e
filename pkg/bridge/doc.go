// Package bridge connects a widget's lifecycle to a stream of state values.
//
// A component is described by two functions. The component function receives
// an [API] and returns the stream of states the widget should show; the
// template turns one state into render output:
//
//	counter := bridge.New(
//	    func(api bridge.API[Props]) stream.Observable[Count] {
//	        return stream.Map(api.Props, func(p Props) Count { return Count{N: p.Start} })
//	    },
//	    func(c Count) string { return strconv.Itoa(c.N) },
//	)
//
// [New] returns a [Factory]; a host rendering engine calls
// [Factory.Instantiate] once per mounted occurrence and drives the resulting
// [Node] through the [Lifecycle] hooks.
//
// # Lifecycle
//
// OnMount creates the props Behavior (seeded with the initial props) and the
// updates Subject, calls the component function exactly once, and subscribes
// to its stream with shallow duplicate suppression. The stream must emit
// while OnMount is running; that first value becomes the initial state
// without a rebuild request. A stream that stays silent is a setup error: in
// [Development] mode OnMount panics with *errors.SetupError, in [Production]
// mode the node carries on with the zero state.
//
// OnConfigUpdate pushes new props into the Behavior. OnStateApplied must be
// called by the host after every committed render, including the first; it
// pushes the current props into the updates Subject. OnUnmount completes
// both subjects and cancels every owned subscription.
//
// # Ownership
//
// Handles passed to [API.Subscribe] while the component function runs are
// owned by the node and canceled on unmount. The registration window closes
// when the component function returns; later registrations are misuse.
//
// # Threading
//
// A node belongs to the host's UI goroutine. Streams that wait on timers or
// I/O must deliver through a [stream.Scheduler] that runs on that goroutine.
package bridge
