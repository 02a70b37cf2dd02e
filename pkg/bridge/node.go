package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/go-drift/streamwidget/pkg/equality"
	"github.com/go-drift/streamwidget/pkg/errors"
	"github.com/go-drift/streamwidget/pkg/stream"
)

// Host is the rendering engine side of a node.
type Host interface {
	// MarkNeedsBuild asks the engine to render the node again.
	MarkNeedsBuild()
}

type noopHost struct{}

func (noopHost) MarkNeedsBuild() {}

// Lifecycle is the set of hooks a host engine calls on a node.
type Lifecycle[P, S, R any] interface {
	// OnMount sets the node up with its first props.
	OnMount(props P)
	// OnConfigUpdate delivers new props to a mounted node.
	OnConfigUpdate(props P)
	// ShouldApplyState reports whether next differs from the current state.
	ShouldApplyState(next S) bool
	// OnStateApplied is called after every committed render.
	OnStateApplied()
	// OnUnmount releases everything the node owns.
	OnUnmount()
	// Render returns the template output for the current state.
	Render() R
}

var _ Lifecycle[struct{}, struct{}, struct{}] = (*Node[struct{}, struct{}, struct{}])(nil)

// Phase is a node's position in its lifecycle.
type Phase int

const (
	PhaseConstructed Phase = iota
	PhaseMounted
	PhaseUpdating
	PhaseUnmounted
)

func (p Phase) String() string {
	switch p {
	case PhaseConstructed:
		return "constructed"
	case PhaseMounted:
		return "mounted"
	case PhaseUpdating:
		return "updating"
	case PhaseUnmounted:
		return "unmounted"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Node is one mounted occurrence of a component. It is not safe for
// concurrent use; all calls must come from the host's UI goroutine.
type Node[P, S, R any] struct {
	factory *Factory[P, S, R]
	host    Host
	id      string
	logger  *slog.Logger

	phase    Phase
	mounting bool
	props    *stream.Behavior[P]
	updates  *stream.Subject[P]
	subs     []stream.Subscription

	state    S
	hasState bool
}

func newNode[P, S, R any](f *Factory[P, S, R], host Host) *Node[P, S, R] {
	id := uuid.NewString()
	logger := f.opts.logger.With(slog.String("node", id))
	if f.opts.name != "" {
		logger = logger.With(slog.String("component", f.opts.name))
	}
	return &Node[P, S, R]{
		factory: f,
		host:    host,
		id:      id,
		logger:  logger,
	}
}

// ID returns the node's unique instance ID.
func (n *Node[P, S, R]) ID() string {
	return n.id
}

// Phase returns the current lifecycle phase.
func (n *Node[P, S, R]) Phase() Phase {
	return n.phase
}

// State returns the current state and whether any state has been applied.
func (n *Node[P, S, R]) State() (S, bool) {
	return n.state, n.hasState
}

// SubscriptionCount returns the number of owned subscriptions, including
// the state subscription.
func (n *Node[P, S, R]) SubscriptionCount() int {
	return len(n.subs)
}

// OnMount runs the component function and subscribes to its states.
// Only the first call has an effect.
func (n *Node[P, S, R]) OnMount(props P) {
	if n.phase != PhaseConstructed {
		return
	}
	n.props = stream.NewBehavior(props)
	n.updates = stream.NewSubject[P]()
	sess := &session{late: n.rejectLate}
	api := API[P]{
		Props:   n.props.Observable(),
		Updates: n.updates.Observable(),
		session: sess,
	}

	n.mounting = true
	states := stream.DistinctUntilChanged(n.factory.fn(api), equality.Func[S]())
	core := states.Subscribe(stream.Observer[S]{
		Next:  n.receive,
		Error: n.fail,
	})
	n.mounting = false
	n.subs = sess.seal(core)
	n.phase = PhaseMounted

	if !n.hasState {
		n.setupViolation()
		return
	}
	n.logger.LogAttrs(context.Background(), slog.LevelDebug, "node mounted",
		slog.Int("subscriptions", len(n.subs)))
}

func (n *Node[P, S, R]) setupViolation() {
	err := &errors.SetupError{Component: n.factory.opts.name, Node: n.id}
	if n.factory.opts.mode == Production {
		n.logger.LogAttrs(context.Background(), slog.LevelDebug, "node mounted without state")
		return
	}
	n.logger.LogAttrs(context.Background(), slog.LevelError, "node mounted without state",
		slog.String("error", err.Error()))
	n.OnUnmount()
	panic(err)
}

func (n *Node[P, S, R]) receive(next S) {
	if n.phase == PhaseUnmounted {
		return
	}
	first := !n.hasState
	if !first && !n.ShouldApplyState(next) {
		return
	}
	n.state = next
	n.hasState = true
	if n.mounting {
		return
	}
	n.host.MarkNeedsBuild()
}

func (n *Node[P, S, R]) fail(err error) {
	if n.factory.opts.onError != nil {
		n.factory.opts.onError(err)
		return
	}
	errors.Report(&errors.Error{
		Op:        "bridge.stream",
		Kind:      errors.KindStream,
		Component: n.factory.opts.name,
		Node:      n.id,
		Err:       err,
	})
}

func (n *Node[P, S, R]) rejectLate(sub stream.Subscription) {
	sub.Unsubscribe()
	n.logger.LogAttrs(context.Background(), slog.LevelWarn, "subscription registered after setup",
		slog.String("phase", n.phase.String()))
	if n.factory.opts.mode == Development {
		panic(&errors.Error{
			Op:        "bridge.subscribe",
			Kind:      errors.KindMisuse,
			Component: n.factory.opts.name,
			Node:      n.id,
			Err:       errors.ErrSessionSealed,
		})
	}
}

// OnConfigUpdate replaces the props replayed to subscribers.
func (n *Node[P, S, R]) OnConfigUpdate(props P) {
	if n.phase != PhaseMounted && n.phase != PhaseUpdating {
		return
	}
	n.phase = PhaseUpdating
	n.props.Next(props)
}

// ShouldApplyState reports whether next is a different value than the
// current state, by identity.
func (n *Node[P, S, R]) ShouldApplyState(next S) bool {
	if !n.hasState {
		return true
	}
	return !equality.Identical(n.state, next)
}

// OnStateApplied notifies Updates subscribers with the current props.
func (n *Node[P, S, R]) OnStateApplied() {
	if n.phase != PhaseMounted && n.phase != PhaseUpdating {
		return
	}
	n.phase = PhaseMounted
	n.updates.Next(n.props.Value())
}

// OnUnmount completes Props and Updates and cancels every owned
// subscription. Later calls do nothing.
func (n *Node[P, S, R]) OnUnmount() {
	if n.phase == PhaseUnmounted {
		return
	}
	mounted := n.phase != PhaseConstructed
	n.phase = PhaseUnmounted
	if !mounted {
		return
	}
	n.props.Complete()
	n.updates.Complete()
	subs := n.subs
	n.subs = nil
	for _, sub := range subs {
		sub.Unsubscribe()
	}
	n.logger.LogAttrs(context.Background(), slog.LevelDebug, "node unmounted",
		slog.Int("subscriptions", len(subs)))
}

// Render calls the template with the current state.
func (n *Node[P, S, R]) Render() R {
	return n.factory.tmpl(n.state)
}
