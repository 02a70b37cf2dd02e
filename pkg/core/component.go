package core

import "github.com/go-drift/streamwidget/pkg/bridge"

// ComponentType is a widget kind whose state is derived from a stream.
// Create one per component with Component and instantiate widgets from it
// with New or Keyed.
//
//	var Greeting = core.Component(
//	    func(api bridge.API[string]) stream.Observable[string] {
//	        return stream.Map(api.Props, func(name string) string { return "Hello, " + name })
//	    },
//	    func(text string) core.Widget { return widgets.Text{Content: text} },
//	)
//
//	root := Greeting.New("Ada")
type ComponentType[P, S any] struct {
	factory *bridge.Factory[P, S, Widget]
}

// Component builds a ComponentType from an author function and a template.
// It panics if either is nil.
func Component[P, S any](fn bridge.Func[P, S], tmpl bridge.Template[S, Widget], opts ...bridge.Option) *ComponentType[P, S] {
	return &ComponentType[P, S]{factory: bridge.New(fn, tmpl, opts...)}
}

// New returns a widget of this component type configured with props.
func (c *ComponentType[P, S]) New(props P) Widget {
	return componentWidget[P, S]{kind: c, props: props}
}

// Keyed is like New but attaches a reconciliation key.
func (c *ComponentType[P, S]) Keyed(key any, props P) Widget {
	return componentWidget[P, S]{kind: c, props: props, key: key}
}

// Factory exposes the underlying bridge factory.
func (c *ComponentType[P, S]) Factory() *bridge.Factory[P, S, Widget] {
	return c.factory
}

type componentWidget[P, S any] struct {
	StatefulBase
	kind  *ComponentType[P, S]
	props P
	key   any
}

func (w componentWidget[P, S]) Key() any {
	return w.key
}

func (w componentWidget[P, S]) CreateState() State {
	return &componentState[P, S]{}
}

// ComponentName returns the name given with bridge.WithName.
func (w componentWidget[P, S]) ComponentName() string {
	return w.kind.factory.Name()
}

// CanUpdate keeps an element only for widgets of the same component type.
func (w componentWidget[P, S]) CanUpdate(next Widget) bool {
	other, ok := next.(componentWidget[P, S])
	return ok && other.kind == w.kind
}

type componentState[P, S any] struct {
	StateBase
	node *bridge.Node[P, S, Widget]
}

func (s *componentState[P, S]) widget() componentWidget[P, S] {
	return s.Element().Widget().(componentWidget[P, S])
}

func (s *componentState[P, S]) InitState() {
	w := s.widget()
	s.node = w.kind.factory.Instantiate(s.Element())
	s.node.OnMount(w.props)
}

func (s *componentState[P, S]) Build(ctx BuildContext) Widget {
	return s.node.Render()
}

func (s *componentState[P, S]) DidUpdateWidget(oldWidget StatefulWidget) {
	s.node.OnConfigUpdate(s.widget().props)
}

// DidBuild runs after the element has committed a rebuild.
func (s *componentState[P, S]) DidBuild() {
	s.node.OnStateApplied()
}

func (s *componentState[P, S]) Dispose() {
	if s.node != nil {
		s.node.OnUnmount()
	}
	s.RunDisposers()
}

// ComponentNode returns the bridge node behind a mounted component element,
// or nil if element does not host one.
func ComponentNode[P, S any](element Element) *bridge.Node[P, S, Widget] {
	stateful, ok := element.(*StatefulElement)
	if !ok {
		return nil
	}
	state, ok := stateful.State().(*componentState[P, S])
	if !ok {
		return nil
	}
	return state.node
}
