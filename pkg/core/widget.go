package core

// Widget is an immutable description of part of the UI.
type Widget interface {
	CreateElement() Element
	Key() any
}

// StatelessWidget builds its child from its own configuration only.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget owns a State that outlives individual widget instances.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// ContainerWidget has child widgets but builds nothing itself. Implement
// either ChildWidget or ChildWidgets; a widget with neither is a leaf.
type ContainerWidget interface {
	Widget
	isContainer()
}

// State is the mutable half of a StatefulWidget.
type State interface {
	InitState()
	Build(ctx BuildContext) Widget
	SetState(fn func())
	Dispose()
	DidUpdateWidget(oldWidget StatefulWidget)
}

// Element is the instantiation of a Widget at a location in the tree.
type Element interface {
	BuildContext
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	MarkNeedsBuild()
	RebuildIfNeeded()
	VisitChildren(visitor func(Element) bool)
	Depth() int
}

// BuildContext is the handle a widget's Build receives.
type BuildContext interface {
	Widget() Widget
	FindAncestor(predicate func(Element) bool) Element
}

// Disposable is implemented by controllers that hold resources.
type Disposable interface {
	Dispose()
}
