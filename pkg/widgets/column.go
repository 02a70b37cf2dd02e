package widgets

import "github.com/go-drift/streamwidget/pkg/core"

// Column stacks its items vertically, in order. Nil items are skipped.
type Column struct {
	core.ContainerBase
	Items []core.Widget
}

// ColumnOf creates a Column from the given widgets.
func ColumnOf(items ...core.Widget) Column {
	return Column{Items: items}
}

// ChildWidgets returns the non-nil items.
func (c Column) ChildWidgets() []core.Widget {
	children := make([]core.Widget, 0, len(c.Items))
	for _, item := range c.Items {
		if item != nil {
			children = append(children, item)
		}
	}
	return children
}
