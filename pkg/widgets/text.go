package widgets

import "github.com/go-drift/streamwidget/pkg/core"

// Text displays a string. It has no children.
//
//	Text{Content: "Label"}
type Text struct {
	core.ContainerBase
	// Content is the text string to display.
	Content string
}

// String returns the text content.
func (t Text) String() string {
	return t.Content
}
