package widgets

import (
	"github.com/go-drift/streamwidget/pkg/core"
	"github.com/go-drift/streamwidget/pkg/errors"
)

func init() {
	// Register the default error widget builder
	core.SetErrorWidgetBuilder(func(err *errors.BuildError) core.Widget {
		return ErrorWidget{Error: err}
	})
}

// ErrorWidget displays error information when a widget build fails.
// Details of the failure are shown only when Verbose is set.
type ErrorWidget struct {
	core.StatelessBase
	// Error is the build error that occurred.
	Error *errors.BuildError
	// Verbose shows the error message under the heading.
	Verbose bool
}

func (e ErrorWidget) Build(ctx core.BuildContext) core.Widget {
	children := []core.Widget{
		Text{Content: "! Something went wrong"},
	}
	if e.Verbose {
		detail := "Unknown error"
		if e.Error != nil {
			detail = e.Error.Error()
		}
		children = append(children, Text{Content: detail})
	}
	return Column{Items: children}
}
