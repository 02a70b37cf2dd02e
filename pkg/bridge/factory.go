package bridge

import (
	"log/slog"

	"github.com/go-drift/streamwidget/pkg/stream"
)

// Func is the component function. It is called once per node, during mount,
// and returns the stream of states the node renders.
type Func[P, S any] func(api API[P]) stream.Observable[S]

// Template renders one state. It must not have side effects.
type Template[S, R any] func(state S) R

// Option configures a Factory.
type Option func(*options)

type options struct {
	mode    Mode
	logger  *slog.Logger
	name    string
	onError func(err error)
}

// WithMode sets the contract enforcement mode. The default is Development.
func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithLogger sets the logger used for lifecycle records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName names the component in logs and errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithErrorHandler receives errors raised by component streams. By default
// they are reported through errors.Report.
func WithErrorHandler(fn func(err error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// Factory produces nodes for one component type.
type Factory[P, S, R any] struct {
	fn   Func[P, S]
	tmpl Template[S, R]
	opts options
}

// New creates a Factory from a component function and a template.
func New[P, S, R any](fn Func[P, S], tmpl Template[S, R], opts ...Option) *Factory[P, S, R] {
	if fn == nil {
		panic("bridge: nil component function")
	}
	if tmpl == nil {
		panic("bridge: nil template")
	}
	f := &Factory[P, S, R]{fn: fn, tmpl: tmpl}
	for _, opt := range opts {
		opt(&f.opts)
	}
	if f.opts.logger == nil {
		f.opts.logger = slog.Default()
	}
	return f
}

// Name returns the configured component name.
func (f *Factory[P, S, R]) Name() string {
	return f.opts.name
}

// Mode returns the configured enforcement mode.
func (f *Factory[P, S, R]) Mode() Mode {
	return f.opts.mode
}

// Instantiate creates a node bound to host. The node does nothing until
// the host calls OnMount.
func (f *Factory[P, S, R]) Instantiate(host Host) *Node[P, S, R] {
	if host == nil {
		host = noopHost{}
	}
	return newNode(f, host)
}
