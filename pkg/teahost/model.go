package teahost

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/streamwidget/pkg/bridge"
	"github.com/go-drift/streamwidget/pkg/errors"
)

// appliedMsg follows every committed render.
type appliedMsg struct{}

// Reducer maps a key press to new props. It reports false when the key
// does not change them.
type Reducer[P any] func(props P, key tea.KeyMsg) (P, bool)

// Option configures a Model.
type Option[P any] func(*settings[P])

type settings[P any] struct {
	reducer   Reducer[P]
	scheduler *Scheduler
	title     string
	frame     lipgloss.Style
	quitKeys  []string
	logger    *slog.Logger
}

// WithReducer turns key presses into props updates.
func WithReducer[P any](r Reducer[P]) Option[P] {
	return func(s *settings[P]) { s.reducer = r }
}

// WithScheduler sets the scheduler the component's streams deliver
// through. Share it with the component function so its emissions reach
// the model's loop.
func WithScheduler[P any](sched *Scheduler) Option[P] {
	return func(s *settings[P]) { s.scheduler = sched }
}

// WithTitle shows a bold title above the rendered component.
func WithTitle[P any](title string) Option[P] {
	return func(s *settings[P]) { s.title = title }
}

// WithFrame replaces the default rounded border style.
func WithFrame[P any](style lipgloss.Style) Option[P] {
	return func(s *settings[P]) { s.frame = style }
}

// WithQuitKeys replaces the default quit keys ("q", "ctrl+c").
func WithQuitKeys[P any](keys ...string) Option[P] {
	return func(s *settings[P]) { s.quitKeys = keys }
}

// WithLogger sets the logger used for host events.
func WithLogger[P any](logger *slog.Logger) Option[P] {
	return func(s *settings[P]) { s.logger = logger }
}

// DefaultFrame is the border drawn around the component output.
var DefaultFrame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Model is a Bubble Tea model hosting one component whose template renders
// to a string. It implements bridge.Host: emissions mark it dirty and it
// re-renders after the message that caused them.
type Model[P, S any] struct {
	node     *bridge.Node[P, S, string]
	props    P
	settings settings[P]

	dirty    bool
	view     string
	quitting bool
}

// NewModel instantiates factory with props as the initial configuration.
// The node is mounted in Init.
func NewModel[P, S any](factory *bridge.Factory[P, S, string], props P, opts ...Option[P]) *Model[P, S] {
	m := &Model[P, S]{
		props: props,
		settings: settings[P]{
			frame:    DefaultFrame,
			quitKeys: []string{"q", "ctrl+c"},
		},
	}
	for _, opt := range opts {
		opt(&m.settings)
	}
	if m.settings.scheduler == nil {
		m.settings.scheduler = NewScheduler()
	}
	if m.settings.logger == nil {
		m.settings.logger = slog.Default()
	}
	m.node = factory.Instantiate(m)
	return m
}

// MarkNeedsBuild implements bridge.Host.
func (m *Model[P, S]) MarkNeedsBuild() {
	m.dirty = true
}

// Scheduler returns the scheduler tasks are delivered through.
func (m *Model[P, S]) Scheduler() *Scheduler {
	return m.settings.scheduler
}

// Node returns the hosted bridge node.
func (m *Model[P, S]) Node() *bridge.Node[P, S, string] {
	return m.node
}

// Props returns the current props.
func (m *Model[P, S]) Props() P {
	return m.props
}

// Init implements tea.Model.
func (m *Model[P, S]) Init() tea.Cmd {
	m.node.OnMount(m.props)
	return m.render()
}

// Update implements tea.Model. A panic while handling msg is reported
// through the errors handler and quits the program.
func (m *Model[P, S]) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer errors.RecoverWithCallback("teahost.Update", func(any) {
		model, cmd = m, m.Quit()
	})
	if m.quitting {
		return m, nil
	}
	switch msg := msg.(type) {
	case flushMsg:
		m.settings.scheduler.drain()
	case appliedMsg:
		m.node.OnStateApplied()
	case tea.KeyMsg:
		key := msg.String()
		if slices.Contains(m.settings.quitKeys, key) {
			return m, m.Quit()
		}
		if m.settings.reducer != nil {
			if next, changed := m.settings.reducer(m.props, msg); changed {
				m.props = next
				m.settings.logger.LogAttrs(context.Background(), slog.LevelDebug, "props updated",
					slog.String("key", key))
				m.node.OnConfigUpdate(next)
				m.dirty = true
			}
		}
	}
	if m.dirty {
		return m, m.render()
	}
	return m, nil
}

// Quit unmounts the node and returns the command that stops the program.
func (m *Model[P, S]) Quit() tea.Cmd {
	m.quitting = true
	m.node.OnUnmount()
	m.settings.scheduler.Detach()
	return tea.Quit
}

func (m *Model[P, S]) render() tea.Cmd {
	m.dirty = false
	m.view = m.node.Render()
	return func() tea.Msg { return appliedMsg{} }
}

// Output returns the last rendered component output without the frame.
func (m *Model[P, S]) Output() string {
	return m.view
}

// View implements tea.Model.
func (m *Model[P, S]) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	if m.settings.title != "" {
		b.WriteString(titleStyle.Render(m.settings.title))
		b.WriteByte('\n')
	}
	b.WriteString(m.view)
	return m.settings.frame.Render(b.String()) + "\n"
}
