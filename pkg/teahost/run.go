package teahost

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts a Bubble Tea program for m and blocks until it exits or ctx
// is canceled. The node is unmounted before Run returns.
func Run[P, S any](ctx context.Context, m *Model[P, S], opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	m.Scheduler().Attach(p.Send)
	defer m.Scheduler().Detach()
	defer m.node.OnUnmount()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
