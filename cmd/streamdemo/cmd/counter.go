package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/streamwidget/pkg/bridge"
	"github.com/go-drift/streamwidget/pkg/core"
	"github.com/go-drift/streamwidget/pkg/stream"
	"github.com/go-drift/streamwidget/pkg/widgets"
)

type counterProps struct {
	Step int
}

type counterState struct {
	Step  int
	Total int
	Ticks int
}

// counterFunc adds the current step to a running total on every tick.
func counterFunc(clock stream.Clock, sched stream.Scheduler, period time.Duration) bridge.Func[counterProps, counterState] {
	return func(api bridge.API[counterProps]) stream.Observable[counterState] {
		step := 0
		var acc counterState
		props := stream.Tap(api.Props, func(p counterProps) { step = p.Step })
		ticks := stream.Map(stream.Interval(clock, sched, period), func(n int) counterState {
			acc.Total += step
			acc.Ticks = n + 1
			return acc
		})
		return stream.CombineLatest(props, stream.StartWith(ticks, acc), func(p counterProps, s counterState) counterState {
			s.Step = p.Step
			return s
		})
	}
}

func counterLines(s counterState) []string {
	return []string{
		fmt.Sprintf("step  %d", s.Step),
		fmt.Sprintf("total %d", s.Total),
		fmt.Sprintf("ticks %d", s.Ticks),
	}
}

func counterText(s counterState) string {
	return strings.Join(counterLines(s), "\n")
}

func counterWidget(s counterState) core.Widget {
	lines := counterLines(s)
	items := make([]core.Widget, len(lines))
	for i, line := range lines {
		items[i] = widgets.Text{Content: line}
	}
	return widgets.Column{Items: items}
}

// stepKeys changes the step with + and - (or arrow keys).
func stepKeys(p counterProps, key tea.KeyMsg) (counterProps, bool) {
	switch key.String() {
	case "+", "=", "up":
		p.Step++
		return p, true
	case "-", "_", "down":
		p.Step--
		return p, true
	}
	return p, false
}

func parseStep(value string) (int, error) {
	step, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid step %q: %w", value, err)
	}
	return step, nil
}
