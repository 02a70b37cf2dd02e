// Package testbed provides internal test components for the testing framework.
package testbed

import (
	"fmt"
	"time"

	"github.com/go-drift/streamwidget/pkg/bridge"
	"github.com/go-drift/streamwidget/pkg/core"
	"github.com/go-drift/streamwidget/pkg/stream"
	"github.com/go-drift/streamwidget/pkg/widgets"
)

// CounterProps configures a Counter.
type CounterProps struct {
	Step int
}

// CounterState is what a Counter renders.
type CounterState struct {
	Step  int
	Total int
}

// NewCounter returns a component that adds Step to a running total on
// every tick of clock. Ticks are delivered through sched.
func NewCounter(clock stream.Clock, sched stream.Scheduler, period time.Duration, opts ...bridge.Option) *core.ComponentType[CounterProps, CounterState] {
	opts = append([]bridge.Option{bridge.WithName("Counter")}, opts...)
	return core.Component(func(api bridge.API[CounterProps]) stream.Observable[CounterState] {
		step, total := 0, 0
		props := stream.Tap(api.Props, func(p CounterProps) { step = p.Step })
		totals := stream.Map(stream.Interval(clock, sched, period), func(int) int {
			total += step
			return total
		})
		return stream.CombineLatest(props, stream.StartWith(totals, 0), func(p CounterProps, total int) CounterState {
			return CounterState{Step: p.Step, Total: total}
		})
	}, func(s CounterState) core.Widget {
		return widgets.Column{Items: []core.Widget{
			widgets.Text{Content: fmt.Sprintf("step %d", s.Step)},
			widgets.Text{Content: fmt.Sprintf("total %d", s.Total)},
		}}
	}, opts...)
}
