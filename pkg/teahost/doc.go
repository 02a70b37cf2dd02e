// Package teahost hosts a stream component in a Bubble Tea terminal
// program.
//
// The component's template renders to a string. Streams that emit from
// other goroutines (stream.SystemClock timers, network callbacks) must
// deliver through the model's Scheduler, which queues tasks and wakes the
// program with a message so every emission is applied inside Update:
//
//	sched := teahost.NewScheduler()
//	counter := bridge.New(func(api bridge.API[Props]) stream.Observable[int] {
//	    return stream.Interval(stream.SystemClock, sched, time.Second)
//	}, func(n int) string { return strconv.Itoa(n) })
//
//	model := teahost.NewModel(counter, Props{}, teahost.WithScheduler[Props](sched))
//	err := teahost.Run(ctx, model)
package teahost
