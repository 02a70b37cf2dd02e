package stream

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/streamwidget/pkg/errors"
)

// recorder collects every notification of one subscription.
type recorder[T any] struct {
	values    []T
	err       error
	completed bool
}

func (r *recorder[T]) observer() Observer[T] {
	return Observer[T]{
		Next:     func(v T) { r.values = append(r.values, v) },
		Error:    func(err error) { r.err = err },
		Complete: func() { r.completed = true },
	}
}

func TestNew_SynchronousEmission(t *testing.T) {
	rec := &recorder[int]{}
	sub := Of(1, 2, 3).Subscribe(rec.observer())

	assert.Equal(t, []int{1, 2, 3}, rec.values)
	assert.True(t, rec.completed)
	assert.True(t, sub.Closed(), "completion releases the subscription")
}

func TestNew_TeardownRunsOnce(t *testing.T) {
	calls := 0
	src := New(func(s *Subscriber[int]) func() {
		s.Next(1)
		return func() { calls++ }
	})
	sub := src.Subscribe(Observer[int]{})
	require.False(t, sub.Closed())

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 1, calls)
}

func TestNew_NoDeliveryAfterUnsubscribe(t *testing.T) {
	var emit func(int)
	src := New(func(s *Subscriber[int]) func() {
		emit = s.Next
		return nil
	})
	rec := &recorder[int]{}
	sub := src.Subscribe(rec.observer())
	emit(1)
	sub.Unsubscribe()
	emit(2)

	assert.Equal(t, []int{1}, rec.values)
}

func TestNew_UnhandledErrorIsReported(t *testing.T) {
	h := &captureHandler{}
	errors.SetHandler(h)
	defer errors.SetHandler(nil)

	Run(Fail[int](fmt.Errorf("boom")))

	require.Len(t, h.errs, 1)
	assert.Equal(t, errors.KindStream, h.errs[0].Kind)
	assert.EqualError(t, h.errs[0].Err, "boom")
}

type captureHandler struct {
	errors.LogHandler
	errs []*errors.Error
}

func (h *captureHandler) HandleError(err *errors.Error) { h.errs = append(h.errs, err) }

func TestNewSubscription(t *testing.T) {
	calls := 0
	sub := NewSubscription(func() { calls++ })
	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 1, calls)
	assert.True(t, sub.Closed())

	assert.NotPanics(t, func() { NewSubscription(nil).Unsubscribe() })
}

func TestSubject_Multicast(t *testing.T) {
	s := NewSubject[string]()
	s.Next("dropped")

	a, b := &recorder[string]{}, &recorder[string]{}
	subA := s.Subscribe(a.observer())
	s.Subscribe(b.observer())
	assert.Equal(t, 2, s.ObserverCount())

	s.Next("x")
	subA.Unsubscribe()
	s.Next("y")
	s.Complete()
	s.Next("z")

	assert.Equal(t, []string{"x"}, a.values)
	assert.False(t, a.completed)
	assert.Equal(t, []string{"x", "y"}, b.values)
	assert.True(t, b.completed)
	assert.Equal(t, 0, s.ObserverCount())

	late := &recorder[string]{}
	sub := s.Subscribe(late.observer())
	assert.True(t, late.completed)
	assert.True(t, sub.Closed())
}

func TestSubject_Error(t *testing.T) {
	s := NewSubject[int]()
	rec := &recorder[int]{}
	s.Subscribe(rec.observer())
	s.Error(fmt.Errorf("bad"))
	s.Complete()

	assert.EqualError(t, rec.err, "bad")
	assert.False(t, rec.completed)
	assert.True(t, s.Stopped())

	late := &recorder[int]{}
	s.Subscribe(late.observer())
	assert.EqualError(t, late.err, "bad")
}

func TestBehavior_ReplaysLatest(t *testing.T) {
	b := NewBehavior(map[string]int{"id": 1})
	b.Next(map[string]int{"id": 2})

	rec := &recorder[map[string]int]{}
	b.Subscribe(rec.observer())
	require.Len(t, rec.values, 1)
	assert.Equal(t, 2, rec.values[0]["id"])

	b.Next(map[string]int{"id": 3})
	require.Len(t, rec.values, 2)
	assert.Equal(t, 3, rec.values[1]["id"])
	assert.Equal(t, 3, b.Value()["id"])
}

func TestBehavior_CompletedReplaysNothing(t *testing.T) {
	b := NewBehavior(1)
	b.Complete()
	b.Next(2)

	rec := &recorder[int]{}
	b.Subscribe(rec.observer())
	assert.Empty(t, rec.values)
	assert.True(t, rec.completed)
	assert.Equal(t, 1, b.Value())
}

func TestAsObservable_HidesSubject(t *testing.T) {
	s := NewSubject[int]()
	view := s.Observable()
	_, isSubject := view.(*Subject[int])
	assert.False(t, isSubject)

	rec := &recorder[int]{}
	view.Subscribe(rec.observer())
	s.Next(7)
	assert.Equal(t, []int{7}, rec.values)
}

func TestMapFilterTap(t *testing.T) {
	var tapped []int
	src := Tap(Filter(Map(Of(1, 2, 3, 4), func(v int) int { return v * 10 }), func(v int) bool { return v > 15 }), func(v int) {
		tapped = append(tapped, v)
	})
	rec := &recorder[int]{}
	src.Subscribe(rec.observer())

	assert.Equal(t, []int{20, 30, 40}, rec.values)
	assert.Equal(t, rec.values, tapped)
	assert.True(t, rec.completed)
}

func TestDistinctUntilChanged(t *testing.T) {
	rec := &recorder[int]{}
	DistinctUntilChanged(Of(1, 1, 2, 2, 1, 3), func(a, b int) bool { return a == b }).Subscribe(rec.observer())
	assert.Equal(t, []int{1, 2, 1, 3}, rec.values)
}

func TestDistinctUntilChanged_FirstAlwaysForwarded(t *testing.T) {
	rec := &recorder[int]{}
	DistinctUntilChanged(Of(0), func(a, b int) bool { return true }).Subscribe(rec.observer())
	assert.Equal(t, []int{0}, rec.values)
}

func TestStartWithAndTake(t *testing.T) {
	rec := &recorder[int]{}
	Take(StartWith(Of(3, 4, 5), 1, 2), 4).Subscribe(rec.observer())
	assert.Equal(t, []int{1, 2, 3, 4}, rec.values)
	assert.True(t, rec.completed)

	none := &recorder[int]{}
	Take(Never[int](), 0).Subscribe(none.observer())
	assert.True(t, none.completed)
}

func TestTake_CancelsUpstream(t *testing.T) {
	s := NewSubject[int]()
	rec := &recorder[int]{}
	Take[int](s, 2).Subscribe(rec.observer())
	s.Next(1)
	s.Next(2)
	s.Next(3)

	assert.Equal(t, []int{1, 2}, rec.values)
	assert.Equal(t, 0, s.ObserverCount())
}

func TestMerge(t *testing.T) {
	a, b := NewSubject[string](), NewSubject[string]()
	rec := &recorder[string]{}
	sub := Merge[string](a, b).Subscribe(rec.observer())

	a.Next("a1")
	b.Next("b1")
	a.Complete()
	b.Next("b2")
	assert.False(t, rec.completed)
	b.Complete()

	assert.Equal(t, []string{"a1", "b1", "b2"}, rec.values)
	assert.True(t, rec.completed)
	assert.True(t, sub.Closed())

	empty := &recorder[string]{}
	Merge[string]().Subscribe(empty.observer())
	assert.True(t, empty.completed)
}

func TestMerge_UnsubscribeReleasesSources(t *testing.T) {
	a, b := NewSubject[int](), NewSubject[int]()
	sub := Merge[int](a, b).Subscribe(Observer[int]{})
	require.Equal(t, 1, a.ObserverCount())
	sub.Unsubscribe()
	assert.Equal(t, 0, a.ObserverCount())
	assert.Equal(t, 0, b.ObserverCount())
}

func TestCombineLatest(t *testing.T) {
	props := NewBehavior("p1")
	ticks := NewSubject[int]()
	rec := &recorder[string]{}
	CombineLatest[string, int](props, ticks, func(p string, n int) string {
		return fmt.Sprintf("%s:%d", p, n)
	}).Subscribe(rec.observer())

	assert.Empty(t, rec.values)
	ticks.Next(0)
	props.Next("p2")
	ticks.Next(1)

	assert.Equal(t, []string{"p1:0", "p2:0", "p2:1"}, rec.values)

	ticks.Complete()
	assert.False(t, rec.completed)
	props.Complete()
	assert.True(t, rec.completed)
}

func TestCombineLatest_CompletesWhenSourceNeverEmitted(t *testing.T) {
	rec := &recorder[int]{}
	CombineLatest(Empty[int](), Never[int](), func(a, b int) int { return a + b }).Subscribe(rec.observer())
	assert.True(t, rec.completed)
}

func TestSwitchMap(t *testing.T) {
	outer := NewSubject[string]()
	inners := map[string]*Subject[int]{
		"a": NewSubject[int](),
		"b": NewSubject[int](),
	}
	rec := &recorder[int]{}
	SwitchMap[string, int](outer, func(key string) Observable[int] {
		return inners[key]
	}).Subscribe(rec.observer())

	outer.Next("a")
	inners["a"].Next(1)
	outer.Next("b")
	inners["a"].Next(2)
	inners["b"].Next(3)

	assert.Equal(t, []int{1, 3}, rec.values)
	assert.Equal(t, 0, inners["a"].ObserverCount())

	outer.Complete()
	assert.False(t, rec.completed)
	inners["b"].Complete()
	assert.True(t, rec.completed)
}

func TestSwitchMap_SynchronousInner(t *testing.T) {
	rec := &recorder[int]{}
	SwitchMap(Of(1, 2), func(v int) Observable[int] {
		return Of(v, v*10)
	}).Subscribe(rec.observer())
	assert.Equal(t, []int{1, 10, 2, 20}, rec.values)
	assert.True(t, rec.completed)
}

func TestSwitchMap_ErrorPassesThrough(t *testing.T) {
	rec := &recorder[int]{}
	SwitchMap(Of(1), func(int) Observable[int] {
		return Fail[int](fmt.Errorf("inner"))
	}).Subscribe(rec.observer())
	assert.EqualError(t, rec.err, "inner")
}

// manualClock fires registered timers when advanced.
type manualClock struct {
	timers []*manualTimer
}

type manualTimer struct {
	period  time.Duration
	elapsed time.Duration
	fn      func()
	stopped bool
}

func (c *manualClock) Every(period time.Duration, fn func()) func() {
	timer := &manualTimer{period: period, fn: fn}
	c.timers = append(c.timers, timer)
	return func() { timer.stopped = true }
}

func (c *manualClock) advance(d time.Duration) {
	for _, timer := range c.timers {
		if timer.stopped {
			continue
		}
		timer.elapsed += d
		for timer.elapsed >= timer.period && !timer.stopped {
			timer.elapsed -= timer.period
			timer.fn()
		}
	}
}

func TestInterval(t *testing.T) {
	clock := &manualClock{}
	var queue []func()
	sched := SchedulerFunc(func(task func()) { queue = append(queue, task) })

	rec := &recorder[int]{}
	sub := Interval(clock, sched, time.Second).Subscribe(rec.observer())

	clock.advance(2 * time.Second)
	assert.Empty(t, rec.values, "emissions wait for the scheduler")
	for _, task := range queue {
		task()
	}
	queue = nil
	assert.Equal(t, []int{0, 1}, rec.values)

	clock.advance(time.Second)
	sub.Unsubscribe()
	for _, task := range queue {
		task()
	}
	assert.Equal(t, []int{0, 1}, rec.values, "queued ticks are dropped after unsubscribe")
	assert.True(t, clock.timers[0].stopped)
}

func TestSystemClock(t *testing.T) {
	ticks := make(chan struct{}, 4)
	stop := SystemClock.Every(time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	defer stop()

	select {
	case <-ticks:
	case <-time.After(5 * time.Second):
		t.Fatal("system clock never ticked")
	}
	stop()
	stop()
}
