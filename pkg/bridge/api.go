package bridge

import (
	"github.com/go-drift/streamwidget/pkg/stream"
)

// API is handed to the component function.
type API[P any] struct {
	// Props replays the latest props to every subscriber, then each later
	// props value in order.
	Props stream.Observable[P]
	// Updates emits the current props after every committed render.
	Updates stream.Observable[P]

	session *session
}

// Subscribe hands ownership of sub to the node, which cancels it on unmount.
// It must be called before the component function returns.
func (a API[P]) Subscribe(sub stream.Subscription) {
	if a.session == nil || sub == nil {
		return
	}
	a.session.register(sub)
}

// session collects the handles registered while the component function
// runs. Sealing it produces the node's fixed subscription set.
type session struct {
	handles []stream.Subscription
	sealed  bool
	late    func(sub stream.Subscription)
}

func (s *session) register(sub stream.Subscription) {
	if s.sealed {
		if s.late != nil {
			s.late(sub)
		}
		return
	}
	s.handles = append(s.handles, sub)
}

// seal closes the registration window. The core subscription comes first.
func (s *session) seal(core stream.Subscription) []stream.Subscription {
	s.sealed = true
	set := make([]stream.Subscription, 0, len(s.handles)+1)
	set = append(set, core)
	set = append(set, s.handles...)
	s.handles = nil
	return set
}
