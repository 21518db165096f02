package session

import (
	"slices"
	"time"
)

// Transition describes a change of state.
type Transition struct {
	At   time.Time
	From State
	To   State
}

// Observer is called once for every state transition.
type Observer func(Transition)

// Notifier receives the completion signal of a session. It is called once,
// the first time the session completes, after observers have seen the
// transition.
type Notifier interface {
	SessionCompleted(s *Session)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(s *Session)

func (f NotifierFunc) SessionCompleted(s *Session) {
	f(s)
}

type subscriber struct {
	fn     Observer
	active bool
}

// Subscribe registers fn for state transitions and returns a function that
// cancels the subscription. Subscribers are called in registration order.
func (s *Session) Subscribe(fn Observer) (cancel func()) {
	sub := &subscriber{fn: fn, active: true}

	s.subscribers = append(s.subscribers, sub)

	return func() {
		if !sub.active {
			return
		}

		sub.active = false

		// copy so that a dispatch in progress keeps its own view
		s.subscribers = slices.DeleteFunc(
			slices.Clone(s.subscribers),
			func(v *subscriber) bool { return v == sub },
		)
	}
}

// transition moves the session to a new state and delivers the change.
// Transitions caused by observers while a delivery is in progress are queued
// so every subscriber sees them in order.
func (s *Session) transition(to State, at time.Time) {
	t := Transition{From: s.state, To: to, At: at}

	s.state = to

	s.pending = append(s.pending, t)

	if s.dispatching {
		return
	}

	s.dispatching = true
	defer func() { s.dispatching = false }()

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]

		for _, sub := range s.subscribers {
			if sub.active {
				sub.fn(next)
			}
		}

		if next.To == Completed && !s.notified {
			s.notified = true

			if s.notifier != nil {
				s.notifier.SessionCompleted(s)
			}
		}
	}
}
