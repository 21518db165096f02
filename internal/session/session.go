// Package session models a single focus session: a countdown that can be
// started, paused, resumed, extended and completed, the interruptions logged
// while it runs, and the rewards it earns.
//
// A Session is not safe for concurrent use. The owner must deliver ticks one
// at a time and only while the session is active.
package session

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is the planned length of a new session.
const DefaultDuration = 25 * time.Minute

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// Interruption is an external disruption logged during an active session.
type Interruption struct {
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a timer-driven focus interval.
type Session struct {
	startedAt     time.Time
	completedAt   time.Time
	clock         Clock
	notifier      Notifier
	id            string
	interruptions []Interruption
	subscribers   []*subscriber
	pending       []Transition
	policy        RewardPolicy
	duration      time.Duration
	remaining     time.Duration
	state         State
	dispatching   bool
	notified      bool
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session id instead of generating one.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithClock sets the source of timestamps.
func WithClock(c Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithNotifier sets the collaborator told about completion.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithRewardPolicy sets the constants used by CalculateRewards.
func WithRewardPolicy(p RewardPolicy) Option {
	return func(s *Session) {
		s.policy = p
	}
}

// New creates a ready session with the given planned duration. The duration
// is truncated to whole seconds and negative values are treated as zero.
func New(d time.Duration, opts ...Option) *Session {
	d = wholeSeconds(d)

	s := newSession(opts...)
	s.duration = d
	s.remaining = d

	return s
}

func newSession(opts ...Option) *Session {
	s := &Session{
		state:  Ready,
		policy: DefaultRewardPolicy(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.id == "" {
		s.id = uuid.NewString()
	}

	if s.clock == nil {
		s.clock = ClockFunc(time.Now)
	}

	return s
}

func wholeSeconds(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}

	return d.Truncate(time.Second)
}

// Start moves a ready session to active and records its start time. It has no
// effect in any other state, including completed.
func (s *Session) Start() bool {
	if s.state != Ready {
		return false
	}

	now := s.clock.Now()

	if s.startedAt.IsZero() {
		s.startedAt = now
	}

	s.transition(Active, now)

	return true
}

// Pause holds the countdown of an active session.
func (s *Session) Pause() bool {
	if s.state != Active {
		return false
	}

	s.transition(Paused, s.clock.Now())

	return true
}

// Resume continues the countdown of a paused session from where it stopped.
func (s *Session) Resume() bool {
	if s.state != Paused {
		return false
	}

	s.transition(Active, s.clock.Now())

	return true
}

// Complete finishes an active session before its countdown runs out. The
// remaining time is left as it is.
func (s *Session) Complete() bool {
	if s.state != Active {
		return false
	}

	s.finish()

	return true
}

// Extend adds d to both the planned duration and the remaining time. It has no
// effect on a completed session or for extensions shorter than a second.
func (s *Session) Extend(d time.Duration) bool {
	d = wholeSeconds(d)

	if s.state == Completed || d == 0 {
		return false
	}

	s.duration += d
	s.remaining += d

	return true
}

// RecordInterruption logs a disruption. Only active sessions accept
// interruptions.
func (s *Session) RecordInterruption(reason string) bool {
	if s.state != Active {
		return false
	}

	s.interruptions = append(s.interruptions, Interruption{
		Reason:    reason,
		Timestamp: s.clock.Now(),
	})

	return true
}

// Tick counts down one second. When the countdown reaches zero the session
// completes within the same call. Ticks are ignored unless the session is
// active.
func (s *Session) Tick() bool {
	if s.state != Active {
		return false
	}

	s.remaining -= time.Second
	if s.remaining < 0 {
		s.remaining = 0
	}

	if s.remaining == 0 {
		s.finish()
	}

	return true
}

func (s *Session) finish() {
	now := s.clock.Now()

	s.completedAt = now

	s.transition(Completed, now)
}

// ID returns the unique id of the session.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Duration returns the planned length including extensions.
func (s *Session) Duration() time.Duration {
	return s.duration
}

// Remaining returns the time left on the countdown.
func (s *Session) Remaining() time.Duration {
	return s.remaining
}

// Elapsed returns the time counted down so far.
func (s *Session) Elapsed() time.Duration {
	return s.duration - s.remaining
}

// StartedAt returns the time the session was first started.
func (s *Session) StartedAt() (time.Time, bool) {
	return s.startedAt, !s.startedAt.IsZero()
}

// CompletedAt returns the time the session completed.
func (s *Session) CompletedAt() (time.Time, bool) {
	return s.completedAt, !s.completedAt.IsZero()
}

// Interruptions returns the logged interruptions in chronological order.
func (s *Session) Interruptions() []Interruption {
	return slices.Clone(s.interruptions)
}

// Progress returns the completed fraction of the planned duration in [0, 1].
// A session without duration has no progress.
func (s *Session) Progress() float64 {
	if s.duration <= 0 {
		return 0
	}

	p := float64(s.duration-s.remaining) / float64(s.duration)

	return min(max(p, 0), 1)
}
