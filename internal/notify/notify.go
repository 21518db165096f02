// Package notify tells the user that a focus session has completed through
// desktop notifications, sounds and user commands
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blinkrail/blinkrail/internal/session"
)

// Notification is the message delivered to every sink.
type Notification struct {
	SessionID string
	Title     string
	Message   string
	Rewards   session.Rewards
}

// Sink delivers a notification somewhere.
type Sink interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// NewNotification describes a completed session.
func NewNotification(s *session.Session) Notification {
	r := s.CalculateRewards()

	msg := fmt.Sprintf(
		"You earned %d focus sparks and %d XP",
		r.FocusSparks,
		r.ExperiencePoints,
	)

	if r.HasBonus {
		msg += " with a deep focus bonus"
	}

	if n := len(s.Interruptions()); n > 0 {
		msg += fmt.Sprintf(" (%d interruptions)", n)
	}

	return Notification{
		SessionID: s.ID(),
		Title:     "Focus session complete",
		Message:   msg,
		Rewards:   r,
	}
}

// Dispatcher fans a completion out to its sinks. It satisfies
// session.Notifier.
type Dispatcher struct {
	ctx   context.Context
	sinks []Sink
	wg    sync.WaitGroup
}

// NewDispatcher returns a dispatcher that delivers to sinks. Deliveries are
// cancelled with ctx.
func NewDispatcher(ctx context.Context, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		ctx:   ctx,
		sinks: sinks,
	}
}

// SessionCompleted builds the notification immediately and delivers it to
// every sink in the background. Sink failures are logged.
func (d *Dispatcher) SessionCompleted(s *session.Session) {
	n := NewNotification(s)

	for _, sink := range d.sinks {
		d.wg.Add(1)

		go func() {
			defer d.wg.Done()

			err := sink.Send(d.ctx, n)
			if err != nil {
				slog.Error(
					"notification failed",
					slog.String("sink", sink.Name()),
					slog.String("session_id", n.SessionID),
					slog.Any("error", err),
				)

				return
			}

			slog.Debug(
				"notification delivered",
				slog.String("sink", sink.Name()),
				slog.String("session_id", n.SessionID),
			)
		}()
	}
}

// Wait blocks until every delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
