// Package timer drives a focus session from the terminal: it delivers the
// one second ticks, maps key presses to session operations and settles the
// session once it completes
package timer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blinkrail/blinkrail/internal/ledger"
	"github.com/blinkrail/blinkrail/internal/metrics"
	"github.com/blinkrail/blinkrail/internal/session"
	"github.com/blinkrail/blinkrail/internal/store"
)

// Ledger records the rewards of completed sessions.
type Ledger interface {
	Record(ctx context.Context, e ledger.Entry) error
}

// Options holds the display and behaviour settings of the timer.
type Options struct {
	Clock          session.Clock
	ExtendBy       time.Duration
	DarkTheme      bool
	TwentyFourHour bool
}

// Timer is the bubbletea model that owns a single session.
type Timer struct {
	ctx      context.Context
	db       store.DB
	ledger   Ledger
	recorder metrics.Recorder
	sess     *session.Session
	err      error
	style    style
	opts     Options
	help     help.Model
	input    textinput.Model
	progress progress.Model
	rewards  session.Rewards
	tickID   int
	// inputting is set while an interruption reason is being typed
	inputting bool
	settled   bool
	saved     bool
	quitting  bool
}

type tickMsg struct {
	at time.Time
	id int
}

// New creates a timer for sess. The timer subscribes to the session so that
// completion is settled however it happens.
func New(
	ctx context.Context,
	sess *session.Session,
	db store.DB,
	l Ledger,
	recorder metrics.Recorder,
	opts Options,
) *Timer {
	if opts.Clock == nil {
		opts.Clock = session.ClockFunc(time.Now)
	}

	if recorder == nil {
		recorder = metrics.NoOp{}
	}

	input := textinput.New()
	input.Placeholder = "What interrupted you?"
	input.CharLimit = 120

	t := &Timer{
		ctx:      ctx,
		sess:     sess,
		db:       db,
		ledger:   l,
		recorder: recorder,
		opts:     opts,
		style:    newStyle(opts.DarkTheme),
		help:     help.New(),
		input:    input,
		progress: progress.New(progress.WithDefaultGradient()),
	}

	sess.Subscribe(t.onTransition)

	return t
}

// Session returns the session driven by the timer.
func (t *Timer) Session() *session.Session {
	return t.sess
}

// Err returns the error of the last failed save, if any.
func (t *Timer) Err() error {
	return t.err
}

// onTransition keeps the tick chain and the stored copies in line with the
// session state.
func (t *Timer) onTransition(tr session.Transition) {
	if tr.From == session.Active {
		// drop any tick that is already in flight
		t.tickID++
	}

	slog.Debug(
		"session transition",
		slog.String("session_id", t.sess.ID()),
		slog.String("from", tr.From.String()),
		slog.String("to", tr.To.String()),
	)

	if tr.To == session.Completed {
		t.settle()
	}
}

func (t *Timer) tick() tea.Cmd {
	id := t.tickID

	return tea.Tick(time.Second, func(at time.Time) tea.Msg {
		return tickMsg{id: id, at: at}
	})
}

// persist saves an unfinished session so that it can be resumed later.
func (t *Timer) persist() {
	if t.sess.State() == session.Completed {
		return
	}

	err := t.db.SavePaused(t.sess)
	if err != nil {
		t.err = err

		slog.Error(
			"unable to save paused session",
			slog.String("session_id", t.sess.ID()),
			slog.Any("error", err),
		)

		return
	}

	t.saved = true
}

// settle archives a completed session and records its rewards. Failures are
// kept for display but never undo the completion.
func (t *Timer) settle() {
	if t.settled {
		return
	}

	t.settled = true
	t.rewards = t.sess.CalculateRewards()

	var errs []error

	errs = append(errs, t.db.SaveSession(t.sess), t.db.DeletePaused(t.sess.ID()))

	entry, err := ledger.NewEntry(t.sess)
	if err == nil {
		err = t.ledger.Record(t.ctx, entry)
	}

	errs = append(errs, err, t.recorder.RecordCompleted(t.ctx, t.sess))

	t.err = errors.Join(errs...)
	if t.err != nil {
		slog.Error(
			"unable to settle session",
			slog.String("session_id", t.sess.ID()),
			slog.Any("error", t.err),
		)
	}

	slog.Info(
		"session completed",
		slog.String("session_id", t.sess.ID()),
		slog.Duration("duration", t.sess.Duration()),
		slog.Duration("remaining", t.sess.Remaining()),
		slog.Int("focus_sparks", t.rewards.FocusSparks),
		slog.Int("experience_points", t.rewards.ExperiencePoints),
		slog.Bool("bonus", t.rewards.HasBonus),
		slog.Int("interruptions", len(t.sess.Interruptions())),
	)
}

// Init starts a ready session or resumes a paused one.
func (t *Timer) Init() tea.Cmd {
	switch t.sess.State() {
	case session.Ready:
		t.sess.Start()
	case session.Paused:
		t.sess.Resume()
	case session.Completed:
		return tea.Quit
	}

	slog.Info(
		"session running",
		slog.String("session_id", t.sess.ID()),
		slog.Duration("remaining", t.sess.Remaining()),
	)

	return t.tick()
}

// Run displays the timer until the session completes or the user quits.
func Run(ctx context.Context, t *Timer) error {
	p := tea.NewProgram(t, tea.WithContext(ctx))

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) {
		// the context was cancelled, keep the session for later
		t.sess.Pause()
		t.persist()

		return nil
	}

	return err
}
