package timer

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/blinkrail/blinkrail/internal/session"
)

// handleTick counts down one second. Ticks from an earlier chain or for a
// session that is not active are dropped. A reason still being typed when
// the last second runs out is recorded before the session completes.
func (t *Timer) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.id != t.tickID || t.sess.State() != session.Active {
		return t, nil
	}

	if t.inputting && t.sess.Remaining() <= time.Second {
		t.saveInput()
	}

	t.sess.Tick()

	if t.sess.State() == session.Completed {
		return t, tea.Quit
	}

	return t, t.tick()
}

// handleInput updates the interruption reason prompt.
func (t *Timer) handleInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			return t.quit()

		case key.Matches(keyMsg, defaultKeymap.enter):
			t.saveInput()

			return t, nil

		case key.Matches(keyMsg, defaultKeymap.esc):
			t.closeInput()

			return t, nil
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)

	return t, cmd
}

// saveInput records the typed reason and closes the prompt.
func (t *Timer) saveInput() {
	reason := strings.TrimSpace(t.input.Value())

	if !t.sess.RecordInterruption(reason) {
		slog.Warn(
			"interruption not recorded",
			slog.String("session_id", t.sess.ID()),
			slog.String("state", t.sess.State().String()),
			slog.String("reason", reason),
		)
	}

	t.closeInput()
}

func (t *Timer) closeInput() {
	t.inputting = false
	t.input.Reset()
	t.input.Blur()
}

// quit pauses an unfinished session and saves it so that it can be resumed.
func (t *Timer) quit() (tea.Model, tea.Cmd) {
	t.quitting = true

	if t.sess.State() != session.Completed {
		t.sess.Pause()
		t.persist()
	}

	return t, tea.Quit
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return t.quit()

	case t.sess.State() == session.Completed:
		return t, nil

	case key.Matches(msg, defaultKeymap.togglePlay):
		if t.sess.Pause() {
			t.persist()
			return t, nil
		}

		if t.sess.Resume() {
			return t, t.tick()
		}

	case key.Matches(msg, defaultKeymap.interrupt):
		if t.sess.State() != session.Active {
			return t, nil
		}

		t.inputting = true

		return t, t.input.Focus()

	case key.Matches(msg, defaultKeymap.extend):
		if t.sess.Extend(t.opts.ExtendBy) {
			slog.Info(
				"session extended",
				slog.String("session_id", t.sess.ID()),
				slog.Duration("by", t.opts.ExtendBy),
				slog.Duration("duration", t.sess.Duration()),
			)
		}

	case key.Matches(msg, defaultKeymap.complete):
		if t.sess.Complete() {
			return t, tea.Quit
		}
	}

	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if t.inputting {
		if tick, ok := msg.(tickMsg); ok {
			return t.handleTick(tick)
		}

		return t.handleInput(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		return t.handleTick(msg)

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = min(msg.Width-padding*2-4, maxWidth)

		return t, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := t.progress.Update(msg)
		t.progress, _ = progressModel.(progress.Model)

		return t, cmd
	}

	slog.Debug("unhandled message", slog.String("msg", spew.Sdump(msg)))

	return t, nil
}
