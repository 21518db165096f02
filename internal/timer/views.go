package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/blinkrail/blinkrail/internal/session"
	"github.com/blinkrail/blinkrail/internal/timeutil"
)

func (t *Timer) timeFormat() string {
	if t.opts.TwentyFourHour {
		return "15:04"
	}

	return "03:04 PM"
}

func (t *Timer) statusLine() string {
	var s strings.Builder

	if t.sess.State() == session.Paused {
		s.WriteString(t.style.paused.Render("PAUSED"))
	} else {
		s.WriteString(t.style.active.Render("FOCUS"))

		end := t.opts.Clock.Now().Add(t.sess.Remaining())
		s.WriteString(t.style.hint.Render("until " + end.Format(t.timeFormat())))
	}

	if n := len(t.sess.Interruptions()); n > 0 {
		label := "interruptions"
		if n == 1 {
			label = "interruption"
		}

		s.WriteString(t.style.hint.Render(fmt.Sprintf(" · %d %s", n, label)))
	}

	return s.String()
}

func (t *Timer) timerView() string {
	var s strings.Builder

	s.WriteString(t.statusLine())
	s.WriteString("\n\n")
	s.WriteString(t.style.main.Render(timeutil.Clock(t.sess.Remaining())))
	s.WriteString(t.style.hint.Render(" / " + timeutil.HumanDuration(t.sess.Duration())))
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(t.sess.Progress()))

	if t.inputting {
		s.WriteString("\n\n" + t.input.View())
		s.WriteString("\n\n" + t.help.ShortHelpView([]key.Binding{
			defaultKeymap.enter,
			defaultKeymap.esc,
		}))

		return s.String()
	}

	s.WriteString("\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.interrupt,
		defaultKeymap.extend,
		defaultKeymap.complete,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (t *Timer) summaryView() string {
	var s strings.Builder

	s.WriteString(t.style.main.Render("Your focus session is complete"))
	s.WriteString("\n\n")
	s.WriteString(t.style.reward.Render(fmt.Sprintf(
		"+%d focus sparks  +%d XP",
		t.rewards.FocusSparks,
		t.rewards.ExperiencePoints,
	)))

	if t.rewards.HasBonus {
		s.WriteString("\n" + t.style.bonus.Render("Deep focus bonus applied"))
	}

	elapsed := timeutil.HumanDuration(t.sess.Elapsed())
	s.WriteString("\n\n" + t.style.secondary.Render("Focused for "+elapsed))

	if n := len(t.sess.Interruptions()); n > 0 {
		s.WriteString(t.style.hint.Render(fmt.Sprintf(" with %d interruptions", n)))
	}

	return s.String()
}

func (t *Timer) savedView() string {
	return t.style.secondary.Render(fmt.Sprintf(
		"Session paused with %s left. Run `blinkrail resume` to continue.",
		timeutil.Clock(t.sess.Remaining()),
	))
}

func (t *Timer) View() string {
	var view string

	switch {
	case t.sess.State() == session.Completed:
		view = t.summaryView()
	case t.quitting && t.saved:
		view = t.savedView()
	default:
		view = t.timerView()
	}

	if t.err != nil {
		view += "\n\n" + t.style.err.Render(t.err.Error())
	}

	return t.style.base.Render(view) + "\n"
}
