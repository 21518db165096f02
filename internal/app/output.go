package app

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/blinkrail/blinkrail/internal/ledger"
	"github.com/blinkrail/blinkrail/internal/session"
	"github.com/blinkrail/blinkrail/internal/timeutil"
	"github.com/blinkrail/blinkrail/internal/ui"
)

const (
	noPausedMsg   = "There are no paused sessions to resume"
	noSessionsMsg = "No sessions were completed in the selected period"

	dateTimeLayout = "Jan 02, 2006 03:04 PM"
)

// listEntry is a completed session as printed by list --json.
type listEntry struct {
	Session *session.Session `json:"session"`
	Rewards session.Rewards  `json:"rewards"`
}

func listEntries(sessions []*session.Session) []listEntry {
	entries := make([]listEntry, len(sessions))

	for i, s := range sessions {
		entries[i] = listEntry{Session: s, Rewards: s.CalculateRewards()}
	}

	return entries
}

func formatTime(t time.Time, ok bool) string {
	if !ok {
		return "-"
	}

	return t.Local().Format(dateTimeLayout)
}

// pausedLabel describes a paused session in the resume picker.
func pausedLabel(s *session.Session) string {
	started, ok := s.StartedAt()

	return fmt.Sprintf(
		"%s: %s left of %s",
		formatTime(started, ok),
		timeutil.Clock(s.Remaining()),
		timeutil.HumanDuration(s.Duration()),
	)
}

func printPausedTable(w io.Writer, sessions []*session.Session) error {
	data := [][]string{
		{"#", "STARTED", "DURATION", "REMAINING", "PROGRESS", "INTERRUPTIONS"},
	}

	for i, s := range sessions {
		started, ok := s.StartedAt()

		data = append(data, []string{
			strconv.Itoa(i + 1),
			formatTime(started, ok),
			timeutil.HumanDuration(s.Duration()),
			timeutil.Clock(s.Remaining()),
			fmt.Sprintf("%d%%", timeutil.Round(s.Progress()*100)),
			strconv.Itoa(len(s.Interruptions())),
		})
	}

	return ui.PrintTable(data, w)
}

func printSessionsTable(w io.Writer, sessions []*session.Session) error {
	data := [][]string{
		{"#", "STARTED", "COMPLETED", "DURATION", "SPARKS", "XP", "INTERRUPTIONS"},
	}

	var sparks, xp int

	for i, s := range sessions {
		started, startedOK := s.StartedAt()
		completed, completedOK := s.CompletedAt()
		r := s.CalculateRewards()

		sparks += r.FocusSparks
		xp += r.ExperiencePoints

		sparksStr := strconv.Itoa(r.FocusSparks)
		if r.HasBonus {
			sparksStr = ui.Green(sparksStr + " *")
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			formatTime(started, startedOK),
			formatTime(completed, completedOK),
			timeutil.HumanDuration(s.Duration()),
			sparksStr,
			strconv.Itoa(r.ExperiencePoints),
			strconv.Itoa(len(s.Interruptions())),
		})
	}

	data = append(data, []string{
		"", "", "", ui.Highlight("TOTAL"),
		ui.Highlight(sparks), ui.Highlight(xp), "",
	})

	return ui.PrintTable(data, w)
}

func printStats(w io.Writer, s *Stats) error {
	fmt.Fprintf(
		w,
		"%s %s - %s\n\n",
		ui.Yellow("Reporting period:"),
		s.Since.Local().Format(dateTimeLayout),
		s.Until.Local().Format(dateTimeLayout),
	)

	t := s.Totals

	summary := [][]string{
		{"SESSIONS", "FOCUS TIME", "FOCUS SPARKS", "XP", "BONUS SESSIONS", "INTERRUPTIONS"},
		{
			strconv.Itoa(t.Sessions),
			timeutil.HumanDuration(t.FocusTime),
			strconv.Itoa(t.FocusSparks),
			strconv.Itoa(t.ExperiencePoints),
			strconv.Itoa(t.BonusSessions),
			strconv.Itoa(t.Interruptions),
		},
	}

	if err := ui.PrintTable(summary, w); err != nil {
		return err
	}

	if len(s.Daily) > 0 {
		if err := ui.PrintTable(dailyRows(s.Daily), w); err != nil {
			return err
		}
	}

	if len(s.Reasons) == 0 {
		return nil
	}

	reasons := [][]string{{"TOP INTERRUPTIONS", "COUNT"}}
	for _, r := range s.Reasons {
		reasons = append(reasons, []string{r.Reason, strconv.Itoa(r.Count)})
	}

	return ui.PrintTable(reasons, w)
}

func dailyRows(days []ledger.Day) [][]string {
	rows := [][]string{{"DAY", "SESSIONS", "FOCUS TIME", "SPARKS", "XP"}}

	for _, d := range days {
		rows = append(rows, []string{
			d.Day,
			strconv.Itoa(d.Sessions),
			timeutil.HumanDuration(d.FocusTime),
			strconv.Itoa(d.FocusSparks),
			strconv.Itoa(d.ExperiencePoints),
		})
	}

	return rows
}
