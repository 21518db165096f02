// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"

	"github.com/blinkrail/blinkrail/internal/apperr"
)

const (
	minutesInAnHour  = 60
	secondsInAMinute = 60
)

var (
	errParseDate = &apperr.Error{
		Message: "unable to parse date %q",
	}

	errUnknownPeriod = &apperr.Error{
		Message: "unknown period %q, expected one of: %s",
	}
)

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period180Days   Period = "180days"
	Period365Days   Period = "365days"
)

// Range maps a period to the day offset of its first day relative to today.
var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period180Days:   -179,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period180Days,
	Period365Days,
}

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.TrimSpace(s))
	if slices.Contains(PeriodCollection, p) {
		return p, nil
	}

	names := make([]string, len(PeriodCollection))
	for i, v := range PeriodCollection {
		names[i] = string(v)
	}

	return "", errUnknownPeriod.Fmt(s, strings.Join(names, ", "))
}

// Bounds returns the start and end of the period relative to now. The all-time
// period starts at the zero time.
func Bounds(p Period, now time.Time) (start, end time.Time) {
	end = RoundToEnd(now)

	switch p {
	case PeriodAllTime:
		return time.Time{}, end
	case PeriodYesterday:
		y := now.AddDate(0, 0, -1)
		return RoundToStart(y), RoundToEnd(y)
	}

	return RoundToStart(now.AddDate(0, 0, Range[p])), end
}

// FromStr parses an absolute or relative date ("2024-05-01 09:00",
// "20 minutes ago") relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	cfg := &dps.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dps.Past,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, errParseDate.Fmt(s).Wrap(err)
	}

	if dt.Time.IsZero() {
		return time.Time{}, errParseDate.Fmt(s)
	}

	return dt.Time, nil
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val float64) (mins, secs int) {
	total := Round(val)
	if total < 0 {
		total = 0
	}

	return total / secondsInAMinute, total % secondsInAMinute
}

// Clock formats a duration as MM:SS. Durations of an hour or more keep
// counting minutes past 59.
func Clock(d time.Duration) string {
	m, s := SecsToMinsAndSecs(d.Seconds())

	return fmt.Sprintf("%02d:%02d", m, s)
}

// HumanDuration formats a duration as "1h 05m" or "25m".
func HumanDuration(d time.Duration) string {
	hrs, mins := MinsToHoursAndMins(int(d / time.Minute))
	if hrs == 0 {
		return fmt.Sprintf("%dm", mins)
	}

	return fmt.Sprintf("%dh %02dm", hrs, mins)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// DayKey formats a time as the calendar day it falls on.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// keyLayout is RFC 3339 with a fixed number of fractional digits so that keys
// sort in time order.
const keyLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}
