// Package schedule holds the pure calendar math: week windows, exam
// countdowns and time-of-day bucketing. Nothing here touches the store.
package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateKey formats a date the way the store keys it.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// midnight truncates a time to 00:00:00 wall-clock in its own location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekDays returns the 7 calendar days of the week containing anchor,
// Sunday through Saturday. Correct across month and year boundaries.
func WeekDays(anchor time.Time) []time.Time {
	day := midnight(anchor)
	sunday := day.AddDate(0, 0, -int(day.Weekday()))

	week := make([]time.Time, 7)
	for i := range week {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}

// NextWeekAnchor shifts an anchor forward by exactly one week.
func NextWeekAnchor(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, 7)
}

// PrevWeekAnchor shifts an anchor back by exactly one week.
func PrevWeekAnchor(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, -7)
}

// WeekRangeLabel renders a week as "Jan 5 - 11, 2025", repeating the
// month abbreviation when the week straddles a month boundary.
func WeekRangeLabel(week []time.Time) string {
	start, end := week[0], week[len(week)-1]

	startMonth := start.Format("Jan")
	endMonth := end.Format("Jan")

	if startMonth == endMonth {
		return fmt.Sprintf("%s %d - %d, %d", startMonth, start.Day(), end.Day(), start.Year())
	}
	return fmt.Sprintf("%s %d - %s %d, %d", startMonth, start.Day(), endMonth, end.Day(), start.Year())
}

// DaysUntil reports the whole-day countdown to target: 0 for today,
// 1 for tomorrow, negative for past dates.
func DaysUntil(target time.Time) int {
	return DaysUntilAt(target, time.Now())
}

// DaysUntilAt is the injectable-now core: both sides truncate to
// midnight and the difference rounds up, so a shortened DST day still
// counts as one.
func DaysUntilAt(target, now time.Time) int {
	diff := midnight(target).Sub(midnight(now))

	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// SameDay reports whether two times fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// FormatDuration renders minutes as "45 min", "2 hr" or "1 hr 30 min".
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", mins)
	case mins == 0:
		return fmt.Sprintf("%d hr", hours)
	default:
		return fmt.Sprintf("%d hr %d min", hours, mins)
	}
}
