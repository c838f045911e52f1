// Package dates provides the calendar-window and formatting helpers used by
// dashboards, reports, and aggregation. All functions are pure over their
// inputs; the ones that depend on the current moment take it explicitly so
// callers and tests control the clock.
package dates

import (
	"fmt"
	"time"
)

// Layouts for human-readable and input-field formats.
const (
	dateLayout      = "2 Jan 2006"
	timeLayout      = "15:04"
	dateTimeLayout  = "2 Jan 2006 15:04"
	inputDateLayout = "2006-01-02"
	inputTimeLayout = "15:04"
	inputFullLayout = "2006-01-02T15:04"
)

// DateRange bounds a report period with calendar-date strings (YYYY-MM-DD).
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ParseTimestamp parses an RFC3339 timestamp or a bare YYYY-MM-DD date.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(inputDateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatDate renders t as a human-readable date, e.g. "5 Mar 2025".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatTime renders the time of day of t, e.g. "14:30".
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// FormatDateTime renders t as date plus time of day.
func FormatDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// FormatDateTimeShort renders t relative to now: "Just now" under a minute,
// then minutes, hours, and days ago (singular when the count is 1), falling
// back to FormatDate at seven days and beyond.
func FormatDateTimeShort(t, now time.Time) string {
	diff := now.Sub(t)
	mins := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%d min%s ago", mins, plural(mins))
	case hours < 24:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case days < 7:
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	default:
		return FormatDate(t)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Today returns now's calendar date as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(inputDateLayout)
}

// Yesterday returns the calendar date 24 hours before now.
func Yesterday(now time.Time) string {
	return now.Add(-24 * time.Hour).Format(inputDateLayout)
}

// WeekAgo returns the calendar date 7 days before now.
func WeekAgo(now time.Time) string {
	return now.Add(-7 * 24 * time.Hour).Format(inputDateLayout)
}

// MonthAgo returns the calendar date 30 days before now.
func MonthAgo(now time.Time) string {
	return now.Add(-30 * 24 * time.Hour).Format(inputDateLayout)
}

// StartOfWeek returns the calendar date of the most recent Sunday.
func StartOfWeek(now time.Time) string {
	return now.AddDate(0, 0, -int(now.Weekday())).Format(inputDateLayout)
}

// StartOfMonth returns the calendar date of the first of now's month.
func StartOfMonth(now time.Time) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.Format(inputDateLayout)
}

// IsToday reports whether t falls on now's calendar day.
func IsToday(t, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

// IsThisWeek reports whether t falls within the rolling 7-day window ending
// at now. This is deliberately not the calendar week.
func IsThisWeek(t, now time.Time) bool {
	return !t.Before(now.Add(-7 * 24 * time.Hour))
}

// IsThisMonth reports whether t falls within the rolling 30-day window ending
// at now. This is deliberately not the calendar month.
func IsThisMonth(t, now time.Time) bool {
	return !t.Before(now.Add(-30 * 24 * time.Hour))
}

// FormatDateForInput renders t for a date input field (YYYY-MM-DD).
func FormatDateForInput(t time.Time) string {
	return t.Format(inputDateLayout)
}

// FormatTimeForInput renders t for a time input field (HH:MM).
func FormatTimeForInput(t time.Time) string {
	return t.Format(inputTimeLayout)
}

// FormatDateTimeForInput renders t for a datetime input field
// (YYYY-MM-DDTHH:MM).
func FormatDateTimeForInput(t time.Time) string {
	return t.Format(inputFullLayout)
}

// GetDateRange returns the report bounds for a period. "today" starts at
// midnight of the current calendar day; "week", "month", and "year" are
// rolling 7/30/365-day windows ending at now. Unknown periods default to the
// weekly window.
func GetDateRange(period string, now time.Time) DateRange {
	var start time.Time
	switch period {
	case "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		start = now.Add(-7 * 24 * time.Hour)
	case "month":
		start = now.Add(-30 * 24 * time.Hour)
	case "year":
		start = now.Add(-365 * 24 * time.Hour)
	default:
		start = now.Add(-7 * 24 * time.Hour)
	}
	return DateRange{
		StartDate: FormatDateForInput(start),
		EndDate:   FormatDateForInput(now),
	}
}
