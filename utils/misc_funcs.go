package utils

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var dayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps an english day name (case-insensitive) to time.Weekday.
func ParseWeekday(day string) (time.Weekday, bool) {
	wd, ok := dayMap[strings.ToLower(strings.TrimSpace(day))]
	return wd, ok
}

// DayName returns the lowercase english day name.
func DayName(weekday time.Weekday) string {
	return strings.ToLower(weekday.String())
}

// CombineDateTime merges a calendar date with an "HH:MM" wall-clock time.
// An unparseable time falls back to midnight.
func CombineDateTime(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}

// FormatSessionSchedule renders a session's date and interval for
// notification texts, e.g. "2024-05-01 10:00-10:30".
func FormatSessionSchedule(date time.Time, start, end string) string {
	return fmt.Sprintf("%s %s-%s", date.Format("2006-01-02"), start, end)
}

var titleCaser = cases.Title(language.English)

// TitleName normalises a person's name for display in messages.
func TitleName(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}
