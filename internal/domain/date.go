package domain

import "time"

// DateLayout is the wire format for calendar dates. The campsite operates on
// whole days only; no booking carries a time-of-day component.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC so that all date arithmetic happens at day
// granularity regardless of the caller's location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day.
func Today() time.Time {
	return Day(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD string into a day-granular time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// FormatDate renders a day-granular time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// DefaultWindow returns the default query window starting at the given day:
// one month ahead, minus a day, end inclusive.
func DefaultWindow(start time.Time) (time.Time, time.Time) {
	start = Day(start)
	return start, start.AddDate(0, 1, -1)
}
