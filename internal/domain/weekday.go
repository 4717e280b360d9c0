package domain

import "time"

// Weekday is the canonical weekday enumeration shared between rule payloads,
// shift label applicability and the engine's date arithmetic: 1=Monday ... 7=Sunday.
type Weekday int32

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return "Invalid"
	}
	return weekdayNames[d]
}

func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// WeekdayOf converts from the standard library's Sunday-based numbering.
// This is the only place the two conventions meet.
func WeekdayOf(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekday(t.Weekday())
}

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// WeekStart returns the Monday of the week containing t, truncated to midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return t.AddDate(0, 0, -int(WeekdayOf(t)-Monday))
}

// WeekEnd returns the Sunday of the week containing t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}
