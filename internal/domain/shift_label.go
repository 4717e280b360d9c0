package domain

import "time"

type ShiftLabel struct {
	ID                     int64     `json:"id"`
	ShopID                 int64     `json:"shopID"`
	Name                   string    `json:"name"`
	DefaultDurationMinutes int32     `json:"defaultDurationMinutes"`
	ApplicableDays         []Weekday `json:"applicableDays"`
	IsActive               bool      `json:"isActive"`
	CreatedAt              time.Time `json:"createdAt"`
	Version                int32     `json:"-"`
}

// AppliesOn reports whether the label is schedulable on the given weekday.
func (l *ShiftLabel) AppliesOn(day Weekday) bool {
	for _, d := range l.ApplicableDays {
		if d == day {
			return true
		}
	}
	return false
}
