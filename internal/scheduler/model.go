package scheduler

import "github.com/shiftwise-dev/shiftwise/backend/internal/domain"

// DaySchedule is the computed assignment list for one date, in label order.
type DaySchedule struct {
	Date        string              `json:"date"`
	Assignments []domain.Assignment `json:"assignments"`
}

// Result of one engine run. Unfilled slots are data, not errors: a label that
// applied to a date but found no qualifying employee.
type Result struct {
	Days          []DaySchedule `json:"days"`
	AssignedCount int           `json:"assignedCount"`
	UnfilledSlots int           `json:"unfilledSlots"`
}
