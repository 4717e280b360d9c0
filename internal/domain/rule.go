package domain

import "time"

type RuleKind string

const (
	RuleExcludeLabel RuleKind = "exclude_label"
	RuleExcludeDays  RuleKind = "exclude_days"
)

// RulePayload carries the kind-specific data. For exclude_label both LabelID
// and Day are set; for exclude_days only Day is.
type RulePayload struct {
	LabelID int64   `json:"labelId,omitempty"`
	Day     Weekday `json:"day"`
}

type Rule struct {
	ID         int64       `json:"id"`
	ShopID     int64       `json:"shopID"`
	EmployeeID int64       `json:"employeeID"`
	Kind       RuleKind    `json:"kind"`
	Payload    RulePayload `json:"payload"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ViolatesRules reports whether assigning the label on the given weekday is
// forbidden by any of the employee's rules. Rules belonging to another shop are
// skipped; any single match forbids the assignment.
func ViolatesRules(label *ShiftLabel, day Weekday, rules []*Rule) bool {
	for _, rule := range rules {
		if rule.ShopID != label.ShopID {
			continue
		}

		switch rule.Kind {
		case RuleExcludeLabel:
			if rule.Payload.LabelID == label.ID && rule.Payload.Day == day {
				return true
			}
		case RuleExcludeDays:
			if rule.Payload.Day == day {
				return true
			}
		}
	}
	return false
}
