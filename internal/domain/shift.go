package domain

import "time"

// UnassignedEmployeeID is the sentinel clients send to mark a slot as vacated.
// Entries carrying it are stripped before anything is persisted.
const UnassignedEmployeeID int64 = 0

type AssignmentLabel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Assignment binds one employee to one shift label on a shift's date. Label
// name and employee name are snapshots taken at assignment time; they do not
// follow later renames.
type Assignment struct {
	Label           AssignmentLabel `json:"label"`
	EmployeeID      int64           `json:"employeeId"`
	EmployeeName    string          `json:"employeeName"`
	DurationMinutes int32           `json:"durationMinutes"`
}

// Shift is the roster of assignments for one shop on one calendar date.
// At most one Shift exists per (shop, date); the schema enforces it.
type Shift struct {
	ID          int64        `json:"id"`
	ShopID      int64        `json:"shopID"`
	Date        string       `json:"date"`
	Assignments []Assignment `json:"assignments"`
	CreatedAt   time.Time    `json:"createdAt"`
	Version     int32        `json:"-"`
}

// StripUnassigned returns the list without sentinel entries, preserving order.
func StripUnassigned(assignments []Assignment) []Assignment {
	result := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.EmployeeID == UnassignedEmployeeID {
			continue
		}
		result = append(result, a)
	}
	return result
}

// MergeAssignments implements the manual-entry merge: stored entries first,
// then incoming, then sentinel stripping. Entries are deliberately not
// deduplicated by label or employee.
func MergeAssignments(stored, incoming []Assignment) []Assignment {
	merged := make([]Assignment, 0, len(stored)+len(incoming))
	merged = append(merged, stored...)
	merged = append(merged, incoming...)
	return StripUnassigned(merged)
}

// SwapAssignmentEmployee replaces the employee of the first entry matching
// (labelID, fromEmployeeID) and reports whether a replacement happened.
// Duration and label snapshot are left untouched.
func SwapAssignmentEmployee(assignments []Assignment, labelID, fromEmployeeID int64, to *User) bool {
	for i := range assignments {
		if assignments[i].Label.ID == labelID && assignments[i].EmployeeID == fromEmployeeID {
			assignments[i].EmployeeID = to.ID
			assignments[i].EmployeeName = to.FullName
			return true
		}
	}
	return false
}
