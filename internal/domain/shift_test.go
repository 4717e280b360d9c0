package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func assignment(labelID, employeeID int64, name string) Assignment {
	return Assignment{
		Label:           AssignmentLabel{ID: labelID, Name: "Label"},
		EmployeeID:      employeeID,
		EmployeeName:    name,
		DurationMinutes: 240,
	}
}

func TestStripUnassigned(t *testing.T) {
	input := []Assignment{
		assignment(1, 10, "Amy"),
		assignment(2, UnassignedEmployeeID, ""),
		assignment(3, 11, "Carl"),
		assignment(4, UnassignedEmployeeID, ""),
	}

	got := StripUnassigned(input)

	require.Len(t, got, 2)
	require.Equal(t, int64(10), got[0].EmployeeID)
	require.Equal(t, int64(11), got[1].EmployeeID)
}

func TestStripUnassignedEmpty(t *testing.T) {
	require.Empty(t, StripUnassigned(nil))
	require.Empty(t, StripUnassigned([]Assignment{assignment(1, UnassignedEmployeeID, "")}))
}

func TestMergeAssignmentsOrderAndStripping(t *testing.T) {
	stored := []Assignment{
		assignment(1, 10, "Amy"),
		assignment(2, 11, "Carl"),
	}
	incoming := []Assignment{
		assignment(2, UnassignedEmployeeID, ""),
		assignment(3, 12, "Dana"),
	}

	got := MergeAssignments(stored, incoming)

	require.Len(t, got, 3)
	require.Equal(t, int64(10), got[0].EmployeeID)
	require.Equal(t, int64(11), got[1].EmployeeID)
	require.Equal(t, int64(12), got[2].EmployeeID)
}

func TestMergeAssignmentsKeepsDuplicates(t *testing.T) {
	stored := []Assignment{assignment(1, 10, "Amy")}
	incoming := []Assignment{assignment(1, 10, "Amy")}

	got := MergeAssignments(stored, incoming)

	require.Len(t, got, 2)
}

func TestSwapAssignmentEmployee(t *testing.T) {
	assignments := []Assignment{
		assignment(1, 10, "Amy"),
		assignment(2, 10, "Amy"),
		assignment(2, 11, "Carl"),
	}
	to := &User{ID: 12, FullName: "Dana"}

	swapped := SwapAssignmentEmployee(assignments, 2, 10, to)

	require.True(t, swapped)
	require.Equal(t, int64(10), assignments[0].EmployeeID)
	require.Equal(t, int64(12), assignments[1].EmployeeID)
	require.Equal(t, "Dana", assignments[1].EmployeeName)
	require.Equal(t, int64(11), assignments[2].EmployeeID)
}

func TestSwapAssignmentEmployeeNoMatch(t *testing.T) {
	assignments := []Assignment{assignment(1, 10, "Amy")}
	to := &User{ID: 12, FullName: "Dana"}

	require.False(t, SwapAssignmentEmployee(assignments, 1, 99, to))
	require.False(t, SwapAssignmentEmployee(assignments, 99, 10, to))
	require.Equal(t, int64(10), assignments[0].EmployeeID)
	require.Equal(t, "Amy", assignments[0].EmployeeName)
}

func TestSwapAssignmentEmployeeReplacesFirstMatchOnly(t *testing.T) {
	assignments := []Assignment{
		assignment(1, 10, "Amy"),
		assignment(1, 10, "Amy"),
	}
	to := &User{ID: 12, FullName: "Dana"}

	require.True(t, SwapAssignmentEmployee(assignments, 1, 10, to))
	require.Equal(t, int64(12), assignments[0].EmployeeID)
	require.Equal(t, int64(10), assignments[1].EmployeeID)
}
