package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func fixedRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func testEmployee(id int64, name string, maxShifts int32) *domain.User {
	return &domain.User{
		ID:               id,
		FullName:         name,
		MaxShiftsPerWeek: maxShifts,
		IsActive:         true,
	}
}

func testLabel(id int64, name string, days ...domain.Weekday) *domain.ShiftLabel {
	return &domain.ShiftLabel{
		ID:                     id,
		ShopID:                 1,
		Name:                   name,
		DefaultDurationMinutes: 240,
		ApplicableDays:         days,
		IsActive:               true,
	}
}

var (
	// 2025-06-02 is a Monday
	monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
)

func TestRunSingleSlot(t *testing.T) {
	employees := []*domain.User{
		testEmployee(10, "Amy", 1),
		testEmployee(11, "Carl", 1),
	}
	labels := []*domain.ShiftLabel{testLabel(1, "Opening", domain.Monday)}

	result := New(employees, labels, nil, nil, nil, fixedRNG(1)).Run(monday, monday)

	require.Len(t, result.Days, 1)
	require.Equal(t, monday.Format(domain.DateLayout), result.Days[0].Date)
	require.Len(t, result.Days[0].Assignments, 1)
	require.Equal(t, 1, result.AssignedCount)
	require.Equal(t, 0, result.UnfilledSlots)

	got := result.Days[0].Assignments[0]
	require.Equal(t, int64(1), got.Label.ID)
	require.Equal(t, "Opening", got.Label.Name)
	require.Equal(t, int32(240), got.DurationMinutes)
	require.Contains(t, []int64{10, 11}, got.EmployeeID)
}

func TestRunSkipsNonApplicableDays(t *testing.T) {
	employees := []*domain.User{testEmployee(10, "Amy", 7)}
	labels := []*domain.ShiftLabel{testLabel(1, "Opening", domain.Monday)}

	result := New(employees, labels, nil, nil, nil, fixedRNG(1)).Run(monday, monday.AddDate(0, 0, 1))

	require.Len(t, result.Days, 2)
	require.Len(t, result.Days[0].Assignments, 1)
	require.Empty(t, result.Days[1].Assignments)
	require.Equal(t, 0, result.UnfilledSlots)
}

func TestRunOffDayForcesOtherEmployee(t *testing.T) {
	employees := []*domain.User{
		testEmployee(10, "Amy", 7),
		testEmployee(11, "Carl", 7),
	}
	labels := []*domain.ShiftLabel{testLabel(1, "Opening", domain.Monday)}
	offDays := map[int64][]string{
		10: {monday.Format(domain.DateLayout)},
	}

	for seed := int64(0); seed < 20; seed++ {
		result := New(employees, labels, nil, offDays, nil, fixedRNG(seed)).Run(monday, monday)
		require.Len(t, result.Days[0].Assignments, 1)
		require.Equal(t, int64(11), result.Days[0].Assignments[0].EmployeeID)
	}
}

func TestRunRespectsRules(t *testing.T) {
	employees := []*domain.User{
		testEmployee(10, "Amy", 7),
		testEmployee(11, "Carl", 7),
	}
	labels := []*domain.ShiftLabel{testLabel(1, "Closing", domain.Monday)}
	rules := map[int64][]*domain.Rule{
		10: {
			{ShopID: 1, EmployeeID: 10, Kind: domain.RuleExcludeLabel, Payload: domain.RulePayload{LabelID: 1, Day: domain.Monday}},
		},
	}

	for seed := int64(0); seed < 20; seed++ {
		result := New(employees, labels, rules, nil, nil, fixedRNG(seed)).Run(monday, monday)
		require.Len(t, result.Days[0].Assignments, 1)
		require.Equal(t, int64(11), result.Days[0].Assignments[0].EmployeeID)
	}
}

func TestRunOneShiftPerEmployeePerDay(t *testing.T) {
	employees := []*domain.User{
		testEmployee(10, "Amy", 7),
		testEmployee(11, "Carl", 7),
	}
	labels := []*domain.ShiftLabel{
		testLabel(1, "Opening", domain.Monday),
		testLabel(2, "Closing", domain.Monday),
		testLabel(3, "Extra", domain.Monday),
	}

	result := New(employees, labels, nil, nil, nil, fixedRNG(3)).Run(monday, monday)

	// two employees can cover at most two of the three slots
	require.Equal(t, 2, result.AssignedCount)
	require.Equal(t, 1, result.UnfilledSlots)

	seen := map[int64]int{}
	for _, a := range result.Days[0].Assignments {
		seen[a.EmployeeID]++
	}
	for employeeID, count := range seen {
		require.Equal(t, 1, count, "employee %d assigned more than once on the same day", employeeID)
	}
}

func TestRunWeeklyCap(t *testing.T) {
	employees := []*domain.User{testEmployee(10, "Amy", 2)}
	labels := []*domain.ShiftLabel{
		testLabel(1, "Opening",
			domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday,
			domain.Friday, domain.Saturday, domain.Sunday),
	}

	result := New(employees, labels, nil, nil, nil, fixedRNG(1)).Run(monday, sunday)

	require.Equal(t, 2, result.AssignedCount)
	require.Equal(t, 5, result.UnfilledSlots)

	// the cap resets on the next Monday
	nextMonday := monday.AddDate(0, 0, 7)
	result = New(employees, labels, nil, nil, nil, fixedRNG(1)).Run(monday, nextMonday)
	require.Equal(t, 3, result.AssignedCount)
}

func TestRunSeededWeekCounts(t *testing.T) {
	employees := []*domain.User{testEmployee(10, "Amy", 3)}
	labels := []*domain.ShiftLabel{
		testLabel(1, "Opening", domain.Wednesday, domain.Thursday, domain.Friday),
	}
	weekCounts := map[int64]map[string]int32{
		10: {monday.Format(domain.DateLayout): 2},
	}

	wednesday := monday.AddDate(0, 0, 2)
	friday := monday.AddDate(0, 0, 4)
	result := New(employees, labels, nil, nil, weekCounts, fixedRNG(1)).Run(wednesday, friday)

	// two of the week's three allowed shifts are already persisted elsewhere
	require.Equal(t, 1, result.AssignedCount)
	require.Equal(t, 2, result.UnfilledSlots)
	require.Len(t, result.Days[0].Assignments, 1)
}

func TestRunUnfilledWhenNobodyQualifies(t *testing.T) {
	employees := []*domain.User{testEmployee(10, "Amy", 7)}
	labels := []*domain.ShiftLabel{testLabel(1, "Opening", domain.Monday)}
	offDays := map[int64][]string{
		10: {monday.Format(domain.DateLayout)},
	}

	result := New(employees, labels, nil, offDays, nil, fixedRNG(1)).Run(monday, monday)

	require.Empty(t, result.Days[0].Assignments)
	require.Equal(t, 0, result.AssignedCount)
	require.Equal(t, 1, result.UnfilledSlots)
}

func TestRunFixedSeedIsReproducible(t *testing.T) {
	makeInputs := func() ([]*domain.User, []*domain.ShiftLabel) {
		employees := []*domain.User{
			testEmployee(10, "Amy", 4),
			testEmployee(11, "Carl", 4),
			testEmployee(12, "Dana", 4),
			testEmployee(13, "Eric", 4),
		}
		labels := []*domain.ShiftLabel{
			testLabel(1, "Opening",
				domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday,
				domain.Friday, domain.Saturday),
			testLabel(2, "Closing",
				domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday,
				domain.Friday, domain.Saturday, domain.Sunday),
		}
		return employees, labels
	}

	employees, labels := makeInputs()
	first := New(employees, labels, nil, nil, nil, fixedRNG(42)).Run(monday, sunday)

	employees, labels = makeInputs()
	second := New(employees, labels, nil, nil, nil, fixedRNG(42)).Run(monday, sunday)

	require.Equal(t, first, second)
}

func TestRunDifferentSeedsCanDiffer(t *testing.T) {
	employees := []*domain.User{
		testEmployee(10, "Amy", 7),
		testEmployee(11, "Carl", 7),
		testEmployee(12, "Dana", 7),
		testEmployee(13, "Eric", 7),
		testEmployee(14, "Fiona", 7),
	}
	labels := []*domain.ShiftLabel{testLabel(1, "Opening", domain.Monday)}

	picked := map[int64]struct{}{}
	for seed := int64(0); seed < 50; seed++ {
		result := New(employees, labels, nil, nil, nil, fixedRNG(seed)).Run(monday, monday)
		picked[result.Days[0].Assignments[0].EmployeeID] = struct{}{}
	}

	// the per-slot shuffle must not collapse to a single employee
	require.Greater(t, len(picked), 1)
}

func TestRunDaysInCalendarOrder(t *testing.T) {
	employees := []*domain.User{testEmployee(10, "Amy", 7)}
	labels := []*domain.ShiftLabel{
		testLabel(1, "Opening",
			domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday,
			domain.Friday, domain.Saturday, domain.Sunday),
	}

	result := New(employees, labels, nil, nil, nil, fixedRNG(1)).Run(monday, sunday)

	require.Len(t, result.Days, 7)
	for i, day := range result.Days {
		require.Equal(t, monday.AddDate(0, 0, i).Format(domain.DateLayout), day.Date)
	}
}

func TestNewWithNilRNG(t *testing.T) {
	employees := []*domain.User{testEmployee(10, "Amy", 7)}
	labels := []*domain.ShiftLabel{testLabel(1, "Opening", domain.Monday)}

	result := New(employees, labels, nil, nil, nil, nil).Run(monday, monday)

	require.Equal(t, 1, result.AssignedCount)
}
