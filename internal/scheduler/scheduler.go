package scheduler

import (
	"math/rand"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

// Scheduler runs the greedy auto-assign heuristic over a date range. All of
// its inputs are prefetched snapshots; Run touches no storage and no clock, so
// a fixed-seed run over fixed inputs is fully reproducible.
type Scheduler struct {
	rng        *rand.Rand
	employees  []*domain.User
	labels     []*domain.ShiftLabel          // active labels in creation order
	rules      map[int64][]*domain.Rule      // employeeID -> rules
	offDays    map[int64]map[string]struct{} // employeeID -> set of "2006-01-02" dates
	weekCounts map[int64]map[string]int32    // employeeID -> week-start date -> assigned count
}

// New builds a scheduler over the given snapshots. offDays holds approved
// leave dates per employee; weekCounts is the seeded weekly-count table
// (counts from persisted shifts outside the range being regenerated). A nil
// rng falls back to a time-seeded source; tests pass a fixed seed.
func New(employees []*domain.User, labels []*domain.ShiftLabel, rules map[int64][]*domain.Rule, offDays map[int64][]string, weekCounts map[int64]map[string]int32, rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	offDaySets := make(map[int64]map[string]struct{}, len(offDays))
	for employeeID, dates := range offDays {
		set := make(map[string]struct{}, len(dates))
		for _, date := range dates {
			set[date] = struct{}{}
		}
		offDaySets[employeeID] = set
	}

	if weekCounts == nil {
		weekCounts = map[int64]map[string]int32{}
	}

	return &Scheduler{
		rng:        rng,
		employees:  employees,
		labels:     labels,
		rules:      rules,
		offDays:    offDaySets,
		weekCounts: weekCounts,
	}
}

// Run computes assignments for every date in [dateFrom, dateTo] inclusive, in
// calendar order. Each (date, label) slot gets a fresh shuffle of the roster
// and takes the first employee that passes every check; slots nobody can fill
// are only counted.
func (s *Scheduler) Run(dateFrom, dateTo time.Time) *Result {
	result := &Result{
		Days: []DaySchedule{},
	}

	for date := dateFrom; !date.After(dateTo); date = date.AddDate(0, 0, 1) {
		weekday := domain.WeekdayOf(date)
		dateString := date.Format(domain.DateLayout)
		weekStart := domain.WeekStart(date).Format(domain.DateLayout)

		assignments := []domain.Assignment{}
		usedToday := map[int64]struct{}{}

		for _, label := range s.labels {
			if !label.AppliesOn(weekday) {
				continue
			}

			employee := s.pickEmployee(label, weekday, dateString, weekStart, usedToday)
			if employee == nil {
				result.UnfilledSlots++
				continue
			}

			assignments = append(assignments, domain.Assignment{
				Label: domain.AssignmentLabel{
					ID:   label.ID,
					Name: label.Name,
				},
				EmployeeID:      employee.ID,
				EmployeeName:    employee.FullName,
				DurationMinutes: label.DefaultDurationMinutes,
			})
			result.AssignedCount++

			usedToday[employee.ID] = struct{}{}
			if _, exists := s.weekCounts[employee.ID]; !exists {
				s.weekCounts[employee.ID] = map[string]int32{}
			}
			s.weekCounts[employee.ID][weekStart]++
		}

		result.Days = append(result.Days, DaySchedule{
			Date:        dateString,
			Assignments: assignments,
		})
	}

	return result
}

// pickEmployee scans a fresh random permutation of the roster and returns the
// first employee who is under their weekly cap, not on approved leave, not
// already assigned today and not forbidden by any rule. The per-slot shuffle
// is what spreads assignments across the roster over time.
func (s *Scheduler) pickEmployee(label *domain.ShiftLabel, weekday domain.Weekday, dateString, weekStart string, usedToday map[int64]struct{}) *domain.User {
	perm := make([]*domain.User, len(s.employees))
	copy(perm, s.employees)
	s.rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	for _, employee := range perm {
		if s.weekCounts[employee.ID][weekStart] >= employee.MaxShiftsPerWeek {
			continue
		}

		if _, off := s.offDays[employee.ID][dateString]; off {
			continue
		}

		if _, used := usedToday[employee.ID]; used {
			continue
		}

		if domain.ViolatesRules(label, weekday, s.rules[employee.ID]) {
			continue
		}

		return employee
	}

	return nil
}
