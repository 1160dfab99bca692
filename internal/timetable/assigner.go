package timetable

import (
	"github.com/course-compass/course-compass-api/internal/models"
)

// CategoryPredicate classifies a course for the category counter, e.g.
// "belongs to a security-related department".
type CategoryPredicate func(models.Course) bool

// Assigner places selected courses into the slot grid and reports the
// resulting occupancy together with every collision. It holds only the
// immutable period table and grid template, so one instance serves any
// number of assignment runs.
type Assigner struct {
	table *PeriodTable
	grid  *GridTemplate
}

// NewAssigner builds an assigner over the given table and grid template.
func NewAssigner(table *PeriodTable, grid *GridTemplate) *Assigner {
	return &Assigner{table: table, grid: grid}
}

// Table exposes the period table, used for display labels.
func (a *Assigner) Table() *PeriodTable {
	return a.table
}

// Grid exposes the grid template.
func (a *Assigner) Grid() *GridTemplate {
	return a.grid
}

// Assign walks the selection in insertion order, parses each course's
// descriptor once, and writes occupants into a freshly built grid.
//
// A slot already held by a different course is a conflict: the later course
// wins the slot (last-writer-wins) and the collision is recorded with both
// identifiers. Pairs outside the grid are dropped. Total credits are summed
// once per course regardless of how many slots it spans. The output is
// deterministic for a fixed selection order.
func (a *Assigner) Assign(selection []models.Course, category CategoryPredicate) models.TimetableResult {
	slots := make([]models.ScheduleSlot, 0, len(a.grid.Days)*len(a.grid.Periods))
	index := make(map[models.SlotRef]int, len(a.grid.Days)*len(a.grid.Periods))
	for _, day := range a.grid.Days {
		for _, period := range a.grid.Periods {
			ref := models.SlotRef{Weekday: day, Period: period}
			timeRange, _ := a.table.TimeOf(period)
			index[ref] = len(slots)
			slots = append(slots, models.ScheduleSlot{
				Weekday: day,
				Period:  period,
				Time:    timeRange,
			})
		}
	}

	result := models.TimetableResult{Conflicts: []models.Conflict{}}

	for _, course := range selection {
		result.TotalCredits += course.Credits
		if category != nil && category(course) {
			result.CategoryCount++
		}

		for _, ref := range ParseDescriptor(course.TimeDescriptor, a.table) {
			i, inGrid := index[ref]
			if !inGrid {
				continue
			}
			occupant := slots[i].CourseID
			if occupant != "" && occupant != course.ID {
				result.Conflicts = append(result.Conflicts, models.Conflict{
					Weekday:    ref.Weekday,
					Period:     ref.Period,
					PreviousID: occupant,
					CourseID:   course.ID,
				})
			}
			slots[i].CourseID = course.ID
		}
	}

	result.Slots = slots
	return result
}

// DepartmentKeywordPredicate matches courses whose host department or name
// contains any of the given keywords. Used for the security-course counter.
func DepartmentKeywordPredicate(keywords []string) CategoryPredicate {
	if len(keywords) == 0 {
		return nil
	}
	return func(course models.Course) bool {
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			if containsFold(course.HostDepartment, kw) || containsFold(course.Name, kw) {
				return true
			}
		}
		return false
	}
}
