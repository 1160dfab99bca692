package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/course-compass/course-compass-api/internal/models"
)

func smallAssigner(t *testing.T) *Assigner {
	t.Helper()
	table := smallTable(t)
	grid, err := NewGridTemplate([]string{"Mon", "Tue", "Wed", "Thu", "Fri"}, []string{"1", "2", "A"}, table)
	require.NoError(t, err)
	return NewAssigner(table, grid)
}

func slotFor(t *testing.T, result models.TimetableResult, day models.Weekday, period models.PeriodID) models.ScheduleSlot {
	t.Helper()
	for _, slot := range result.Slots {
		if slot.Weekday == day && slot.Period == period {
			return slot
		}
	}
	t.Fatalf("slot (%s, %s) not in grid", day, period)
	return models.ScheduleSlot{}
}

func TestAssignPlacesNonOverlappingCourses(t *testing.T) {
	assigner := smallAssigner(t)

	result := assigner.Assign([]models.Course{
		{ID: "C1", Credits: 3, TimeDescriptor: "Mon 1-2"},
		{ID: "C2", Credits: 2, TimeDescriptor: "Tue 1, Wed A"},
	}, nil)

	assert.Empty(t, result.Conflicts)
	assert.Equal(t, "C1", slotFor(t, result, models.Monday, "1").CourseID)
	assert.Equal(t, "C1", slotFor(t, result, models.Monday, "2").CourseID)
	assert.Equal(t, "C2", slotFor(t, result, models.Tuesday, "1").CourseID)
	assert.Equal(t, "C2", slotFor(t, result, models.Wednesday, "A").CourseID)
	assert.Equal(t, 5, result.TotalCredits)
}

func TestAssignLastWriterWinsAndRecordsConflict(t *testing.T) {
	table := smallTable(t)
	grid, err := NewGridTemplate([]string{"Mon"}, []string{"1", "2", "A"}, table)
	require.NoError(t, err)
	assigner := NewAssigner(table, grid)

	result := assigner.Assign([]models.Course{
		{ID: "C1", Credits: 3, TimeDescriptor: "Mon 1-2"},
		{ID: "C2", Credits: 2, TimeDescriptor: "Mon 2"},
	}, nil)

	// Later-inserted course occupies the contested slot.
	assert.Equal(t, "C1", slotFor(t, result, models.Monday, "1").CourseID)
	assert.Equal(t, "C2", slotFor(t, result, models.Monday, "2").CourseID)

	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, models.Conflict{
		Weekday:    models.Monday,
		Period:     "2",
		PreviousID: "C1",
		CourseID:   "C2",
	}, result.Conflicts[0])
}

func TestAssignCreditsCountedOncePerCourse(t *testing.T) {
	assigner := smallAssigner(t)

	// C1 spans three slots but contributes its credits exactly once, and a
	// course with an unparseable descriptor still counts toward credits.
	result := assigner.Assign([]models.Course{
		{ID: "C1", Credits: 3, TimeDescriptor: "Mon 1-2, Tue 1"},
		{ID: "C2", Credits: 1, TimeDescriptor: "seminar, arranged"},
	}, nil)

	assert.Equal(t, 4, result.TotalCredits)
	assert.Empty(t, result.Conflicts)
}

func TestAssignDropsOutOfGridPairs(t *testing.T) {
	table := smallTable(t)
	// Display subset narrower than the table: evening period A not shown.
	grid, err := NewGridTemplate([]string{"Mon", "Tue"}, []string{"1", "2"}, table)
	require.NoError(t, err)
	assigner := NewAssigner(table, grid)

	result := assigner.Assign([]models.Course{
		{ID: "C1", Credits: 3, TimeDescriptor: "Mon 1, Mon A, Sat 1"},
	}, nil)

	// The in-grid pair lands; the evening and weekend pairs vanish without
	// affecting it.
	assert.Equal(t, "C1", slotFor(t, result, models.Monday, "1").CourseID)
	assert.Empty(t, result.Conflicts)
	occupied := 0
	for _, slot := range result.Slots {
		if slot.CourseID != "" {
			occupied++
		}
	}
	assert.Equal(t, 1, occupied)
	assert.Equal(t, 3, result.TotalCredits)
}

func TestAssignGridIsRebuiltEachRun(t *testing.T) {
	assigner := smallAssigner(t)

	first := assigner.Assign([]models.Course{{ID: "C1", Credits: 3, TimeDescriptor: "Mon 1"}}, nil)
	assert.Equal(t, "C1", slotFor(t, first, models.Monday, "1").CourseID)

	second := assigner.Assign(nil, nil)
	assert.Empty(t, slotFor(t, second, models.Monday, "1").CourseID)
	assert.Zero(t, second.TotalCredits)
}

func TestAssignDeterministicForFixedOrder(t *testing.T) {
	assigner := smallAssigner(t)
	selection := []models.Course{
		{ID: "C1", Credits: 3, TimeDescriptor: "Mon 1-2"},
		{ID: "C2", Credits: 2, TimeDescriptor: "Mon 2, Tue 1"},
		{ID: "C3", Credits: 1, TimeDescriptor: "Tue 1"},
	}

	first := assigner.Assign(selection, nil)
	second := assigner.Assign(selection, nil)
	assert.Equal(t, first, second)
}

func TestAssignSlotTimesComeFromPeriodTable(t *testing.T) {
	assigner := smallAssigner(t)

	result := assigner.Assign(nil, nil)
	slot := slotFor(t, result, models.Monday, "A")
	assert.Equal(t, models.TimeRange{Start: "18:00", End: "18:50"}, slot.Time)
}

func TestAssignCategoryCount(t *testing.T) {
	assigner := smallAssigner(t)
	predicate := DepartmentKeywordPredicate([]string{"資訊安全", "Security"})

	result := assigner.Assign([]models.Course{
		{ID: "C1", Credits: 3, HostDepartment: "資訊安全研究所", TimeDescriptor: "Mon 1"},
		{ID: "C2", Credits: 3, Name: "Intro to security engineering", TimeDescriptor: "Tue 1"},
		{ID: "C3", Credits: 3, HostDepartment: "歷史學系", TimeDescriptor: "Wed 1"},
	}, predicate)

	assert.Equal(t, 2, result.CategoryCount)
}

func TestNewGridTemplateRejectsBadTokens(t *testing.T) {
	table := smallTable(t)

	_, err := NewGridTemplate([]string{"Mon", "Funday"}, []string{"1"}, table)
	assert.Error(t, err)

	_, err = NewGridTemplate([]string{"Mon"}, []string{"9"}, table)
	assert.Error(t, err)

	_, err = NewGridTemplate([]string{"Mon", "Mon"}, []string{"1"}, table)
	assert.Error(t, err)
}
