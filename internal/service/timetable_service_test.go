package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/dto"
	"github.com/course-compass/course-compass-api/internal/models"
	"github.com/course-compass/course-compass-api/internal/timetable"
)

func newTimetableServiceForTest(t *testing.T) *TimetableService {
	t.Helper()
	table := timetable.DefaultPeriodTable()
	grid, err := timetable.NewGridTemplate(
		[]string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		[]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		table,
	)
	require.NoError(t, err)
	assigner := timetable.NewAssigner(table, grid)
	predicate := timetable.DepartmentKeywordPredicate([]string{"資訊安全", "security"})
	return NewTimetableService(assigner, predicate, nil, zap.NewNop())
}

func TestTimetableServiceBuild(t *testing.T) {
	svc := newTimetableServiceForTest(t)

	resp, err := svc.Build(dto.BuildTimetableRequest{Courses: []models.Course{
		{ID: "C1", Credits: 3, TimeDescriptor: "Mon 1-2"},
		{ID: "C2", Credits: 2, TimeDescriptor: "Mon 2", HostDepartment: "資訊安全研究所"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalCredits)
	assert.Equal(t, 1, resp.CategoryCount)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "C1", resp.Conflicts[0].PreviousID)
	assert.Equal(t, "C2", resp.Conflicts[0].CourseID)

	occupants := make(map[string]string)
	for _, slot := range resp.Grid {
		if slot.CourseID != "" {
			occupants[string(slot.Weekday)+"/"+string(slot.Period)] = slot.CourseID
		}
	}
	assert.Equal(t, "C1", occupants["Mon/1"])
	assert.Equal(t, "C2", occupants["Mon/2"])
}

func TestTimetableServiceBuildRejectsEmptySelection(t *testing.T) {
	svc := newTimetableServiceForTest(t)

	_, err := svc.Build(dto.BuildTimetableRequest{})
	assert.Error(t, err)
}

func TestTimetableServiceRunsAreIndependent(t *testing.T) {
	svc := newTimetableServiceForTest(t)

	first := svc.BuildFromCourses([]models.Course{{ID: "C1", TimeDescriptor: "Wed 6"}})
	second := svc.BuildFromCourses([]models.Course{{ID: "C2", TimeDescriptor: "Thu 7"}})

	for _, slot := range second.Grid {
		assert.NotEqual(t, "C1", slot.CourseID)
	}
	for _, slot := range first.Grid {
		if slot.Weekday == models.Wednesday && slot.Period == "6" {
			assert.Equal(t, "C1", slot.CourseID)
		}
	}
}
