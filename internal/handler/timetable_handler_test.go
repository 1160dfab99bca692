package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/dto"
	"github.com/course-compass/course-compass-api/internal/models"
	"github.com/course-compass/course-compass-api/internal/service"
	"github.com/course-compass/course-compass-api/internal/timetable"
)

func newTimetableServiceForTest(t *testing.T) *service.TimetableService {
	t.Helper()
	table := timetable.DefaultPeriodTable()
	grid, err := timetable.NewGridTemplate(
		[]string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		[]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		table,
	)
	require.NoError(t, err)
	assigner := timetable.NewAssigner(table, grid)
	return service.NewTimetableService(assigner, nil, nil, zap.NewNop())
}

func TestTimetableHandlerBuild(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTimetableHandler(newTimetableServiceForTest(t))

	payload, err := json.Marshal(dto.BuildTimetableRequest{Courses: []models.Course{
		{ID: "C1", Credits: 3, TimeDescriptor: "Mon 1-2"},
		{ID: "C2", Credits: 2, TimeDescriptor: "Mon 2"},
	}})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/timetable", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Build(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data dto.TimetableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Data.TotalCredits)
	require.Len(t, body.Data.Conflicts, 1)
	assert.Equal(t, "C2", body.Data.Conflicts[0].CourseID)
}

func TestTimetableHandlerBuildInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTimetableHandler(newTimetableServiceForTest(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/timetable", bytes.NewBufferString(`{"courses":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Build(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerBuildEmptySelection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewTimetableHandler(newTimetableServiceForTest(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/timetable", bytes.NewBufferString(`{"courses":[]}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Build(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
