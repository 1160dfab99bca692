package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/models"
	"github.com/course-compass/course-compass-api/internal/service"
	"github.com/course-compass/course-compass-api/pkg/export"
	"github.com/course-compass/course-compass-api/pkg/storage"
)

type selectionRepoMock struct {
	selections map[string]*models.Selection
}

func newSelectionRepoMock() *selectionRepoMock {
	return &selectionRepoMock{selections: make(map[string]*models.Selection)}
}

func (r *selectionRepoMock) Create(ctx context.Context, selection *models.Selection) error {
	if selection.ID == "" {
		selection.ID = "sel-1"
	}
	copied := *selection
	r.selections[selection.ID] = &copied
	return nil
}

func (r *selectionRepoMock) FindByID(ctx context.Context, id string) (*models.Selection, error) {
	selection, ok := r.selections[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *selection
	copied.Courses = append([]models.Course(nil), selection.Courses...)
	return &copied, nil
}

func (r *selectionRepoMock) List(ctx context.Context) ([]models.Selection, error) {
	out := make([]models.Selection, 0, len(r.selections))
	for _, selection := range r.selections {
		out = append(out, *selection)
	}
	return out, nil
}

func (r *selectionRepoMock) UpdateCourses(ctx context.Context, selection *models.Selection) error {
	copied := *selection
	r.selections[selection.ID] = &copied
	return nil
}

func (r *selectionRepoMock) Delete(ctx context.Context, id string) error {
	delete(r.selections, id)
	return nil
}

func newSelectionHandlerForTest(t *testing.T, repo *selectionRepoMock) *SelectionHandler {
	t.Helper()
	selections := service.NewSelectionService(repo, nil, nil, zap.NewNop())
	timetables := newTimetableServiceForTest(t)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	exports := service.NewExportService(store, signer, service.ExportConfig{APIPrefix: "/api/v1"}, zap.NewNop(), export.NewCSVExporter(), export.NewPDFExporter())

	return NewSelectionHandler(selections, timetables, exports)
}

func TestSelectionHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSelectionHandlerForTest(t, newSelectionRepoMock())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/selections", bytes.NewBufferString(`{"name":"fall plan","semester":"113-1"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "fall plan")
}

func TestSelectionHandlerCreateMissingName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSelectionHandlerForTest(t, newSelectionRepoMock())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/selections", bytes.NewBufferString(`{"semester":"113-1"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectionHandlerGetMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSelectionHandlerForTest(t, newSelectionRepoMock())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/selections/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectionHandlerAddCourseRequiresPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newSelectionRepoMock()
	repo.selections["sel-1"] = &models.Selection{ID: "sel-1", Name: "plan"}
	handler := newSelectionHandlerForTest(t, repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/selections/sel-1/courses", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sel-1"}}

	handler.AddCourse(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectionHandlerAddAndRemoveCourse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newSelectionRepoMock()
	repo.selections["sel-1"] = &models.Selection{ID: "sel-1", Name: "plan"}
	handler := newSelectionHandlerForTest(t, repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"course":{"id":"C1","name":"Data Structures","credits":3,"time_descriptor":"Mon 1-2"}}`
	req, _ := http.NewRequest(http.MethodPost, "/selections/sel-1/courses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sel-1"}}

	handler.AddCourse(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.selections["sel-1"].Courses, 1)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	req, _ = http.NewRequest(http.MethodDelete, "/selections/sel-1/courses/C1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sel-1"}, {Key: "identifier", Value: "C1"}}

	handler.RemoveCourse(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.selections["sel-1"].Courses)
}

func TestSelectionHandlerTimetable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newSelectionRepoMock()
	repo.selections["sel-1"] = &models.Selection{
		ID:   "sel-1",
		Name: "plan",
		Courses: []models.Course{
			{ID: "C1", Credits: 3, TimeDescriptor: "Mon 1-2"},
		},
	}
	handler := newSelectionHandlerForTest(t, repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/selections/sel-1/timetable", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sel-1"}}

	handler.Timetable(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalCredits int `json:"total_credits"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.TotalCredits)
}

func TestSelectionHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newSelectionRepoMock()
	repo.selections["sel-1"] = &models.Selection{
		ID:   "sel-1",
		Name: "plan",
		Courses: []models.Course{
			{ID: "C1", Name: "Data Structures", Credits: 3, TimeDescriptor: "Mon 1-2"},
		},
	}
	handler := newSelectionHandlerForTest(t, repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/selections/sel-1/export", bytes.NewBufferString(`{"format":"csv"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sel-1"}}

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/exports/")
}

func TestSelectionHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newSelectionRepoMock()
	repo.selections["sel-1"] = &models.Selection{ID: "sel-1", Name: "plan"}
	handler := newSelectionHandlerForTest(t, repo)

	// A 204 body-less status only flushes through a real router, so mount
	// the handler instead of invoking it on a bare test context.
	r := gin.New()
	r.DELETE("/selections/:id", handler.Delete)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/selections/sel-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.selections)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/selections/missing", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
