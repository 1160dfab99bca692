package service

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/dto"
	"github.com/course-compass/course-compass-api/internal/models"
	"github.com/course-compass/course-compass-api/pkg/export"
	"github.com/course-compass/course-compass-api/pkg/storage"
)

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	return NewExportService(store, signer, ExportConfig{APIPrefix: "/api/v1"}, zap.NewNop(), export.NewCSVExporter(), export.NewPDFExporter())
}

func sampleTimetableView() *dto.TimetableResponse {
	return &dto.TimetableResponse{
		Grid: []models.ScheduleSlot{
			{Weekday: "Mon", Period: "1", Time: models.TimeRange{Start: "08:10", End: "09:00"}, CourseID: "C1"},
			{Weekday: "Mon", Period: "2", Time: models.TimeRange{Start: "09:10", End: "10:00"}},
			{Weekday: "Tue", Period: "1", Time: models.TimeRange{Start: "08:10", End: "09:00"}},
			{Weekday: "Tue", Period: "2", Time: models.TimeRange{Start: "09:10", End: "10:00"}, CourseID: "C2"},
		},
		Courses: []models.Course{
			{ID: "C1", Name: "資料結構"},
			{ID: "C2", Name: "作業系統"},
		},
	}
}

func TestExportServiceGenerateCSVAndDownload(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.Generate(sampleTimetableView(), "csv", "113-1 Timetable")
	require.NoError(t, err)
	assert.Equal(t, "csv", result.Format)
	assert.Contains(t, result.DownloadURL, "/api/v1/exports/")
	assert.True(t, result.ExpiresAt.After(time.Now()))

	token := result.DownloadURL[strings.LastIndex(result.DownloadURL, "/")+1:]
	file, relPath, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer file.Close()
	assert.Contains(t, relPath, result.ExportID)

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "資料結構 (C1)")
	assert.Contains(t, text, "作業系統 (C2)")
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.Generate(sampleTimetableView(), "pdf", "")
	require.NoError(t, err)
	assert.Equal(t, "pdf", result.Format)

	token := result.DownloadURL[strings.LastIndex(result.DownloadURL, "/")+1:]
	file, _, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer file.Close()

	header := make([]byte, 4)
	_, err = io.ReadFull(file, header)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(header))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.Generate(sampleTimetableView(), "xlsx", "")
	assert.Error(t, err)
}

func TestExportServiceRejectsTamperedToken(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.Generate(sampleTimetableView(), "csv", "")
	require.NoError(t, err)

	token := result.DownloadURL[strings.LastIndex(result.DownloadURL, "/")+1:]
	_, _, err = svc.OpenDownload(token + "x")
	assert.Error(t, err)
}

func TestBuildTimetableDatasetLayout(t *testing.T) {
	dataset := buildTimetableDataset(sampleTimetableView())

	assert.Equal(t, []string{"Period", "Time", "Mon", "Tue"}, dataset.Headers)
	require.Len(t, dataset.Rows, 2)
	assert.Equal(t, "1", dataset.Rows[0]["Period"])
	assert.Equal(t, "08:10-09:00", dataset.Rows[0]["Time"])
	assert.Equal(t, "資料結構 (C1)", dataset.Rows[0]["Mon"])
	assert.Equal(t, "", dataset.Rows[0]["Tue"])
	assert.Equal(t, "作業系統 (C2)", dataset.Rows[1]["Tue"])
}
