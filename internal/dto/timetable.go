package dto

import (
	"time"

	"github.com/course-compass/course-compass-api/internal/models"
)

// BuildTimetableRequest carries an inline selection for the stateless
// timetable endpoint. Course order is the assignment order.
type BuildTimetableRequest struct {
	Courses []models.Course `json:"courses" validate:"required,min=1"`
}

// TimetableResponse pairs the filled grid with its conflict report and the
// selection aggregates.
type TimetableResponse struct {
	Grid          []models.ScheduleSlot `json:"grid"`
	Conflicts     []models.Conflict     `json:"conflicts"`
	TotalCredits  int                   `json:"total_credits"`
	CategoryCount int                   `json:"category_count"`
	Courses       []models.Course       `json:"courses"`
}

// CreateSelectionRequest opens a new named selection.
type CreateSelectionRequest struct {
	Name     string          `json:"name" validate:"required"`
	Semester string          `json:"semester"`
	Courses  []models.Course `json:"courses"`
}

// AddCourseRequest appends one course to a selection.
type AddCourseRequest struct {
	Course models.Course `json:"course" validate:"required"`
}

// ExportTimetableRequest selects the rendering format.
type ExportTimetableRequest struct {
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportTimetableResponse returns the signed download handle.
type ExportTimetableResponse struct {
	ExportID    string    `json:"export_id"`
	Format      string    `json:"format"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
