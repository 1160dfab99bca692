package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/course-compass/course-compass-api/internal/dto"
	"github.com/course-compass/course-compass-api/internal/models"
	"github.com/course-compass/course-compass-api/internal/service"
	appErrors "github.com/course-compass/course-compass-api/pkg/errors"
	"github.com/course-compass/course-compass-api/pkg/response"
)

// SelectionHandler exposes named selection management and the derived
// timetable and export views.
type SelectionHandler struct {
	selections *service.SelectionService
	timetables *service.TimetableService
	exports    *service.ExportService
}

// NewSelectionHandler constructs the handler.
func NewSelectionHandler(selections *service.SelectionService, timetables *service.TimetableService, exports *service.ExportService) *SelectionHandler {
	return &SelectionHandler{selections: selections, timetables: timetables, exports: exports}
}

// Create godoc
// @Summary Create a named course selection
// @Tags Selections
// @Accept json
// @Produce json
// @Param payload body dto.CreateSelectionRequest true "Selection"
// @Success 201 {object} response.Envelope
// @Router /selections [post]
func (h *SelectionHandler) Create(c *gin.Context) {
	var req dto.CreateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	selection, err := h.selections.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, selection)
}

// List godoc
// @Summary List selections
// @Tags Selections
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /selections [get]
func (h *SelectionHandler) List(c *gin.Context) {
	selections, err := h.selections.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selections, nil)
}

// Get godoc
// @Summary Fetch one selection
// @Tags Selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 200 {object} response.Envelope
// @Router /selections/{id} [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	selection, err := h.selections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selection, nil)
}

type addCoursePayload struct {
	Identifier string         `json:"identifier"`
	Course     *models.Course `json:"course"`
}

// AddCourse godoc
// @Summary Add a course to a selection
// @Description Accepts either a full normalized course or a bare identifier
// @Description which is resolved through the upstream catalog. Re-adding an
// @Description already selected course is a no-op.
// @Tags Selections
// @Accept json
// @Produce json
// @Param id path string true "Selection ID"
// @Param payload body addCoursePayload true "Course or identifier"
// @Success 200 {object} response.Envelope
// @Router /selections/{id}/courses [post]
func (h *SelectionHandler) AddCourse(c *gin.Context) {
	var payload addCoursePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	var (
		selection *models.Selection
		err       error
	)
	switch {
	case payload.Course != nil && payload.Course.ID != "":
		selection, err = h.selections.AddCourse(c.Request.Context(), c.Param("id"), dto.AddCourseRequest{Course: *payload.Course})
	case payload.Identifier != "":
		selection, err = h.selections.AddCourseByIdentifier(c.Request.Context(), c.Param("id"), payload.Identifier)
	default:
		err = appErrors.Clone(appErrors.ErrValidation, "course or identifier required")
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selection, nil)
}

// RemoveCourse godoc
// @Summary Remove a course from a selection
// @Tags Selections
// @Produce json
// @Param id path string true "Selection ID"
// @Param identifier path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /selections/{id}/courses/{identifier} [delete]
func (h *SelectionHandler) RemoveCourse(c *gin.Context) {
	selection, err := h.selections.RemoveCourse(c.Request.Context(), c.Param("id"), c.Param("identifier"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selection, nil)
}

// Delete godoc
// @Summary Delete a selection
// @Tags Selections
// @Param id path string true "Selection ID"
// @Success 204
// @Router /selections/{id} [delete]
func (h *SelectionHandler) Delete(c *gin.Context) {
	if err := h.selections.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Timetable godoc
// @Summary Build the weekly grid for a stored selection
// @Tags Selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 200 {object} response.Envelope
// @Router /selections/{id}/timetable [get]
func (h *SelectionHandler) Timetable(c *gin.Context) {
	selection, err := h.selections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result := h.timetables.BuildFromCourses(selection.Courses)
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Export a selection's timetable as CSV or PDF
// @Tags Selections
// @Accept json
// @Produce json
// @Param id path string true "Selection ID"
// @Param payload body dto.ExportTimetableRequest true "Export format"
// @Success 200 {object} response.Envelope
// @Router /selections/{id}/export [post]
func (h *SelectionHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrDisabled, "exports are not enabled"))
		return
	}

	var req dto.ExportTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	selection, err := h.selections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	view := h.timetables.BuildFromCourses(selection.Courses)
	result, err := h.exports.Generate(view, req.Format, selection.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
