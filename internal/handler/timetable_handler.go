package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/course-compass/course-compass-api/internal/dto"
	"github.com/course-compass/course-compass-api/internal/service"
	appErrors "github.com/course-compass/course-compass-api/pkg/errors"
	"github.com/course-compass/course-compass-api/pkg/response"
)

// TimetableHandler exposes the stateless timetable builder.
type TimetableHandler struct {
	timetables *service.TimetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(timetables *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetables: timetables}
}

// Build godoc
// @Summary Build a weekly grid from an inline course selection
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.BuildTimetableRequest true "Ordered course selection"
// @Success 200 {object} response.Envelope
// @Router /timetable [post]
func (h *TimetableHandler) Build(c *gin.Context) {
	var req dto.BuildTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	result, err := h.timetables.Build(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
