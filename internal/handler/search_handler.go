package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/course-compass/course-compass-api/internal/service"
	appErrors "github.com/course-compass/course-compass-api/pkg/errors"
	"github.com/course-compass/course-compass-api/pkg/response"
)

// SearchHandler exposes the course discovery endpoints.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler constructs the handler.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Search godoc
// @Summary Semantic course search
// @Tags Courses
// @Produce json
// @Param q query string true "Free-text query"
// @Param departments query []string false "Department filter, repeatable"
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Envelope
// @Router /courses/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "q required"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	result := h.search.Search(c.Request.Context(), query, c.QueryArray("departments"), limit)
	response.JSON(c, http.StatusOK, result, nil)
}

// GetCourse godoc
// @Summary Look up one course by identifier or code
// @Tags Courses
// @Produce json
// @Param identifier path string true "Course identifier"
// @Success 200 {object} response.Envelope
// @Router /courses/{identifier} [get]
func (h *SearchHandler) GetCourse(c *gin.Context) {
	course, err := h.search.FindCourse(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if course == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "course not found"))
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}
