package dto

import "github.com/course-compass/course-compass-api/internal/models"

// SearchCoursesResponse wraps normalized search results.
type SearchCoursesResponse struct {
	Query   string          `json:"query"`
	Results []models.Course `json:"results"`
	Count   int             `json:"count"`
}
