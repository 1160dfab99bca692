package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/dto"
	"github.com/course-compass/course-compass-api/internal/models"
	"github.com/course-compass/course-compass-api/internal/timetable"
	appErrors "github.com/course-compass/course-compass-api/pkg/errors"
)

// TimetableService turns an ordered course selection into a filled weekly
// grid. The grid is recomputed from scratch on every call; nothing about a
// previous run leaks into the next.
type TimetableService struct {
	assigner  *timetable.Assigner
	category  timetable.CategoryPredicate
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService builds the service.
func NewTimetableService(assigner *timetable.Assigner, category timetable.CategoryPredicate, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{assigner: assigner, category: category, validator: validate, logger: logger}
}

// Build validates the request and runs one assignment pass.
func (s *TimetableService) Build(req dto.BuildTimetableRequest) (*dto.TimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	return s.buildFromCourses(req.Courses), nil
}

// BuildFromCourses assembles a timetable without request validation, for
// callers that already hold a stored selection.
func (s *TimetableService) BuildFromCourses(courses []models.Course) *dto.TimetableResponse {
	return s.buildFromCourses(courses)
}

func (s *TimetableService) buildFromCourses(courses []models.Course) *dto.TimetableResponse {
	result := s.assigner.Assign(courses, s.category)
	if len(result.Conflicts) > 0 {
		s.logger.Debug("timetable assignment produced conflicts",
			zap.Int("courses", len(courses)),
			zap.Int("conflicts", len(result.Conflicts)))
	}
	return &dto.TimetableResponse{
		Grid:          result.Slots,
		Conflicts:     result.Conflicts,
		TotalCredits:  result.TotalCredits,
		CategoryCount: result.CategoryCount,
		Courses:       courses,
	}
}
