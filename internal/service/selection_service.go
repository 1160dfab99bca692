package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/dto"
	"github.com/course-compass/course-compass-api/internal/models"
	appErrors "github.com/course-compass/course-compass-api/pkg/errors"
)

type selectionRepository interface {
	Create(ctx context.Context, selection *models.Selection) error
	FindByID(ctx context.Context, id string) (*models.Selection, error)
	List(ctx context.Context) ([]models.Selection, error)
	UpdateCourses(ctx context.Context, selection *models.Selection) error
	Delete(ctx context.Context, id string) error
}

// SelectionService manages named course selections. Adding a course an
// identifier at a time resolves it through the catalog first so selections
// only ever hold normalized courses.
type SelectionService struct {
	repo      selectionRepository
	search    *SearchService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSelectionService builds the service.
func NewSelectionService(repo selectionRepository, search *SearchService, validate *validator.Validate, logger *zap.Logger) *SelectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionService{repo: repo, search: search, validator: validate, logger: logger}
}

// Create opens a new named selection.
func (s *SelectionService) Create(ctx context.Context, req dto.CreateSelectionRequest) (*models.Selection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}

	selection := &models.Selection{Name: req.Name, Semester: req.Semester}
	for _, course := range req.Courses {
		selection.Add(course)
	}
	if err := s.repo.Create(ctx, selection); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create selection")
	}
	return selection, nil
}

// Get loads one selection.
func (s *SelectionService) Get(ctx context.Context, id string) (*models.Selection, error) {
	selection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load selection")
	}
	return selection, nil
}

// List returns all selections, newest first.
func (s *SelectionService) List(ctx context.Context) ([]models.Selection, error) {
	selections, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list selections")
	}
	return selections, nil
}

// AddCourse appends a course to a selection. Re-adding an already selected
// course is a no-op, not an error.
func (s *SelectionService) AddCourse(ctx context.Context, id string, req dto.AddCourseRequest) (*models.Selection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	selection, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if selection.Add(req.Course) {
		if err := s.repo.UpdateCourses(ctx, selection); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update selection")
		}
	}
	return selection, nil
}

// AddCourseByIdentifier resolves the identifier through the catalog and adds
// the resulting course.
func (s *SelectionService) AddCourseByIdentifier(ctx context.Context, id, identifier string) (*models.Selection, error) {
	if s.search == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "course lookup is not configured")
	}
	course, err := s.search.FindCourse(ctx, identifier)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "course lookup failed")
	}
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return s.AddCourse(ctx, id, dto.AddCourseRequest{Course: *course})
}

// RemoveCourse drops a course from a selection. Removing an absent course is
// a no-op.
func (s *SelectionService) RemoveCourse(ctx context.Context, id, courseID string) (*models.Selection, error) {
	selection, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if selection.Remove(courseID) {
		if err := s.repo.UpdateCourses(ctx, selection); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update selection")
		}
	}
	return selection, nil
}

// Delete removes a selection entirely.
func (s *SelectionService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete selection")
	}
	return nil
}
