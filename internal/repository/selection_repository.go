package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/course-compass/course-compass-api/internal/models"
)

// SelectionRepository persists named course selections. Courses are stored
// as a JSON document because their shape is owned by the upstream catalog,
// not by this service's schema.
type SelectionRepository struct {
	db *sqlx.DB
}

// NewSelectionRepository constructs the repository.
func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

type selectionRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Semester  string         `db:"semester"`
	Courses   types.JSONText `db:"courses"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (row *selectionRow) toModel() (*models.Selection, error) {
	selection := &models.Selection{
		ID:        row.ID,
		Name:      row.Name,
		Semester:  row.Semester,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if len(row.Courses) > 0 {
		if err := json.Unmarshal(row.Courses, &selection.Courses); err != nil {
			return nil, fmt.Errorf("decode selection courses: %w", err)
		}
	}
	return selection, nil
}

func coursesJSON(courses []models.Course) (types.JSONText, error) {
	if courses == nil {
		courses = []models.Course{}
	}
	raw, err := json.Marshal(courses)
	if err != nil {
		return nil, fmt.Errorf("encode selection courses: %w", err)
	}
	return types.JSONText(raw), nil
}

// Create inserts a new selection.
func (r *SelectionRepository) Create(ctx context.Context, selection *models.Selection) error {
	if selection.ID == "" {
		selection.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	selection.CreatedAt = now
	selection.UpdatedAt = now

	courses, err := coursesJSON(selection.Courses)
	if err != nil {
		return err
	}

	const query = `INSERT INTO selections (id, name, semester, courses, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, selection.ID, selection.Name, selection.Semester, courses, selection.CreatedAt, selection.UpdatedAt); err != nil {
		return fmt.Errorf("insert selection: %w", err)
	}
	return nil
}

// FindByID loads a selection by id.
func (r *SelectionRepository) FindByID(ctx context.Context, id string) (*models.Selection, error) {
	const query = `SELECT id, name, semester, courses, created_at, updated_at FROM selections WHERE id = $1`
	var row selectionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toModel()
}

// List returns all selections, newest first.
func (r *SelectionRepository) List(ctx context.Context) ([]models.Selection, error) {
	const query = `SELECT id, name, semester, courses, created_at, updated_at FROM selections ORDER BY created_at DESC`
	var rows []selectionRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	selections := make([]models.Selection, 0, len(rows))
	for i := range rows {
		selection, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		selections = append(selections, *selection)
	}
	return selections, nil
}

// UpdateCourses replaces the stored course list.
func (r *SelectionRepository) UpdateCourses(ctx context.Context, selection *models.Selection) error {
	selection.UpdatedAt = time.Now().UTC()

	courses, err := coursesJSON(selection.Courses)
	if err != nil {
		return err
	}

	const query = `UPDATE selections SET courses = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, courses, selection.UpdatedAt, selection.ID)
	if err != nil {
		return fmt.Errorf("update selection courses: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("selection %s not found", selection.ID)
	}
	return nil
}

// Delete removes a selection.
func (r *SelectionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM selections WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	return nil
}
