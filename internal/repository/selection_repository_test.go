package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/course-compass/course-compass-api/internal/models"
)

func newSelectionMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSelectionRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newSelectionMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	mock.ExpectExec("INSERT INTO selections").
		WithArgs(sqlmock.AnyArg(), "fall plan", "113-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	selection := &models.Selection{
		Name:     "fall plan",
		Semester: "113-1",
		Courses: []models.Course{
			{ID: "CSIE1212", Identifier: "CSIE1212", Name: "Data Structures", Credits: 3},
		},
	}
	err := repo.Create(context.Background(), selection)
	require.NoError(t, err)
	assert.NotEmpty(t, selection.ID)
	assert.False(t, selection.CreatedAt.IsZero())

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "semester", "courses", "created_at", "updated_at"}).
		AddRow("sel-1", "fall plan", "113-1", `[{"id":"CSIE1212","identifier":"CSIE1212","name":"Data Structures","credits":3}]`, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, semester, courses, created_at, updated_at FROM selections WHERE id = $1")).
		WithArgs("sel-1").
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), "sel-1")
	require.NoError(t, err)
	assert.Equal(t, "sel-1", found.ID)
	require.Len(t, found.Courses, 1)
	assert.Equal(t, "Data Structures", found.Courses[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepositoryList(t *testing.T) {
	db, mock, cleanup := newSelectionMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "semester", "courses", "created_at", "updated_at"}).
		AddRow("sel-2", "spring plan", "113-2", `[]`, now, now).
		AddRow("sel-1", "fall plan", "113-1", `[]`, now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, name, semester, courses, created_at, updated_at FROM selections ORDER BY created_at DESC").
		WillReturnRows(rows)

	selections, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, selections, 2)
	assert.Equal(t, "spring plan", selections[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepositoryUpdateCourses(t *testing.T) {
	db, mock, cleanup := newSelectionMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	mock.ExpectExec("UPDATE selections SET courses").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "sel-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCourses(context.Background(), &models.Selection{ID: "sel-1"})
	require.NoError(t, err)

	mock.ExpectExec("UPDATE selections SET courses").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateCourses(context.Background(), &models.Selection{ID: "missing"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newSelectionMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	mock.ExpectExec("DELETE FROM selections").
		WithArgs("sel-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "sel-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
