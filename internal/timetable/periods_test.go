package timetable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/course-compass/course-compass-api/internal/models"
)

func TestPeriodTableDeclarationOrder(t *testing.T) {
	table := DefaultPeriodTable()

	// "10" sits between "9" and "A", never between "1" and "2".
	d, ok := table.Distance("9", "10")
	require.True(t, ok)
	assert.Equal(t, 1, d)

	d, ok = table.Distance("10", "A")
	require.True(t, ok)
	assert.Equal(t, 1, d)

	d, ok = table.Distance("1", "10")
	require.True(t, ok)
	assert.Equal(t, 9, d)
}

func TestPeriodTableExpandInclusive(t *testing.T) {
	table := DefaultPeriodTable()

	expanded := table.Expand("9", "B")
	assert.Equal(t, []models.PeriodID{"9", "10", "A", "B"}, expanded)

	d, _ := table.Distance("9", "B")
	assert.Len(t, expanded, d+1)

	assert.Equal(t, []models.PeriodID{"4"}, table.Expand("4", "4"))
}

func TestPeriodTableExpandRejectsUnknownAndReversed(t *testing.T) {
	table := DefaultPeriodTable()

	assert.Nil(t, table.Expand("4", "Z"))
	assert.Nil(t, table.Expand("Z", "4"))
	assert.Nil(t, table.Expand("5", "3"))
}

func TestNewPeriodTableRejectsDuplicates(t *testing.T) {
	_, err := NewPeriodTable([]PeriodEntry{
		{ID: "1", Time: models.TimeRange{Start: "08:00", End: "08:50"}},
		{ID: "1", Time: models.TimeRange{Start: "09:00", End: "09:50"}},
	})
	assert.Error(t, err)
}

func TestLoadPeriodTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periods.csv")
	content := "period,start,end\n1,08:00,08:50\n2,09:00,09:50\nA,18:00,18:50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadPeriodTableFile(path)
	require.NoError(t, err)

	assert.Equal(t, []models.PeriodID{"1", "2", "A"}, table.Periods())

	tr, ok := table.TimeOf("A")
	require.True(t, ok)
	assert.Equal(t, models.TimeRange{Start: "18:00", End: "18:50"}, tr)

	// Letter period follows the digits in declaration order.
	d, ok := table.Distance("2", "A")
	require.True(t, ok)
	assert.Equal(t, 1, d)
}

func TestLoadPeriodTableFileMissing(t *testing.T) {
	_, err := LoadPeriodTableFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
