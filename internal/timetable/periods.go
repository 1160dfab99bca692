package timetable

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/course-compass/course-compass-api/internal/models"
)

// PeriodEntry pairs a period token with its wall-clock range.
type PeriodEntry struct {
	ID   models.PeriodID
	Time models.TimeRange
}

// PeriodTable is the ordered mapping from period token to time range.
// Ordering is declaration order: "10" follows "9" and the letter periods
// follow the digits, so it must never be sorted lexically or numerically.
type PeriodTable struct {
	entries []PeriodEntry
	index   map[models.PeriodID]int
}

// NewPeriodTable builds a table from ordered entries.
func NewPeriodTable(entries []PeriodEntry) (*PeriodTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("period table requires at least one entry")
	}
	index := make(map[models.PeriodID]int, len(entries))
	for i, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("period table entry %d has an empty token", i)
		}
		if _, dup := index[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate period token %q", entry.ID)
		}
		index[entry.ID] = i
	}
	return &PeriodTable{entries: append([]PeriodEntry(nil), entries...), index: index}, nil
}

// DefaultPeriodTable returns the standard fifteen teaching periods: 0-10
// followed by the evening letter periods A-D.
func DefaultPeriodTable() *PeriodTable {
	table, err := NewPeriodTable([]PeriodEntry{
		{ID: "0", Time: models.TimeRange{Start: "07:10", End: "08:00"}},
		{ID: "1", Time: models.TimeRange{Start: "08:10", End: "09:00"}},
		{ID: "2", Time: models.TimeRange{Start: "09:10", End: "10:00"}},
		{ID: "3", Time: models.TimeRange{Start: "10:20", End: "11:10"}},
		{ID: "4", Time: models.TimeRange{Start: "11:20", End: "12:10"}},
		{ID: "5", Time: models.TimeRange{Start: "12:20", End: "13:10"}},
		{ID: "6", Time: models.TimeRange{Start: "13:20", End: "14:10"}},
		{ID: "7", Time: models.TimeRange{Start: "14:20", End: "15:10"}},
		{ID: "8", Time: models.TimeRange{Start: "15:30", End: "16:20"}},
		{ID: "9", Time: models.TimeRange{Start: "16:30", End: "17:20"}},
		{ID: "10", Time: models.TimeRange{Start: "17:30", End: "18:20"}},
		{ID: "A", Time: models.TimeRange{Start: "18:25", End: "19:15"}},
		{ID: "B", Time: models.TimeRange{Start: "19:20", End: "20:10"}},
		{ID: "C", Time: models.TimeRange{Start: "20:15", End: "21:05"}},
		{ID: "D", Time: models.TimeRange{Start: "21:10", End: "22:00"}},
	})
	if err != nil {
		panic(err)
	}
	return table
}

type periodCSVRow struct {
	Period string `csv:"period"`
	Start  string `csv:"start"`
	End    string `csv:"end"`
}

// LoadPeriodTableFile reads an ordered period table from a CSV file with
// columns period,start,end. Row order defines period order.
func LoadPeriodTableFile(path string) (*PeriodTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open period table: %w", err)
	}
	defer file.Close() //nolint:errcheck

	var rows []periodCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse period table: %w", err)
	}

	entries := make([]PeriodEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, PeriodEntry{
			ID:   models.PeriodID(row.Period),
			Time: models.TimeRange{Start: row.Start, End: row.End},
		})
	}
	return NewPeriodTable(entries)
}

// Contains reports whether the token is a declared period.
func (t *PeriodTable) Contains(id models.PeriodID) bool {
	_, ok := t.index[id]
	return ok
}

// TimeOf returns the wall-clock range for a period.
func (t *PeriodTable) TimeOf(id models.PeriodID) (models.TimeRange, bool) {
	i, ok := t.index[id]
	if !ok {
		return models.TimeRange{}, false
	}
	return t.entries[i].Time, true
}

// Periods returns the tokens in declaration order.
func (t *PeriodTable) Periods() []models.PeriodID {
	ids := make([]models.PeriodID, len(t.entries))
	for i, entry := range t.entries {
		ids[i] = entry.ID
	}
	return ids
}

// Distance returns the number of steps from a to b in declaration order.
// b before a yields a negative distance.
func (t *PeriodTable) Distance(a, b models.PeriodID) (int, bool) {
	ia, ok := t.index[a]
	if !ok {
		return 0, false
	}
	ib, ok := t.index[b]
	if !ok {
		return 0, false
	}
	return ib - ia, true
}

// Expand returns every period from a to b inclusive in declaration order.
// Unknown endpoints or a reversed range yield nil.
func (t *PeriodTable) Expand(a, b models.PeriodID) []models.PeriodID {
	ia, ok := t.index[a]
	if !ok {
		return nil
	}
	ib, ok := t.index[b]
	if !ok || ib < ia {
		return nil
	}
	ids := make([]models.PeriodID, 0, ib-ia+1)
	for i := ia; i <= ib; i++ {
		ids = append(ids, t.entries[i].ID)
	}
	return ids
}

// Compare orders two declared periods by table position.
func (t *PeriodTable) Compare(a, b models.PeriodID) int {
	return t.index[a] - t.index[b]
}
