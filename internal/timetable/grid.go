package timetable

import (
	"fmt"

	"github.com/course-compass/course-compass-api/internal/models"
)

// GridTemplate enumerates the schedulable weekdays and the displayed period
// subset. The subset may be narrower than the full period table; occupancy
// pairs that fall outside it are simply not representable and get dropped at
// assignment time.
type GridTemplate struct {
	Days    []models.Weekday
	Periods []models.PeriodID
}

// NewGridTemplate validates day and period tokens against the lexicon and
// the period table. Template errors are configuration mistakes and fail
// startup rather than being silently skipped.
func NewGridTemplate(days, periods []string, table *PeriodTable) (*GridTemplate, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("grid template requires at least one weekday")
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("grid template requires at least one period")
	}
	if table == nil {
		return nil, fmt.Errorf("grid template requires a period table")
	}

	tpl := &GridTemplate{
		Days:    make([]models.Weekday, 0, len(days)),
		Periods: make([]models.PeriodID, 0, len(periods)),
	}

	seenDays := make(map[models.Weekday]struct{}, len(days))
	for _, raw := range days {
		day, ok := weekdayLexicon[raw]
		if !ok {
			return nil, fmt.Errorf("unknown grid weekday %q", raw)
		}
		if _, dup := seenDays[day]; dup {
			return nil, fmt.Errorf("duplicate grid weekday %q", raw)
		}
		seenDays[day] = struct{}{}
		tpl.Days = append(tpl.Days, day)
	}

	seenPeriods := make(map[models.PeriodID]struct{}, len(periods))
	for _, raw := range periods {
		id := models.PeriodID(raw)
		if !table.Contains(id) {
			return nil, fmt.Errorf("grid period %q is not in the period table", raw)
		}
		if _, dup := seenPeriods[id]; dup {
			return nil, fmt.Errorf("duplicate grid period %q", raw)
		}
		seenPeriods[id] = struct{}{}
		tpl.Periods = append(tpl.Periods, id)
	}

	return tpl, nil
}
