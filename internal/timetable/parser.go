package timetable

import (
	"fmt"
	"strings"

	"github.com/course-compass/course-compass-api/internal/models"
)

// scheduleWeekdays lists the weekdays in teaching order. Descriptors may
// reference all seven; the grid template decides which are schedulable.
var scheduleWeekdays = []models.Weekday{
	models.Monday,
	models.Tuesday,
	models.Wednesday,
	models.Thursday,
	models.Friday,
	models.Saturday,
	models.Sunday,
}

var weekdayLexicon = func() map[string]models.Weekday {
	m := make(map[string]models.Weekday, len(scheduleWeekdays))
	for _, day := range scheduleWeekdays {
		m[string(day)] = day
	}
	return m
}()

// WeekdayFromNumber maps an upstream weekday number to a token. Numbers 1-7
// map Monday through Sunday, 0 maps to Sunday; anything else becomes a
// synthesized fallback token that parses lexically but never matches the
// five-day grid.
func WeekdayFromNumber(n int) models.Weekday {
	switch {
	case n >= 1 && n <= 7:
		return scheduleWeekdays[n-1]
	case n == 0:
		return models.Sunday
	default:
		return models.Weekday(fmt.Sprintf("Day%d", n))
	}
}

// weekdayToken resolves one descriptor token as a weekday: a lexicon entry,
// or a synthesized "Day<n>" fallback as emitted by WeekdayFromNumber. The
// fallback keeps its periods parseable even though no grid carries the day.
func weekdayToken(token string) (models.Weekday, bool) {
	if day, ok := weekdayLexicon[token]; ok {
		return day, true
	}
	digits, ok := strings.CutPrefix(token, "Day")
	if !ok {
		return "", false
	}
	digits = strings.TrimPrefix(digits, "-")
	if digits == "" {
		return "", false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return models.Weekday(token), true
}

// ParseDescriptor converts a raw meeting-time descriptor such as
// "Mon 3-4, Wed 6" into (weekday, period) pairs. Parsing is deliberately
// lenient: an unrecognized weekday or period token drops that group only,
// and the remaining groups still parse. Pure function, no side effects.
func ParseDescriptor(descriptor string, table *PeriodTable) []models.SlotRef {
	if table == nil || strings.TrimSpace(descriptor) == "" {
		return nil
	}

	var refs []models.SlotRef
	seen := make(map[models.SlotRef]struct{})

	normalized := strings.ReplaceAll(descriptor, ",", " ")
	day := models.Weekday("")
	dayValid := false
	for _, token := range strings.Fields(normalized) {
		if parsed, ok := weekdayToken(token); ok {
			day = parsed
			dayValid = true
			continue
		}

		periods := expandPeriodSpec(token, table)
		if len(periods) == 0 {
			// Neither a weekday nor a resolvable period spec. Treat it as an
			// unrecognized weekday token so the periods that follow it are
			// skipped with it.
			dayValid = false
			continue
		}
		if !dayValid {
			continue
		}
		for _, p := range periods {
			ref := models.SlotRef{Weekday: day, Period: p}
			if _, dup := seen[ref]; dup {
				continue
			}
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}
	return refs
}

// expandPeriodSpec resolves one period token: a declared period, an
// inclusive range "a-b" expanded in table order, or a compact digit run like
// "234" as emitted by legacy upstream descriptors.
func expandPeriodSpec(token string, table *PeriodTable) []models.PeriodID {
	if start, end, ok := strings.Cut(token, "-"); ok {
		return table.Expand(models.PeriodID(start), models.PeriodID(end))
	}

	id := models.PeriodID(token)
	if table.Contains(id) {
		return []models.PeriodID{id}
	}

	// Compact run: every rune must itself be a declared period.
	runes := []rune(token)
	if len(runes) < 2 {
		return nil
	}
	periods := make([]models.PeriodID, 0, len(runes))
	for _, r := range runes {
		p := models.PeriodID(r)
		if !table.Contains(p) {
			return nil
		}
		periods = append(periods, p)
	}
	return periods
}

// RenderDescriptor is the inverse of ParseDescriptor: it renders slot pairs
// into the canonical descriptor string. Periods are grouped per weekday in
// teaching-day order, sorted in table order, and contiguous runs collapse to
// ranges, so rendering then parsing reproduces the input pair set exactly.
func RenderDescriptor(refs []models.SlotRef, table *PeriodTable) string {
	if len(refs) == 0 || table == nil {
		return ""
	}

	byDay := make(map[models.Weekday][]models.PeriodID)
	var dayOrder []models.Weekday
	for _, ref := range refs {
		if !table.Contains(ref.Period) {
			continue
		}
		if _, ok := byDay[ref.Weekday]; !ok {
			dayOrder = append(dayOrder, ref.Weekday)
		}
		byDay[ref.Weekday] = append(byDay[ref.Weekday], ref.Period)
	}

	// Known weekdays render in teaching-day order; fallback tokens keep
	// first-seen order after them.
	ordered := make([]models.Weekday, 0, len(dayOrder))
	for _, day := range scheduleWeekdays {
		if _, ok := byDay[day]; ok {
			ordered = append(ordered, day)
		}
	}
	for _, day := range dayOrder {
		if _, known := weekdayLexicon[string(day)]; !known {
			ordered = append(ordered, day)
		}
	}

	var groups []string
	for _, day := range ordered {
		periods := dedupePeriods(byDay[day])
		sortPeriods(periods, table)
		for _, run := range contiguousRuns(periods, table) {
			if len(run) == 1 {
				groups = append(groups, fmt.Sprintf("%s %s", day, run[0]))
			} else {
				groups = append(groups, fmt.Sprintf("%s %s-%s", day, run[0], run[len(run)-1]))
			}
		}
	}
	return strings.Join(groups, ", ")
}

func dedupePeriods(periods []models.PeriodID) []models.PeriodID {
	seen := make(map[models.PeriodID]struct{}, len(periods))
	out := periods[:0]
	for _, p := range periods {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func sortPeriods(periods []models.PeriodID, table *PeriodTable) {
	for i := 1; i < len(periods); i++ {
		for j := i; j > 0 && table.Compare(periods[j-1], periods[j]) > 0; j-- {
			periods[j-1], periods[j] = periods[j], periods[j-1]
		}
	}
}

func contiguousRuns(periods []models.PeriodID, table *PeriodTable) [][]models.PeriodID {
	var runs [][]models.PeriodID
	for _, p := range periods {
		if len(runs) > 0 {
			last := runs[len(runs)-1]
			if d, ok := table.Distance(last[len(last)-1], p); ok && d == 1 {
				runs[len(runs)-1] = append(last, p)
				continue
			}
		}
		runs = append(runs, []models.PeriodID{p})
	}
	return runs
}
