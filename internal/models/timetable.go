package models

// Weekday is the token used by descriptors and the slot grid. Only the five
// academic weekdays are schedulable; Sat/Sun parse but never reach the grid.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// PeriodID identifies a fixed teaching period. Ordering is period-table
// declaration order, never lexical: "10" follows "9", letters follow digits.
type PeriodID string

// TimeRange is the wall-clock label for a period. Immutable after load.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotRef addresses one (weekday, period) cell.
type SlotRef struct {
	Weekday Weekday  `json:"weekday"`
	Period  PeriodID `json:"period"`
}

// ScheduleSlot is one grid cell with its display time range and at most one
// occupying course reference. Grids are derived, disposable views; slots are
// rebuilt on every assignment run and never persisted.
type ScheduleSlot struct {
	Weekday  Weekday   `json:"weekday"`
	Period   PeriodID  `json:"period"`
	Time     TimeRange `json:"time"`
	CourseID string    `json:"course_id,omitempty"`
}

// Conflict records two courses claiming the same cell. The later-processed
// course wins the slot; the displaced occupant is kept here so the collision
// stays observable instead of silently overwritten.
type Conflict struct {
	Weekday    Weekday  `json:"weekday"`
	Period     PeriodID `json:"period"`
	PreviousID string   `json:"previous_id"`
	CourseID   string   `json:"course_id"`
}

// TimetableResult is the output of one assignment run.
type TimetableResult struct {
	Slots         []ScheduleSlot `json:"slots"`
	Conflicts     []Conflict     `json:"conflicts"`
	TotalCredits  int            `json:"total_credits"`
	CategoryCount int            `json:"category_count"`
}
