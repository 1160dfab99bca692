package catalog

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/models"
	"github.com/course-compass/course-compass-api/internal/timetable"
)

// upstreamEnvelope is the wire shape of the vector-search response. Results
// stays raw so a missing or non-array field degrades to an empty list
// instead of failing the whole decode.
type upstreamEnvelope struct {
	Query   string          `json:"query"`
	Results json.RawMessage `json:"results"`
	Count   int             `json:"count"`
}

// upstreamMeeting is one discrete meeting entry of an upstream record.
type upstreamMeeting struct {
	Weekday   int    `json:"weekday"`
	Period    string `json:"period"`
	Classroom string `json:"classroom"`
}

// upstreamCourse mirrors the upstream payload fields. Capacity and enrolled
// come through as pointers so absence is distinguishable from zero.
type upstreamCourse struct {
	Identifier     string            `json:"identifier"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Credits        int               `json:"credits"`
	TeacherName    string            `json:"teacher_name"`
	HostDepartment string            `json:"host_department"`
	Semester       string            `json:"semester"`
	TimeRaw        string            `json:"time_raw"`
	TimeSlots      []upstreamMeeting `json:"time_slots"`
	Targets        []string          `json:"targets"`
	Overview       string            `json:"course_overview"`
	Objective      string            `json:"course_objective"`
	Comment        string            `json:"comment"`
	Capacity       *int              `json:"capacity"`
	Enrolled       *int              `json:"enrolled"`
	Score          *float64          `json:"score"`
}

// Normalizer maps heterogeneous upstream search records into the canonical
// Course shape consumed by the assigner.
type Normalizer struct {
	table  *timetable.PeriodTable
	logger *zap.Logger
}

// NewNormalizer builds a normalizer over the given period table.
func NewNormalizer(table *timetable.PeriodTable, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{table: table, logger: logger}
}

// NormalizePayload decodes a raw upstream response body. Any malformed
// payload (not JSON, missing results, results not an array) yields an empty
// list, never an error: one bad response must not break the caller.
func (n *Normalizer) NormalizePayload(body []byte) []models.Course {
	var envelope upstreamEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		n.logger.Warn("malformed upstream payload", zap.Error(err))
		return []models.Course{}
	}
	if len(envelope.Results) == 0 {
		return []models.Course{}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(envelope.Results, &raws); err != nil {
		n.logger.Warn("upstream results is not an array")
		return []models.Course{}
	}

	courses := make([]models.Course, 0, len(raws))
	for i, raw := range raws {
		var record upstreamCourse
		if err := json.Unmarshal(raw, &record); err != nil {
			// One malformed record never blocks the rest.
			n.logger.Warn("skipping malformed upstream record", zap.Int("index", i), zap.Error(err))
			continue
		}
		courses = append(courses, n.normalizeRecord(record))
	}

	disambiguate(courses)
	return courses
}

// normalizeRecord maps one upstream record to the canonical shape, rendering
// its meeting entries into a descriptor string.
func (n *Normalizer) normalizeRecord(record upstreamCourse) models.Course {
	refs := make([]models.SlotRef, 0, len(record.TimeSlots))
	classroomSet := make(map[string]struct{})
	var classrooms []string
	for _, meeting := range record.TimeSlots {
		refs = append(refs, models.SlotRef{
			Weekday: timetable.WeekdayFromNumber(meeting.Weekday),
			Period:  models.PeriodID(meeting.Period),
		})
		if meeting.Classroom != "" {
			if _, dup := classroomSet[meeting.Classroom]; !dup {
				classroomSet[meeting.Classroom] = struct{}{}
				classrooms = append(classrooms, meeting.Classroom)
			}
		}
	}

	descriptor := timetable.RenderDescriptor(refs, n.table)
	if descriptor == "" {
		// No structured meetings; fall back to the raw string, which the
		// lenient parser will mine for whatever it recognizes.
		descriptor = record.TimeRaw
	}

	return models.Course{
		ID:             record.Identifier,
		Identifier:     record.Identifier,
		Code:           record.Code,
		Name:           record.Name,
		Credits:        record.Credits,
		Teacher:        record.TeacherName,
		HostDepartment: record.HostDepartment,
		Semester:       record.Semester,
		TimeDescriptor: descriptor,
		Classrooms:     classrooms,
		Targets:        record.Targets,
		Overview:       record.Overview,
		Objective:      record.Objective,
		Comment:        record.Comment,
		Capacity:       optionalFromPtr(record.Capacity),
		Enrolled:       optionalFromPtr(record.Enrolled),
		Score:          record.Score,
	}
}

// disambiguate rewrites IDs so they are unique within one result set. Two
// offerings sharing an identifier are told apart by teacher, then meeting
// time, then position, so the assigner never silently collapses them.
func disambiguate(courses []models.Course) {
	byID := make(map[string]int, len(courses))
	for i := range courses {
		candidates := []string{
			courses[i].ID,
			fmt.Sprintf("%s#%s", courses[i].Identifier, courses[i].Teacher),
			fmt.Sprintf("%s#%s#%s", courses[i].Identifier, courses[i].Teacher, courses[i].TimeDescriptor),
			fmt.Sprintf("%s#%d", courses[i].Identifier, i),
		}
		for _, candidate := range candidates {
			if _, taken := byID[candidate]; !taken {
				courses[i].ID = candidate
				byID[candidate] = i
				break
			}
		}
	}
}

func optionalFromPtr(v *int) models.OptionalInt {
	if v == nil {
		return models.UnknownInt()
	}
	return models.KnownInt(*v)
}
