package models

// Course is the canonical shape consumed by the timetable assigner. It is
// produced by the catalog normalizer from upstream search records.
type Course struct {
	// ID uniquely identifies one offering within a result set. It starts as
	// the upstream identifier and is disambiguated by the normalizer when two
	// offerings share one.
	ID             string      `json:"id"`
	Identifier     string      `json:"identifier"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	Credits        int         `json:"credits"`
	Teacher        string      `json:"teacher"`
	HostDepartment string      `json:"host_department"`
	Semester       string      `json:"semester,omitempty"`
	TimeDescriptor string      `json:"time_descriptor"`
	Classrooms     []string    `json:"classrooms,omitempty"`
	Targets        []string    `json:"targets,omitempty"`
	Overview       string      `json:"overview,omitempty"`
	Objective      string      `json:"objective,omitempty"`
	Comment        string      `json:"comment,omitempty"`
	Capacity       OptionalInt `json:"capacity"`
	Enrolled       OptionalInt `json:"enrolled"`
	Score          *float64    `json:"score,omitempty"`
}

// Pagination carries list metadata in the response envelope.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
