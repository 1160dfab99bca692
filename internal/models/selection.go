package models

import "time"

// Selection is a persisted, named set of chosen courses. Course order is
// insertion order, which is also the assignment order for the grid.
type Selection struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Semester  string    `db:"semester" json:"semester"`
	Courses   []Course  `db:"-" json:"courses"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Add appends the course unless its ID is already present. Returns true when
// the selection changed.
func (s *Selection) Add(course Course) bool {
	for _, existing := range s.Courses {
		if existing.ID == course.ID {
			return false
		}
	}
	s.Courses = append(s.Courses, course)
	return true
}

// Remove deletes the course with the given ID, preserving the order of the
// remaining courses. Returns true when the selection changed.
func (s *Selection) Remove(courseID string) bool {
	for i, existing := range s.Courses {
		if existing.ID == courseID {
			s.Courses = append(s.Courses[:i], s.Courses[i+1:]...)
			return true
		}
	}
	return false
}
